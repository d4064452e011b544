package handlers

import (
	"encoding/json"
	"net/http"

	"wordstreak/internal/models"
	"wordstreak/internal/service"
)

// LeaderboardHandler handles leaderboard HTTP requests
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// windowParam reads the ?window= query parameter, defaulting to the
// all-time window.
func windowParam(r *http.Request) models.TimeWindow {
	window := models.TimeWindow(r.URL.Query().Get("window"))
	if window == "" {
		return models.WindowAllTime
	}
	return window
}

// MyLeaderboards lists the caller's leaderboards, each with its ranking.
func (h *LeaderboardHandler) MyLeaderboards(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	ranked, err := h.leaderboardService.MyLeaderboards(userID, windowParam(r))
	if err != nil {
		respondWithServiceError(w, err, "Failed to list leaderboards")
		return
	}

	out := make([]rankedBoardResponse, len(ranked))
	for i, rb := range ranked {
		board := rb.Leaderboard
		out[i] = rankedBoardResponse{
			Leaderboard: newLeaderboardResponse(&board),
			Scores:      newRankedScores(rb.Scores),
		}
	}
	respondWithJSON(w, http.StatusOK, out)
}

type createLeaderboardRequest struct {
	Name string `json:"name"`
}

// Create creates a private leaderboard with the caller as creator.
func (h *LeaderboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	var req createLeaderboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	board, err := h.leaderboardService.CreatePrivate(userID, req.Name)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create leaderboard")
		return
	}

	respondWithJSON(w, http.StatusCreated, newLeaderboardResponse(board))
}

type joinLeaderboardRequest struct {
	InviteCode string `json:"inviteCode"`
}

// Join adds the caller to the leaderboard matching an invite code.
func (h *LeaderboardHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	var req joinLeaderboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	board, err := h.leaderboardService.Join(userID, req.InviteCode)
	if err != nil {
		respondWithServiceError(w, err, "Failed to join leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, newLeaderboardResponse(board))
}

// Leave removes the caller from a private leaderboard.
func (h *LeaderboardHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	boardID, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid leaderboard ID", "", nil)
		return
	}

	if err := h.leaderboardService.Leave(userID, boardID); err != nil {
		respondWithServiceError(w, err, "Failed to leave leaderboard")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a private leaderboard. Creator only.
func (h *LeaderboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	boardID, err := parseID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid leaderboard ID", "", nil)
		return
	}

	if err := h.leaderboardService.Delete(userID, boardID); err != nil {
		respondWithServiceError(w, err, "Failed to delete leaderboard")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Global returns the truncated global ranking centered on the caller.
func (h *LeaderboardHandler) Global(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	ranking, err := h.leaderboardService.GlobalRanking(r.Context(), userID, windowParam(r))
	if err != nil {
		respondWithServiceError(w, err, "Failed to compute global ranking")
		return
	}

	respondWithJSON(w, http.StatusOK, newWindowedRankingResponse(ranking))
}
