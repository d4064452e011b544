package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wordstreak/internal/models"
	"wordstreak/internal/service"
)

// PuzzleHandler handles puzzle and guess HTTP requests
type PuzzleHandler struct {
	puzzleService *service.PuzzleService
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(puzzleService *service.PuzzleService) *PuzzleHandler {
	return &PuzzleHandler{puzzleService: puzzleService}
}

// Today returns the daily puzzle, creating it if the scheduler has not
// run yet.
func (h *PuzzleHandler) Today(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.puzzleService.EnsureDailyPuzzle()
	if err != nil {
		respondWithServiceError(w, err, "Failed to get daily puzzle")
		return
	}

	respondWithJSON(w, http.StatusOK, newPuzzleResponse(puzzle))
}

// CreateTraining creates a training puzzle owned by the caller.
func (h *PuzzleHandler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	puzzle, err := h.puzzleService.CreateTrainingPuzzle(userID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create training puzzle")
		return
	}

	respondWithJSON(w, http.StatusCreated, newPuzzleResponse(puzzle))
}

type guessRequest struct {
	Guess string `json:"guess"`
}

// SubmitGuess evaluates one guess against a puzzle.
func (h *PuzzleHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	puzzleID, err := parseID(r, "puzzleId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid puzzle ID", "", nil)
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	result, err := h.puzzleService.SubmitGuess(userID, puzzleID, req.Guess)
	if err != nil {
		respondWithServiceError(w, err, "Failed to submit guess")
		return
	}

	respondWithJSON(w, http.StatusCreated, newGuessResultResponse(result))
}

// ListAttempts returns the caller's attempts at a puzzle in order.
func (h *PuzzleHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	puzzleID, err := parseID(r, "puzzleId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid puzzle ID", "", nil)
		return
	}

	attempts, err := h.puzzleService.GetAttempts(userID, puzzleID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to list attempts")
		return
	}

	out := make([]attemptResponse, len(attempts))
	for i := range attempts {
		out[i] = newAttemptResponse(&attempts[i])
	}
	respondWithJSON(w, http.StatusOK, out)
}

// StatsHandler handles statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStatistics returns the caller's statistics for one puzzle type.
func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	puzzleType := models.PuzzleType(r.PathValue("type"))
	stats, err := h.statsService.GetStatistics(userID, puzzleType)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get statistics")
		return
	}

	respondWithJSON(w, http.StatusOK, newStatisticsResponse(stats))
}

func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
