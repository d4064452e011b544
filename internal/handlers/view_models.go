package handlers

import (
	"time"

	"wordstreak/internal/game"
	"wordstreak/internal/models"
	"wordstreak/internal/service"
)

// Response shapes for the JSON API. The puzzle solution never appears
// except in a failure result, after the puzzle is over for that user.

type puzzleResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	CreatedAt time.Time `json:"createdAt"`
}

func newPuzzleResponse(p *models.Puzzle) puzzleResponse {
	return puzzleResponse{
		ID:        p.ID,
		Type:      string(p.Type),
		Year:      p.Year,
		Month:     p.Month,
		Day:       p.Day,
		CreatedAt: p.CreatedAt,
	}
}

type checkedLetterResponse struct {
	Letter string `json:"letter"`
	Index  int    `json:"index"`
	Status string `json:"status"`
}

type attemptResponse struct {
	ID             int64                   `json:"id"`
	Attempt        string                  `json:"attempt"`
	CheckedLetters []checkedLetterResponse `json:"checkedLetters"`
	CreatedAt      time.Time               `json:"createdAt"`
}

func newAttemptResponse(a *models.GuessAttempt) attemptResponse {
	letters := make([]checkedLetterResponse, len(a.CheckedLetters))
	for i, cl := range a.CheckedLetters {
		letters[i] = checkedLetterResponse{
			Letter: cl.Letter,
			Index:  cl.Index,
			Status: string(cl.Status),
		}
	}
	return attemptResponse{
		ID:             a.ID,
		Attempt:        a.Attempt,
		CheckedLetters: letters,
		CreatedAt:      a.CreatedAt,
	}
}

type guessResultResponse struct {
	Attempt      attemptResponse `json:"attempt"`
	AttemptsUsed int             `json:"attemptsUsed"`
	Solved       bool            `json:"solved"`
	Failed       bool            `json:"failed"`
	Solution     string          `json:"solution,omitempty"`
}

func newGuessResultResponse(result *service.GuessResult) guessResultResponse {
	return guessResultResponse{
		Attempt:      newAttemptResponse(&result.Attempt),
		AttemptsUsed: result.AttemptsUsed,
		Solved:       result.Solved,
		Failed:       result.Failed,
		Solution:     result.Solution,
	}
}

type statisticsResponse struct {
	PuzzleType    string      `json:"puzzleType"`
	CurrentStreak int         `json:"currentStreak"`
	MaxStreak     int         `json:"maxStreak"`
	TotalPlayed   int         `json:"totalPlayed"`
	TotalWon      int         `json:"totalWon"`
	TotalFailed   int         `json:"totalFailed"`
	Distribution  map[int]int `json:"distribution"`
}

func newStatisticsResponse(s models.Statistics) statisticsResponse {
	return statisticsResponse{
		PuzzleType:    string(s.PuzzleType),
		CurrentStreak: s.CurrentStreak,
		MaxStreak:     s.MaxStreak,
		TotalPlayed:   s.TotalPlayed,
		TotalWon:      s.TotalWon,
		TotalFailed:   s.TotalFailed,
		Distribution:  s.Distribution,
	}
}

type rankedScoreResponse struct {
	UserID           int64 `json:"userId"`
	Score            int   `json:"score"`
	Position         int   `json:"position"`
	IsForCurrentUser bool  `json:"isForCurrentUser"`
}

func newRankedScore(s models.RankedScore) rankedScoreResponse {
	return rankedScoreResponse{
		UserID:           s.UserID,
		Score:            s.Score,
		Position:         s.Position,
		IsForCurrentUser: s.IsForCurrentUser,
	}
}

func newRankedScores(scores []models.RankedScore) []rankedScoreResponse {
	out := make([]rankedScoreResponse, len(scores))
	for i, s := range scores {
		out[i] = newRankedScore(s)
	}
	return out
}

type leaderboardResponse struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode,omitempty"`
}

func newLeaderboardResponse(l *models.Leaderboard) leaderboardResponse {
	return leaderboardResponse{
		ID:         l.ID,
		Type:       string(l.Type),
		Name:       l.Name,
		InviteCode: l.InviteCode,
	}
}

type rankedBoardResponse struct {
	Leaderboard leaderboardResponse   `json:"leaderboard"`
	Scores      []rankedScoreResponse `json:"scores"`
}

type windowedRankingResponse struct {
	TopScore rankedScoreResponse   `json:"topScore"`
	Scores   []rankedScoreResponse `json:"scores"`
}

func newWindowedRankingResponse(r game.WindowedRanking) windowedRankingResponse {
	return windowedRankingResponse{
		TopScore: newRankedScore(r.TopScore),
		Scores:   newRankedScores(r.Scores),
	}
}
