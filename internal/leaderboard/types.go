// Package leaderboard serves and consumes the public breach leaderboard
// over HTTP, with a websocket feed of newly accepted entries.
package leaderboard

import (
	"fmt"
	"time"

	"github.com/vovakirdan/hexroute/internal/storage"
)

// Submission is the body of POST /api/leaderboard.
type Submission struct {
	OperatorName    string `json:"operatorName"`
	TimeCompleted   string `json:"timeCompleted"`
	DurationSeconds int    `json:"durationSeconds"`
}

// Record is a stored entry as returned after a successful submission.
type Record struct {
	ID              int64     `json:"id"`
	OperatorName    string    `json:"operatorName"`
	TimeCompleted   string    `json:"timeCompleted"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Ranked is one row of GET /api/leaderboard.
type Ranked struct {
	Rank          int    `json:"rank"`
	OperatorName  string `json:"operatorName"`
	TimeCompleted string `json:"timeCompleted"`
}

// Stats is the body of GET /api/leaderboard/stats.
type Stats struct {
	TotalOperatives int     `json:"totalOperatives"`
	FastestBreach   *string `json:"fastestBreach"`
}

type errorBody struct {
	Error string `json:"error"`
}

// StatusError is returned by the client for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("leaderboard: server returned %d", e.Code)
	}
	return fmt.Sprintf("leaderboard: server returned %d: %s", e.Code, e.Message)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == 429
}

func recordFromEntry(e storage.LeaderboardEntry) Record {
	return Record{
		ID:              e.ID,
		OperatorName:    e.OperatorName,
		TimeCompleted:   e.TimeCompleted,
		DurationSeconds: e.DurationSeconds,
		CreatedAt:       e.CreatedAt,
	}
}
