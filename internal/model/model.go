package model

import (
	"time"

	"github.com/freeeve/broadside/pkg/battleship"
)

// Session is the identity a client plays under.
type Session struct {
	Name string `json:"name"`
}

// GameSummary is the short form of a live game used in listings.
type GameSummary struct {
	ID         string            `json:"id"`
	Mode       battleship.Mode   `json:"mode"`
	Difficulty int               `json:"difficulty,omitempty"`
	GridSize   int               `json:"grid_size"`
	Players    []string          `json:"players"`
	Status     battleship.Status `json:"status"`
	Turn       string            `json:"turn,omitempty"`
	Winner     string            `json:"winner,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// GameView is a full game snapshot for one of its players.
type GameView struct {
	*battleship.State
	Difficulty     int       `json:"difficulty,omitempty"`
	DifficultyName string    `json:"difficulty_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AttackResult is the outcome of one attack request: the caller's shot and,
// against the bot, its reply.
type AttackResult struct {
	GameID string `json:"game_id"`
	*battleship.TurnResult
}

// UndoResult reports which moves an undo took back, newest first.
type UndoResult struct {
	GameID string            `json:"game_id"`
	Undone []battleship.Move `json:"undone"`
	Moves  int               `json:"moves"`
	Status battleship.Status `json:"status"`
	Turn   string            `json:"turn,omitempty"`
	Scores map[string]int    `json:"scores"`
}

// ScoreEntry is one line of the process-wide scoreboard.
type ScoreEntry struct {
	Actor string `json:"actor"`
	Wins  int    `json:"wins"`
}
