package model

import "time"

// Generation sources.
const (
	SourceAPI = "api"
	SourceCLI = "cli"
)

// GenerationRecord describes one generated password without the password itself.
type GenerationRecord struct {
	ID          string
	Source      string
	Preset      string
	Length      int
	Classes     string
	Strength    string
	EntropyBits float64
	CreatedAt   time.Time
}

// HistoryStatsResponse summarizes recorded generations by strength rating.
type HistoryStatsResponse struct {
	Total      int64            `json:"total"`
	ByStrength map[string]int64 `json:"by_strength"`
}
