package service

import (
	"context"

	"github.com/passforge/passforge-go/internal/model"
)

// StrengthCounter reports how many generations fell into each rating.
type StrengthCounter interface {
	CountByStrength(ctx context.Context) (map[string]int64, error)
}

// HistoryService summarizes recorded generations.
type HistoryService struct {
	repo StrengthCounter
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(repo StrengthCounter) *HistoryService {
	return &HistoryService{repo: repo}
}

// Stats returns totals per strength rating.
func (s *HistoryService) Stats(ctx context.Context) (model.HistoryStatsResponse, error) {
	counts, err := s.repo.CountByStrength(ctx)
	if err != nil {
		return model.HistoryStatsResponse{}, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return model.HistoryStatsResponse{
		Total:      total,
		ByStrength: counts,
	}, nil
}
