package service

import (
	"context"
	"fmt"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store/repository"
)

// EdgeService handles edge-history business logic between the store and
// the REST layer.
type EdgeService struct {
	resultRepo *repository.ResultRepository
}

// NewEdgeService creates a new edge service.
func NewEdgeService(db *store.Database) *EdgeService {
	return &EdgeService{
		resultRepo: repository.NewResultRepository(db),
	}
}

// RunSummary is one run with its results attached.
type RunSummary struct {
	Run     *store.AnalysisRun  `json:"run"`
	Results []*store.EdgeResult `json:"results"`
}

// GetRecentRuns retrieves the most recent analysis runs.
func (s *EdgeService) GetRecentRuns(ctx context.Context, limit int) ([]*store.AnalysisRun, error) {
	runs, err := s.resultRepo.GetRecentRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves one run with all of its edge results.
func (s *EdgeService) GetRun(ctx context.Context, runID int64) (*RunSummary, error) {
	run, err := s.resultRepo.GetRunByID(ctx, runID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.GetResultsByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("fetching run results: %w", err)
	}

	return &RunSummary{Run: run, Results: results}, nil
}

// GetTeamHistory retrieves past results involving a team.
func (s *EdgeService) GetTeamHistory(ctx context.Context, team string, limit int) ([]*store.EdgeResult, error) {
	results, err := s.resultRepo.GetTeamHistory(ctx, team, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching team history: %w", err)
	}
	return results, nil
}
