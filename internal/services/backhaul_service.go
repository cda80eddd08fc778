package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loadrush/loadrush-backend/internal/core/llm"
	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/repositories"
)

// BackhaulSuggestion is one return-load recommendation from the model.
type BackhaulSuggestion struct {
	LoadID      string  `json:"load_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Rate        float64 `json:"rate"`
	Reason      string  `json:"reason"`
}

// BackhaulService asks the text-generation provider for return loads near a
// delivered load's destination. Every call carries an explicit timeout and a
// parse failure comes back as an error, never a panic.
type BackhaulService struct {
	loads    repositories.LoadRepo
	provider llm.Provider
	timeout  time.Duration
}

func NewBackhaulService(loads repositories.LoadRepo, provider llm.Provider) *BackhaulService {
	return &BackhaulService{
		loads:    loads,
		provider: provider,
		timeout:  30 * time.Second,
	}
}

func (s *BackhaulService) FindBackhauls(ctx context.Context, loadID string) ([]BackhaulSuggestion, error) {
	load, err := s.loads.GetByID(loadID)
	if err != nil {
		return nil, fmt.Errorf("load lookup failed: %w", err)
	}
	if load.Status != models.StatusDelivered {
		return nil, fmt.Errorf("backhauls are only suggested for delivered loads (status is %s)", load.Status)
	}

	available, err := s.loads.LoadsByStatus(models.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("available loads query failed: %w", err)
	}
	if len(available) == 0 {
		return []BackhaulSuggestion{}, nil
	}

	system, user := llm.BuildBackhaulPrompt(load, available)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.GenerateResponse(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("backhaul generation failed: %w", err)
	}

	var suggestions []BackhaulSuggestion
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &suggestions); err != nil {
		return nil, fmt.Errorf("backhaul response is not a JSON array: %w", err)
	}
	return suggestions, nil
}
