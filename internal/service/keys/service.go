// Package keys manages public-API credentials: admin-issued bearer keys with
// a per-minute plan limit baked into each record.
package keys

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Issue creates an active key. The raw key value is only ever returned here;
// listings expose a preview.
func (s *Service) Issue(ctx context.Context, plan domain.APIPlan, label string) (*domain.APIKeyRecord, error) {
	if plan == "" {
		plan = domain.PlanFree
	}
	if !domain.ValidPlan(plan) {
		return nil, constants.NewBadRequest("invalid plan, use free|pro|enterprise")
	}

	label = strings.TrimSpace(label)
	if len(label) > 80 {
		label = label[:80]
	}

	record := &domain.APIKeyRecord{
		APIKey:                fmt.Sprintf("eco_%s_%s", plan, random.String(24, random.Hex)),
		KeyID:                 "k_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		Plan:                  plan,
		RequestLimitPerMinute: domain.PlanRateLimits[plan],
		Active:                true,
		Label:                 label,
	}

	if err := s.store.InsertAPIKey(ctx, record); err != nil {
		return nil, fmt.Errorf("store.InsertAPIKey: %w", err)
	}
	return record, nil
}

// List is the admin view: raw key values are reduced to a 10-char preview.
func (s *Service) List(ctx context.Context) ([]*domain.APIKeyListing, error) {
	records, err := s.store.ListAPIKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListAPIKeys: %w", err)
	}

	out := make([]*domain.APIKeyListing, 0, len(records))
	for _, r := range records {
		preview := r.APIKey
		if len(preview) > 10 {
			preview = preview[:10]
		}
		out = append(out, &domain.APIKeyListing{
			KeyID:         r.KeyID,
			Plan:          r.Plan,
			Active:        r.Active,
			CreatedAt:     r.CreatedAt,
			LastUsedAt:    r.LastUsedAt,
			Label:         r.Label,
			APIKeyPreview: preview + "...",
		})
	}
	return out, nil
}

// Resolve authorizes a raw key, touching last_used_at in the same statement.
// Unknown or inactive keys map to the missing-key error.
func (s *Service) Resolve(ctx context.Context, rawKey string) (*domain.APIKeyRecord, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return nil, constants.ErrMissingAPIKey
	}

	record, err := s.store.GetActiveAPIKey(ctx, rawKey)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrMissingAPIKey
		}
		return nil, fmt.Errorf("store.GetActiveAPIKey: %w", err)
	}
	return record, nil
}
