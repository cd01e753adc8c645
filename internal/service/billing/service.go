// Package billing processes subscription webhooks from the payment provider.
// Events carry the user and target tier; the payload signature is an
// HMAC-SHA256 of the raw body under the shared webhook secret.
package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store"
)

const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

type Event struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Tier   string `json:"tier"`
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// VerifySignature checks the hex HMAC of the raw body. A missing configured
// secret rejects every request rather than accepting unsigned payloads.
func VerifySignature(body []byte, signature string) error {
	secret := viper.GetString(constants.ViperBillingWebhookSecret)
	if secret == "" || signature == "" {
		return constants.NewCodedError(http.StatusBadRequest, "invalid signature")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return constants.NewCodedError(http.StatusBadRequest, "invalid signature")
	}
	return nil
}

func mapTier(tier string) domain.SubscriptionTier {
	switch domain.SubscriptionTier(tier) {
	case domain.TierPremium:
		return domain.TierPremium
	case domain.TierStandard:
		return domain.TierStandard
	default:
		return domain.TierFree
	}
}

// HandleEvent applies the tier change the event describes. Unknown event
// types are acknowledged without effect so the provider stops retrying them.
func (s *Service) HandleEvent(ctx context.Context, body []byte) error {
	var event Event
	if err := sonic.Unmarshal(body, &event); err != nil {
		return constants.NewBadRequest("malformed webhook payload")
	}

	switch event.Type {
	case EventCheckoutCompleted, EventSubscriptionUpdated:
		if event.UserID == "" {
			return constants.NewBadRequest("userId is required")
		}
		if err := s.store.UpdateUserTier(ctx, event.UserID, mapTier(event.Tier)); err != nil {
			return fmt.Errorf("store.UpdateUserTier: %w", err)
		}
	case EventSubscriptionDeleted:
		if event.UserID == "" {
			return constants.NewBadRequest("userId is required")
		}
		if err := s.store.UpdateUserTier(ctx, event.UserID, domain.TierFree); err != nil {
			return fmt.Errorf("store.UpdateUserTier: %w", err)
		}
	}

	return nil
}
