package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

type stubStore struct {
	tiers map[string]domain.SubscriptionTier
}

func (s *stubStore) CreateUser(context.Context, *domain.User) error { return nil }
func (s *stubStore) GetUserByEmail(context.Context, string) (*domain.User, error) {
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) GetUserByID(context.Context, string) (*domain.User, error) {
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) UpdateUserTier(_ context.Context, userID string, tier domain.SubscriptionTier) error {
	s.tiers[userID] = tier
	return nil
}
func (s *stubStore) IncrementAPIUsage(context.Context, string) error      { return nil }
func (s *stubStore) InsertScan(context.Context, *domain.ScanRecord) error { return nil }
func (s *stubStore) CountScansSince(context.Context, string, time.Time) (int, error) {
	return 0, nil
}
func (s *stubStore) ListScans(context.Context, string, int) ([]*domain.ScanListItem, error) {
	return nil, nil
}
func (s *stubStore) InsertAPIKey(context.Context, *domain.APIKeyRecord) error { return nil }
func (s *stubStore) ListAPIKeys(context.Context) ([]*domain.APIKeyRecord, error) {
	return nil, nil
}
func (s *stubStore) GetActiveAPIKey(context.Context, string) (*domain.APIKeyRecord, error) {
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) Ping(context.Context) error { return nil }

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	viper.Set(constants.ViperBillingWebhookSecret, "whsec_test")
	defer viper.Set(constants.ViperBillingWebhookSecret, "")

	body := []byte(`{"type":"checkout.session.completed"}`)

	if err := VerifySignature(body, sign("whsec_test", body)); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if err := VerifySignature(body, sign("wrong", body)); err == nil {
		t.Fatal("wrong secret accepted")
	}
	if err := VerifySignature(body, ""); err == nil {
		t.Fatal("missing signature accepted")
	}

	viper.Set(constants.ViperBillingWebhookSecret, "")
	if err := VerifySignature(body, sign("", body)); err == nil {
		t.Fatal("unset secret must reject everything")
	}
}

func TestHandleEventTierChanges(t *testing.T) {
	st := &stubStore{tiers: map[string]domain.SubscriptionTier{}}
	svc := NewService(st)
	ctx := context.Background()

	cases := []struct {
		body string
		user string
		want domain.SubscriptionTier
	}{
		{`{"type":"checkout.session.completed","userId":"u1","tier":"premium"}`, "u1", domain.TierPremium},
		{`{"type":"customer.subscription.updated","userId":"u2","tier":"standard"}`, "u2", domain.TierStandard},
		{`{"type":"checkout.session.completed","userId":"u3","tier":"unknown"}`, "u3", domain.TierFree},
		{`{"type":"customer.subscription.deleted","userId":"u4","tier":"premium"}`, "u4", domain.TierFree},
	}
	for _, tc := range cases {
		if err := svc.HandleEvent(ctx, []byte(tc.body)); err != nil {
			t.Fatalf("HandleEvent(%s): %v", tc.body, err)
		}
		if st.tiers[tc.user] != tc.want {
			t.Errorf("user %s tier = %q, want %q", tc.user, st.tiers[tc.user], tc.want)
		}
	}
}

func TestHandleEventValidation(t *testing.T) {
	st := &stubStore{tiers: map[string]domain.SubscriptionTier{}}
	svc := NewService(st)
	ctx := context.Background()

	if err := svc.HandleEvent(ctx, []byte(`not json`)); err == nil {
		t.Error("malformed payload accepted")
	}
	if err := svc.HandleEvent(ctx, []byte(`{"type":"checkout.session.completed","tier":"premium"}`)); err == nil {
		t.Error("missing userId accepted")
	}
	// Unknown event types are acknowledged without side effects.
	if err := svc.HandleEvent(ctx, []byte(`{"type":"invoice.paid","userId":"u9","tier":"premium"}`)); err != nil {
		t.Errorf("unknown event rejected: %v", err)
	}
	if len(st.tiers) != 0 {
		t.Errorf("unexpected tier writes: %v", st.tiers)
	}
}
