package keys

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

type stubStore struct {
	records []*domain.APIKeyRecord
	byKey   map[string]*domain.APIKeyRecord
}

func (s *stubStore) CreateUser(context.Context, *domain.User) error { return nil }
func (s *stubStore) GetUserByEmail(context.Context, string) (*domain.User, error) {
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) GetUserByID(context.Context, string) (*domain.User, error) {
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) UpdateUserTier(context.Context, string, domain.SubscriptionTier) error {
	return nil
}
func (s *stubStore) IncrementAPIUsage(context.Context, string) error    { return nil }
func (s *stubStore) InsertScan(context.Context, *domain.ScanRecord) error { return nil }
func (s *stubStore) CountScansSince(context.Context, string, time.Time) (int, error) {
	return 0, nil
}
func (s *stubStore) ListScans(context.Context, string, int) ([]*domain.ScanListItem, error) {
	return nil, nil
}
func (s *stubStore) InsertAPIKey(_ context.Context, record *domain.APIKeyRecord) error {
	s.records = append(s.records, record)
	return nil
}
func (s *stubStore) ListAPIKeys(context.Context) ([]*domain.APIKeyRecord, error) {
	return s.records, nil
}
func (s *stubStore) GetActiveAPIKey(_ context.Context, rawKey string) (*domain.APIKeyRecord, error) {
	if record, ok := s.byKey[rawKey]; ok {
		return record, nil
	}
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) Ping(context.Context) error { return nil }

func TestIssueKeyShape(t *testing.T) {
	st := &stubStore{}
	svc := NewService(st)

	record, err := svc.Issue(context.Background(), domain.PlanPro, "  Integration key  ")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(record.APIKey, "eco_pro_") {
		t.Errorf("apiKey = %q", record.APIKey)
	}
	if len(record.APIKey) != len("eco_pro_")+24 {
		t.Errorf("apiKey length = %d", len(record.APIKey))
	}
	if !strings.HasPrefix(record.KeyID, "k_") || len(record.KeyID) != 10 {
		t.Errorf("keyId = %q", record.KeyID)
	}
	if record.RequestLimitPerMinute != 90 {
		t.Errorf("limit = %d, want 90", record.RequestLimitPerMinute)
	}
	if !record.Active {
		t.Error("new keys start active")
	}
	if record.Label != "Integration key" {
		t.Errorf("label = %q", record.Label)
	}
	if len(st.records) != 1 {
		t.Fatalf("stored %d records", len(st.records))
	}
}

func TestIssueDefaultsAndRejects(t *testing.T) {
	svc := NewService(&stubStore{})

	record, err := svc.Issue(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if record.Plan != domain.PlanFree || record.RequestLimitPerMinute != 12 {
		t.Errorf("default plan record = %+v", record)
	}

	if _, err := svc.Issue(context.Background(), "platinum", ""); err == nil {
		t.Fatal("unknown plan must be rejected")
	}
}

func TestListHidesRawKeys(t *testing.T) {
	st := &stubStore{}
	svc := NewService(st)

	issued, err := svc.Issue(context.Background(), domain.PlanEnterprise, "ops")
	if err != nil {
		t.Fatal(err)
	}

	listings, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 1 {
		t.Fatalf("listings = %d", len(listings))
	}

	l := listings[0]
	if l.APIKeyPreview != issued.APIKey[:10]+"..." {
		t.Errorf("preview = %q", l.APIKeyPreview)
	}
	if strings.Contains(l.APIKeyPreview, issued.APIKey) {
		t.Error("full key leaked into the listing")
	}
	if l.KeyID != issued.KeyID || l.Plan != domain.PlanEnterprise {
		t.Errorf("listing = %+v", l)
	}
}

func TestResolve(t *testing.T) {
	record := &domain.APIKeyRecord{APIKey: "eco_free_abc", KeyID: "k_1", Plan: domain.PlanFree, RequestLimitPerMinute: 12, Active: true}
	svc := NewService(&stubStore{byKey: map[string]*domain.APIKeyRecord{"eco_free_abc": record}})

	got, err := svc.Resolve(context.Background(), "eco_free_abc")
	if err != nil {
		t.Fatal(err)
	}
	if got.KeyID != "k_1" {
		t.Errorf("resolved = %+v", got)
	}

	if _, err := svc.Resolve(context.Background(), "eco_free_nope"); !errors.Is(err, constants.ErrMissingAPIKey) {
		t.Errorf("unknown key err = %v", err)
	}
	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, constants.ErrMissingAPIKey) {
		t.Errorf("empty key err = %v", err)
	}
}
