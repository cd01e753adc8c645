package store

import (
	"context"
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUserTier(ctx context.Context, userID string, tier domain.SubscriptionTier) error
	IncrementAPIUsage(ctx context.Context, userID string) error

	InsertScan(ctx context.Context, scan *domain.ScanRecord) error
	CountScansSince(ctx context.Context, userID string, since time.Time) (int, error)
	ListScans(ctx context.Context, userID string, limit int) ([]*domain.ScanListItem, error)

	InsertAPIKey(ctx context.Context, record *domain.APIKeyRecord) error
	ListAPIKeys(ctx context.Context) ([]*domain.APIKeyRecord, error)
	GetActiveAPIKey(ctx context.Context, rawKey string) (*domain.APIKeyRecord, error)

	Ping(ctx context.Context) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

func (s *store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
