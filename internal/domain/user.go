package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

type SubscriptionTier string

const (
	TierFree     SubscriptionTier = "free"
	TierStandard SubscriptionTier = "standard"
	TierPremium  SubscriptionTier = "premium"
)

// MonthlyQuota maps a subscription tier to its monthly analysis ceiling.
// Premium is effectively unlimited.
var MonthlyQuota = map[SubscriptionTier]int{
	TierFree:     5,
	TierStandard: 50,
	TierPremium:  1_000_000,
}

func ValidTier(t SubscriptionTier) bool {
	_, ok := MonthlyQuota[t]
	return ok
}

type UserPassword struct {
	Hash string `db:"password_hash" json:"-"`
	Salt string `db:"password_salt" json:"-"`
}

func (p *UserPassword) Init(password string) error {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	p.Salt = hex.EncodeToString(salt)
	p.Hash = hashPassword(password, p.Salt)
	return nil
}

func (p *UserPassword) Validate(password string) error {
	if hashPassword(password, p.Salt) != p.Hash {
		return constants.ErrBadCredentials
	}
	return nil
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

type User struct {
	ID               string           `db:"id" json:"id"`
	Email            string           `db:"email" json:"email"`
	FullName         string           `db:"full_name" json:"fullName"`
	SubscriptionTier SubscriptionTier `db:"subscription_tier" json:"subscriptionTier"`
	APIUsageCount    int              `db:"api_usage_count" json:"apiUsageCount"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`

	UserPassword
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,min=1,max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User      *User  `json:"user"`
	AuthToken string `json:"authToken"`
}

// Profile is the /api/me view: the user plus current-month usage.
type Profile struct {
	User         *User `json:"user"`
	MonthlyScans int   `json:"monthlyScans"`
	MonthlyLimit int   `json:"monthlyLimit"`
}
