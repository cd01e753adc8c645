package domain

import "time"

type APIPlan string

const (
	PlanFree       APIPlan = "free"
	PlanPro        APIPlan = "pro"
	PlanEnterprise APIPlan = "enterprise"
)

// PlanRateLimits maps an API-key plan to its per-minute request ceiling.
var PlanRateLimits = map[APIPlan]int{
	PlanFree:       12,
	PlanPro:        90,
	PlanEnterprise: 500,
}

func ValidPlan(p APIPlan) bool {
	_, ok := PlanRateLimits[p]
	return ok
}

type APIKeyRecord struct {
	APIKey                string     `db:"api_key" json:"apiKey"`
	KeyID                 string     `db:"key_id" json:"keyId"`
	Plan                  APIPlan    `db:"plan" json:"plan"`
	RequestLimitPerMinute int        `db:"request_limit_per_minute" json:"requestLimitPerMinute"`
	Active                bool       `db:"active" json:"active"`
	Label                 string     `db:"label" json:"label,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"createdAt"`
	LastUsedAt            *time.Time `db:"last_used_at" json:"lastUsedAt,omitempty"`
}

// APIKeyListing is the admin view: everything except the raw key value.
type APIKeyListing struct {
	KeyID         string     `json:"keyId"`
	Plan          APIPlan    `json:"plan"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUsedAt    *time.Time `json:"lastUsedAt,omitempty"`
	Label         string     `json:"label,omitempty"`
	APIKeyPreview string     `json:"apiKeyPreview"`
}
