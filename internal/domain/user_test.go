package domain

import (
	"errors"
	"testing"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

func TestUserPasswordInitAndValidate(t *testing.T) {
	var p UserPassword
	if err := p.Init("correct horse battery staple"); err != nil {
		t.Fatal(err)
	}

	if p.Salt == "" || p.Hash == "" {
		t.Fatal("salt and hash must be populated")
	}
	if p.Hash == "correct horse battery staple" {
		t.Fatal("password stored in clear")
	}

	if err := p.Validate("correct horse battery staple"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := p.Validate("wrong"); !errors.Is(err, constants.ErrBadCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
}

func TestUserPasswordSaltsDiffer(t *testing.T) {
	var a, b UserPassword
	if err := a.Init("same password"); err != nil {
		t.Fatal(err)
	}
	if err := b.Init("same password"); err != nil {
		t.Fatal(err)
	}
	if a.Salt == b.Salt || a.Hash == b.Hash {
		t.Error("two inits of the same password must not collide")
	}
}

func TestMonthlyQuotaTiers(t *testing.T) {
	if MonthlyQuota[TierFree] != 5 || MonthlyQuota[TierStandard] != 50 {
		t.Errorf("quotas = %v", MonthlyQuota)
	}
	if !ValidTier(TierPremium) {
		t.Error("premium should be valid")
	}
	if ValidTier("platinum") {
		t.Error("unknown tier should be invalid")
	}
}

func TestPlanRateLimits(t *testing.T) {
	cases := map[APIPlan]int{PlanFree: 12, PlanPro: 90, PlanEnterprise: 500}
	for plan, want := range cases {
		if PlanRateLimits[plan] != want {
			t.Errorf("limit[%s] = %d, want %d", plan, PlanRateLimits[plan], want)
		}
	}
	if ValidPlan("platinum") {
		t.Error("unknown plan should be invalid")
	}
}
