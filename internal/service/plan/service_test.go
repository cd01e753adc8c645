package plan

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
)

func sampleAnalysis() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Region:       "Almaty",
		NDVI:         0.3,
		NDVICategory: "Low",
		LandUse:      domain.LandUseSummary{Forest: 30, Agriculture: 35, Urban: 10, Water: 8, Bare: 12},
	}
}

func TestRiskToLevel(t *testing.T) {
	cases := []struct {
		ndvi   float64
		change float64
		want   domain.RiskLevel
	}{
		{0.1, 0, domain.RiskCritical},
		{0.6, -15, domain.RiskCritical},
		{0.3, 0, domain.RiskHigh},
		{0.6, -8, domain.RiskHigh},
		{0.45, 0, domain.RiskModerate},
		{0.6, -3, domain.RiskModerate},
		{0.6, 0, domain.RiskLow},
	}
	for _, tc := range cases {
		if got := riskToLevel(tc.ndvi, tc.change); got != tc.want {
			t.Errorf("riskToLevel(%v, %v) = %q, want %q", tc.ndvi, tc.change, got, tc.want)
		}
	}
}

func TestNormalizeMonths(t *testing.T) {
	cases := map[int]int{3: 3, 6: 6, 12: 12, 0: 6, 5: 6, -1: 6, 24: 6}
	for in, want := range cases {
		if got := normalizeMonths(in); got != want {
			t.Errorf("normalizeMonths(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestNextMonthsLabels(t *testing.T) {
	now := time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)
	months := nextMonths(now, 3)

	want := []string{"December 2026", "January 2027", "February 2027"}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("months[%d] = %q, want %q", i, months[i], want[i])
		}
	}
}

func TestGenerateFallsBackWhenAIUnavailable(t *testing.T) {
	svc := NewService(&ai.Client{})

	resp := svc.Generate(context.Background(), &domain.PlanRequest{Analysis: sampleAnalysis(), Months: 6})

	if resp.HorizonMonths != 6 || len(resp.Plans) != 6 {
		t.Fatalf("horizon=%d plans=%d", resp.HorizonMonths, len(resp.Plans))
	}
	if resp.Region != "Almaty" {
		t.Errorf("region = %q", resp.Region)
	}
	if !strings.Contains(resp.Summary, "0.300") || !strings.Contains(resp.Summary, "Low") {
		t.Errorf("summary = %q", resp.Summary)
	}

	// NDVI 0.3 starts at High; the back half relaxes to Moderate.
	if resp.Plans[0].RiskLevel != domain.RiskHigh {
		t.Errorf("first month risk = %q, want High", resp.Plans[0].RiskLevel)
	}
	last := resp.Plans[len(resp.Plans)-1]
	if last.RiskLevel != domain.RiskModerate {
		t.Errorf("last month risk = %q, want Moderate", last.RiskLevel)
	}
	for i, p := range resp.Plans {
		if len(p.Actions) != 3 {
			t.Errorf("plan %d has %d actions", i, len(p.Actions))
		}
		if p.Month == "" || p.KPI == "" || p.Objective == "" {
			t.Errorf("plan %d missing fields: %+v", i, p)
		}
	}
}

func TestGenerateFallsBackOnEmptyPlans(t *testing.T) {
	groq := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"summary\":\"s\",\"plans\":[]}"}}]}`))
	}))
	defer groq.Close()

	svc := NewService(&ai.Client{GroqURL: groq.URL, GroqKey: "k", GroqModel: "m"})
	resp := svc.Generate(context.Background(), &domain.PlanRequest{Analysis: sampleAnalysis(), Months: 3})

	if len(resp.Plans) != 3 {
		t.Fatalf("fallback should produce 3 plans, got %d", len(resp.Plans))
	}
}

func TestGenerateNormalizesModelOutput(t *testing.T) {
	content := `{"summary":"model summary","plans":[` +
		`{"month":"March 2019","objective":"obj1","actions":["a","b","c","d"],"kpi":"k1","riskLevel":"High"},` +
		`{"month":"","objective":"","actions":"not a list","kpi":"","riskLevel":"Weird"}]}`
	body := fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, content)

	groq := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer groq.Close()

	svc := NewService(&ai.Client{GroqURL: groq.URL, GroqKey: "k", GroqModel: "m"})
	resp := svc.Generate(context.Background(), &domain.PlanRequest{Analysis: sampleAnalysis(), Months: 3})

	if resp.Summary != "model summary" {
		t.Errorf("summary = %q", resp.Summary)
	}
	if len(resp.Plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(resp.Plans))
	}

	// Month labels are always regenerated server-side.
	if resp.Plans[0].Month == "March 2019" {
		t.Error("stale model month label leaked through")
	}
	if len(resp.Plans[0].Actions) != 3 {
		t.Errorf("actions capped at 3, got %d", len(resp.Plans[0].Actions))
	}
	if resp.Plans[1].RiskLevel != domain.RiskModerate {
		t.Errorf("invalid risk level should default to Moderate, got %q", resp.Plans[1].RiskLevel)
	}
	if resp.Plans[1].Objective != "Improve ecosystem stability" {
		t.Errorf("objective default missing: %q", resp.Plans[1].Objective)
	}
}
