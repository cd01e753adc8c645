package analysis

import (
	"reflect"
	"testing"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
)

func TestNormalizeAdvisoryUnavailable(t *testing.T) {
	adv := NormalizeAdvisory(ai.JSONResult{OK: false, Provider: ai.ProviderNone, Err: "Groq unavailable: timeout"})

	if adv.Available {
		t.Fatal("advisory should be unavailable")
	}
	if adv.Error != "Groq unavailable: timeout" {
		t.Errorf("error = %q", adv.Error)
	}
	if adv.Model != "none" {
		t.Errorf("model = %q, want none", adv.Model)
	}
	if adv.Headline != "AI unavailable" {
		t.Errorf("headline = %q", adv.Headline)
	}
	if adv.Insights == nil || adv.Recommendations == nil {
		t.Error("slices must be non-nil even when unavailable")
	}
}

func TestNormalizeAdvisoryCoercesLooseTypes(t *testing.T) {
	adv := NormalizeAdvisory(ai.JSONResult{
		OK:       true,
		Provider: ai.ProviderGroq,
		Data: map[string]interface{}{
			"headline": 42.5,
			"summary":  true,
			"insights": "single insight",
			"recommendations": []interface{}{
				map[string]interface{}{"priority": "URGENT", "action": "irrigate"},
				map[string]interface{}{"priority": "HIGH", "category": "soil", "action": "mulch", "timeframe": "this week"},
			},
			"agriAdvisory": map[string]interface{}{
				"irrigationNeeded": true,
				"bestCrops":        []interface{}{"wheat", ""},
			},
		},
	})

	if !adv.Available || adv.Model != "groq" {
		t.Fatalf("available=%v model=%q", adv.Available, adv.Model)
	}
	if adv.Headline != "42.5" {
		t.Errorf("headline = %q, want 42.5", adv.Headline)
	}
	if adv.Summary != "true" {
		t.Errorf("summary = %q, want true", adv.Summary)
	}
	if !reflect.DeepEqual(adv.Insights, []string{"single insight"}) {
		t.Errorf("insights = %v", adv.Insights)
	}

	if len(adv.Recommendations) != 2 {
		t.Fatalf("recommendations = %v", adv.Recommendations)
	}
	if adv.Recommendations[0].Priority != "medium" {
		t.Errorf("unknown priority should fall back to medium, got %q", adv.Recommendations[0].Priority)
	}
	if adv.Recommendations[0].Category != "general" || adv.Recommendations[0].Timeframe != "n/a" {
		t.Errorf("defaults not applied: %+v", adv.Recommendations[0])
	}
	if adv.Recommendations[1].Priority != "high" {
		t.Errorf("priority = %q, want high", adv.Recommendations[1].Priority)
	}

	if adv.AgriAdvisory == nil {
		t.Fatal("agriAdvisory should be set")
	}
	if !adv.AgriAdvisory.IrrigationNeeded {
		t.Error("irrigationNeeded lost")
	}
	if !reflect.DeepEqual(adv.AgriAdvisory.BestCrops, []string{"wheat"}) {
		t.Errorf("bestCrops = %v", adv.AgriAdvisory.BestCrops)
	}
}

func TestNormalizeAdvisoryDropsNonObjectAgriAdvisory(t *testing.T) {
	adv := NormalizeAdvisory(ai.JSONResult{
		OK:       true,
		Provider: ai.ProviderHF,
		Data:     map[string]interface{}{"agriAdvisory": "not applicable"},
	})
	if adv.AgriAdvisory != nil {
		t.Fatalf("agriAdvisory = %+v, want nil", adv.AgriAdvisory)
	}
	if adv.Headline != "AI report" {
		t.Errorf("headline default = %q", adv.Headline)
	}
}
