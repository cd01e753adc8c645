package analysis

import (
	"fmt"
	"math"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

// riskLevel maps a 0-100 score to its label. Boundaries are inclusive:
// exactly 75 is Critical, exactly 55 High, exactly 30 Moderate.
func riskLevel(score float64) domain.RiskLevel {
	switch {
	case score >= 75:
		return domain.RiskCritical
	case score >= 55:
		return domain.RiskHigh
	case score >= 30:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

// riskInput carries the raw metrics the factor scores draw on, alongside the
// already-computed indices. Pointers keep "no data" distinguishable so each
// factor substitutes its own documented default.
type riskInput struct {
	TempAvg      *float64
	TempMax      *float64
	TempMin      *float64
	WindKmh      *float64
	SoilMoisture *float64
	ET0Today     float64
	PrecipToday  float64
	WeeklyPrecip float64
}

func fmtMetric(v *float64, suffix string) string {
	if v == nil {
		return "n/a" + suffix
	}
	return fmt.Sprintf("%.1f%s", *v, suffix)
}

func factor(score float64, detail string) domain.RiskFactor {
	score = math.Max(0, score)
	return domain.RiskFactor{
		Level:  riskLevel(score),
		Score:  int(math.Round(score)),
		Detail: detail,
	}
}

// assessRisks derives the overall composite and the eight named factors.
// The composite is an unweighted average of drought severity, fire, flood
// and heat excess.
func assessRisks(idx domain.ClimateIndices, in riskInput) domain.RiskAssessment {
	heatBase := orDefault(in.TempMax, orDefault(in.TempAvg, 20))
	score := int(math.Round((math.Max(0, -idx.DroughtIndex)*25 + idx.FireRisk + idx.FloodRisk + math.Max(0, (heatBase-24)*3)) / 4))

	var out domain.RiskAssessment
	out.Overall.Score = score
	out.Overall.Level = riskLevel(float64(score))

	out.Factors.Drought = factor(-idx.DroughtIndex*30, fmt.Sprintf("Index %v", idx.DroughtIndex))
	out.Factors.Heat = factor((orDefault(in.TempMax, 25)-24)*5, "Max "+fmtMetric(in.TempMax, "C"))
	out.Factors.Flood = factor(idx.FloodRisk, fmt.Sprintf("Weekly rain %.1fmm", in.WeeklyPrecip))
	out.Factors.Fire = factor(idx.FireRisk, fmt.Sprintf("Risk %v/100", idx.FireRisk))

	frostScore := 10.0
	switch tMin := orDefault(in.TempMin, 10); {
	case tMin < 0:
		frostScore = 80
	case tMin < 4:
		frostScore = 45
	}
	out.Factors.Frost = factor(frostScore, "Min "+fmtMetric(in.TempMin, "C"))

	out.Factors.Erosion = factor(orDefault(in.WindKmh, 10)*2, "Wind "+fmtMetric(in.WindKmh, "km/h"))
	out.Factors.WaterStress = factor((in.ET0Today-in.PrecipToday)*12+20,
		fmt.Sprintf("ET0 %.1f vs rain %.1f", in.ET0Today, in.PrecipToday))
	out.Factors.SoilDegradation = factor((1-orDefault(in.SoilMoisture, 0.2)*2)*50,
		"Soil moisture "+fmtMetric(in.SoilMoisture, ""))

	return out
}
