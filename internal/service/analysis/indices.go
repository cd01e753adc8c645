package analysis

import (
	"math"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

// indicesInput holds the already-defaulted scalar climate metrics the index
// formulas run on. Callers substitute defaults for missing samples before
// building it; no field may be NaN.
type indicesInput struct {
	PrecipDay float64 // mean daily precipitation over the window, mm
	Temp      float64 // mean air temperature, C
	Solar     float64 // mean shortwave irradiance, W/m2
	Humidity  float64 // mean relative humidity, %
	Soil      float64 // current topsoil moisture, m3/m3
	ET0       float64 // today's reference evapotranspiration, mm
	WindKmh   float64 // mean wind speed, km/h
	PrecipNow float64 // today's precipitation, mm
}

// computeIndices applies the empirical climate-vegetation model. Constants
// follow Carlson & Ripley (1997) style weighting; every output is clamped to
// its physical range and rounded to its documented precision.
func computeIndices(in indicesInput) domain.ClimateIndices {
	m := math.Min(1, in.PrecipDay/150*0.4+in.Soil*2.0*0.3)
	t := math.Max(0, 1-math.Max(0, in.Temp-30)/20) * 0.15
	s := math.Min(1, in.Solar/300) * 0.1
	h := in.Humidity / 100 * 0.05

	ndvi := clamp(0.05+m+t+s+h, 0.03, 0.95)
	evi := ndvi*0.88 + math.Min(0.1, in.Solar/5000)
	savi := ndvi * 1.5 / (ndvi + 0.5)
	ndwi := clamp(in.Humidity/100*0.4+math.Min(in.PrecipDay*30, 200)/200*0.6-0.5, -0.8, 0.9)
	drought := (in.PrecipDay-in.ET0)/30 - (in.Temp-20)/10
	lst := in.Temp + (1-ndvi)*8

	carbon := ndvi * 60
	if ndvi > 0.5 {
		carbon = ndvi * 180
	}

	fire := clamp((1-ndvi)*40+math.Max(0, in.Temp-25)*2+math.Max(0, -drought)*15+in.WindKmh*0.15, 0, 100)

	var flood float64
	switch {
	case in.PrecipNow > 50:
		flood = 80
	case in.PrecipNow > 25:
		flood = 50
	case in.PrecipNow > 10:
		flood = 25
	default:
		flood = 10
	}

	ndvi = round(ndvi, 3)
	category := ndviCategory(ndvi)

	return domain.ClimateIndices{
		NDVI:         ndvi,
		NDVIHealth:   ndviHealth(ndvi, category),
		EVI:          round(evi, 3),
		SAVI:         round(savi, 3),
		NDWI:         round(ndwi, 3),
		DroughtIndex: round(drought, 2),
		LSTProxy:     round(lst, 1),
		CarbonProxy:  round(carbon, 1),
		FireRisk:     round(fire, 0),
		FloodRisk:    round(flood, 0),
		Methodology:  "Empirical climate-vegetation model (Carlson & Ripley 1997)",
	}
}

// ndviCategory maps NDVI to its discrete label. Thresholds are inclusive at
// the lower bound: 0.75 is already Excellent.
func ndviCategory(ndvi float64) string {
	switch {
	case ndvi >= 0.75:
		return "Excellent"
	case ndvi >= 0.6:
		return "Good"
	case ndvi >= 0.45:
		return "Moderate"
	case ndvi >= 0.3:
		return "Low"
	case ndvi >= 0.15:
		return "Very Low"
	default:
		return "Critical"
	}
}

func ndviHealth(ndvi float64, category string) domain.NDVIHealth {
	color := "#ff3d57"
	switch {
	case ndvi >= 0.45:
		color = "#00ff87"
	case ndvi >= 0.3:
		color = "#ffd60a"
	}
	return domain.NDVIHealth{Category: category, Description: category, Color: color}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
