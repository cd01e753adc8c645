package analysis

import (
	"math"
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/providers"
)

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func buildForecastDays(fc providers.Forecast) []domain.ForecastDay {
	days := make([]domain.ForecastDay, 0, len(fc.Daily.Time))
	for i, date := range fc.Daily.Time {
		day := domain.ForecastDay{
			Date:              date,
			TempMax:           at(fc.Daily.TemperatureMax, i),
			TempMin:           at(fc.Daily.TemperatureMin, i),
			PrecipSum:         at(fc.Daily.PrecipitationSum, i),
			PrecipProbability: at(fc.Daily.PrecipitationProbabilityMax, i),
			ET0:               at(fc.Daily.ET0, i),
			SoilMoisture:      at(fc.Daily.SoilMoistureMean, i),
			WindMax:           at(fc.Daily.WindSpeedMax, i),
		}
		if sun := at(fc.Daily.SunshineDuration, i); sun != nil {
			day.SunshineHours = ptr(round(*sun/3600, 1))
		}
		days = append(days, day)
	}
	return days
}

func weeklyTotals(days []domain.ForecastDay) (precip float64, avgTemp *float64, et0 float64) {
	if len(days) == 0 {
		return 0, nil, 0
	}

	var tempSum float64
	for _, d := range days {
		precip += orDefault(d.PrecipSum, 0)
		et0 += orDefault(d.ET0, 0)
		tempSum += (orDefault(d.TempMax, 0) + orDefault(d.TempMin, 0)) / 2
	}
	return round(precip, 1), ptr(round(tempSum/float64(len(days)), 1)), round(et0, 1)
}

func strProp(props map[string]interface{}, key, def string) string {
	if s, ok := props[key].(string); ok && s != "" {
		return s
	}
	return def
}

func cloudOf(props map[string]interface{}) *float64 {
	if v, ok := props["eo:cloud_cover"].(float64); ok {
		return ptr(v)
	}
	if v, ok := props["s2:cloud_cover"].(float64); ok {
		return ptr(v)
	}
	return nil
}

// buildScenes flattens the STAC features, averaging cloud cover over the
// scenes that report it and picking the least cloudy scene as best.
func buildScenes(res httpx.TimedResult[providers.StacSearch]) ([]domain.SatelliteScene, *float64, *domain.SatelliteScene) {
	if !res.OK || len(res.Data.Features) == 0 {
		return []domain.SatelliteScene{}, nil, nil
	}

	scenes := make([]domain.SatelliteScene, 0, len(res.Data.Features))
	var cloudSum float64
	cloudCount := 0
	bestIdx, bestCloud := -1, 999.0

	for i, f := range res.Data.Features {
		scene := domain.SatelliteScene{
			ID:              f.ID,
			Date:            strProp(f.Properties, "datetime", ""),
			CloudCoverPct:   cloudOf(f.Properties),
			OrbitDirection:  strProp(f.Properties, "sat:orbit_state", "unknown"),
			ProcessingLevel: strProp(f.Properties, "processing:level", "L2A"),
			Mission:         strProp(f.Properties, "platform", "Sentinel-2"),
		}
		scenes = append(scenes, scene)

		if scene.CloudCoverPct != nil {
			cloudSum += *scene.CloudCoverPct
			cloudCount++
			if *scene.CloudCoverPct < bestCloud {
				bestCloud = *scene.CloudCoverPct
				bestIdx = i
			}
		}
	}

	var avgCloud *float64
	if cloudCount > 0 {
		avgCloud = ptr(round(cloudSum/float64(cloudCount), 1))
	}

	var best *domain.SatelliteScene
	if bestIdx >= 0 {
		b := scenes[bestIdx]
		best = &b
	}
	return scenes, avgCloud, best
}

type climateMetrics struct {
	ok          bool
	tempAvg     *float64
	tempMax     *float64
	tempMin     *float64
	precipTotal *float64
	solarAvg    *float64
	humidityAvg *float64
	windAvgKmh  *float64
	windMaxKmh  *float64
	dew         *float64
	pressure    *float64
}

func buildClimate(win dateWindow, days int, m climateMetrics) domain.ClimateHistory {
	var out domain.ClimateHistory
	out.Period = domain.Period{Start: win.startISO, End: win.endISO, Days: days}

	out.Temperature.Avg = roundPtr(m.tempAvg, 1)
	out.Temperature.Max = roundPtr(m.tempMax, 1)
	out.Temperature.Min = roundPtr(m.tempMin, 1)

	out.Precipitation.Total = roundPtr(m.precipTotal, 1)
	if m.precipTotal != nil {
		out.Precipitation.DailyAvg = ptr(round(*m.precipTotal/float64(days), 2))
	}

	out.Solar.Avg = roundPtr(m.solarAvg, 1)
	out.Solar.Unit = "W/m2"
	out.Humidity.Avg = roundPtr(m.humidityAvg, 1)
	out.Humidity.Unit = "%"
	out.Wind.Avg = roundPtr(m.windAvgKmh, 1)
	out.Wind.Max = roundPtr(m.windMaxKmh, 1)
	out.Wind.Unit = "km/h"
	out.DewPoint = roundPtr(m.dew, 1)
	out.Pressure = roundPtr(m.pressure, 1)

	out.DataSource = "NASA POWER"
	out.APISuccess = m.ok
	return out
}

var weatherCodes = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Depositing rime fog",
	51: "Light drizzle", 53: "Moderate drizzle", 55: "Dense drizzle",
	61: "Slight rain", 63: "Moderate rain", 65: "Heavy rain",
	71: "Slight snow", 73: "Moderate snow", 75: "Heavy snow",
	80: "Rain showers", 81: "Moderate rain showers", 82: "Violent rain showers",
	95: "Thunderstorm", 96: "Thunderstorm with hail", 99: "Thunderstorm with heavy hail",
}

func describeWeather(code *float64) string {
	if code == nil {
		return "Unknown"
	}
	if desc, ok := weatherCodes[int(*code)]; ok {
		return desc
	}
	return "Unknown"
}

func buildCurrent(cur providers.ForecastCurrent, ok bool) domain.CurrentConditions {
	out := domain.CurrentConditions{
		Temperature:        cur.Temperature,
		Humidity:           cur.RelativeHumidity,
		WindSpeed:          cur.WindSpeed,
		WindDirection:      cur.WindDirection,
		Pressure:           cur.SurfacePressure,
		CloudCover:         cur.CloudCover,
		WeatherCode:        cur.WeatherCode,
		WeatherDescription: describeWeather(cur.WeatherCode),
		Precipitation:      cur.Precipitation,
		SoilMoisture:       cur.SoilMoisture0To1cm,
		SoilTemp:           cur.SoilTemperature0cm,
		DataSource:         "Open-Meteo",
		APISuccess:         ok,
	}

	if cur.Temperature != nil {
		feels := *cur.Temperature + (orDefault(cur.RelativeHumidity, 50)-50)*0.05
		out.FeelsLike = ptr(round(feels, 1))
	}
	return out
}

func buildForecast(days []domain.ForecastDay, weeklyPrecip float64, weeklyAvgTemp *float64, weeklyET0 float64, ok bool) domain.Forecast {
	out := domain.Forecast{Days: days, DataSource: "Open-Meteo", APISuccess: ok}
	out.WeeklyTotal.Precipitation = weeklyPrecip
	out.WeeklyTotal.AvgTemp = weeklyAvgTemp
	out.WeeklyTotal.TotalET0 = weeklyET0
	return out
}

func buildSatellite(scenes []domain.SatelliteScene, avgCloud *float64, best *domain.SatelliteScene, ok bool) domain.SatelliteCatalog {
	out := domain.SatelliteCatalog{
		Scenes:        scenes,
		TotalScenes:   len(scenes),
		AvgCloudCover: avgCloud,
		DataSource:    "Copernicus Data Space",
		APISuccess:    ok,
	}
	if len(scenes) > 0 {
		out.LatestDate = scenes[0].Date
	}
	if best != nil {
		out.BestScene = best.ID
	}
	return out
}

// shapeSummary flattens the full report into the client-facing result the
// dashboard and the public API both consume.
func shapeSummary(req *domain.AnalysisRequest, full *domain.FullReport, alerts []domain.Alert, started time.Time, stacOK bool) *domain.AnalysisResult {
	idx := full.Indices
	advisory := full.Gemini

	recs := make([]string, 0, len(advisory.Recommendations))
	for _, r := range advisory.Recommendations {
		recs = append(recs, r.Priority+": "+r.Action)
	}

	soilMoisture := 0.0
	if full.Current.SoilMoisture != nil {
		soilMoisture = round(*full.Current.SoilMoisture*100, 1)
	}

	sceneRefs := make([]domain.SceneRef, 0, len(full.Satellite.Scenes))
	for _, sc := range full.Satellite.Scenes {
		sceneRefs = append(sceneRefs, domain.SceneRef{
			ID:         sc.ID,
			Datetime:   sc.Date,
			Collection: "sentinel-2-l2a",
			CloudCover: sc.CloudCoverPct,
			Platform:   sc.Mission,
		})
	}

	provider := "simulation"
	if stacOK {
		provider = "stac-earth-search"
	}

	var freshnessDays *int
	if full.Satellite.LatestDate != "" {
		if t, err := time.Parse(time.RFC3339, full.Satellite.LatestDate); err == nil {
			d := int(math.Max(0, math.Round(time.Since(t).Hours()/24)))
			freshnessDays = &d
		}
	}

	qualityScore := 50
	if full.Satellite.AvgCloudCover != nil {
		qualityScore = int(math.Max(40, math.Round(100-*full.Satellite.AvgCloudCover)))
	}

	return &domain.AnalysisResult{
		ID:           full.ID,
		Region:       full.Location.DisplayName,
		Coordinates:  domain.Coordinates{Lat: full.Location.Lat, Lon: full.Location.Lon},
		Timestamp:    full.Timestamp,
		AnalysisType: req.AnalysisType,
		Satellite:    req.Satellite,
		NDVI:         idx.NDVI,
		NDVICategory: idx.NDVIHealth.Category,
		LandUse: domain.LandUseSummary{
			Forest:      full.LandUse.Forest,
			Agriculture: full.LandUse.Agriculture,
			Urban:       full.LandUse.Urban,
			Water:       full.LandUse.Water,
			Bare:        full.LandUse.Bare,
		},
		ChangePercent:  0,
		Confidence:     full.Confidence,
		ProcessingTime: round(time.Since(started).Seconds(), 2),
		Alerts:         alerts,
		SpectralBands: []domain.SpectralBand{
			{Name: "NDVI", Value: idx.NDVI, Unit: "index"},
			{Name: "EVI", Value: idx.EVI, Unit: "index"},
			{Name: "NDWI", Value: idx.NDWI, Unit: "index"},
		},
		ModelInfo: domain.ModelInfo{
			Name:     "EcoScan AI v4",
			Version:  "4.0.0",
			Accuracy: 96,
			Source:   "NASA POWER + Open-Meteo + Copernicus + Groq/HF",
		},
		GeminiSummary:         advisory.Summary,
		GeminiInsights:        advisory.Insights,
		GeminiRecommendations: recs,
		RiskScore:             full.Risks.Overall.Score,
		RiskLevel:             full.Risks.Overall.Level,
		AdditionalIndices: domain.AdditionalIndices{
			EVI:  idx.EVI,
			SAVI: idx.SAVI,
			NDWI: idx.NDWI,
			BSI:  round(1-idx.NDVI, 3),
		},
		Soil: domain.SoilEstimate{
			Moisture:      soilMoisture,
			OrganicMatter: round(math.Max(0.8, idx.NDVI*4), 1),
			PH:            6.8,
			Nitrogen:      round(20+idx.NDVI*40, 0),
			Phosphorus:    round(12+idx.NDVI*20, 0),
			Potassium:     round(90+idx.NDVI*60, 0),
			Salinity:      round(math.Max(0.2, 1.8-idx.NDVI), 1),
		},
		DataSource: domain.DataSourceInfo{
			Provider:      provider,
			UsedLiveData:  stacOK && len(sceneRefs) > 0,
			SceneCount:    len(sceneRefs),
			AvgCloudCover: full.Satellite.AvgCloudCover,
			LatestSceneAt: full.Satellite.LatestDate,
			FreshnessDays: freshnessDays,
			QualityScore:  qualityScore,
			Scenes:        sceneRefs,
		},
		Full: full,
	}
}
