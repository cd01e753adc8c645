package analysis

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/logger"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/providers"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store"
)

// Service is the aggregation and scoring engine: it resolves a coordinate,
// fans out to every provider, reduces the payloads to scalar metrics and
// assembles the report.
type Service struct {
	store     store.Store
	providers *providers.Set
	ai        *ai.Client
}

func NewService(st store.Store, prov *providers.Set, aiClient *ai.Client) *Service {
	return &Service{store: st, providers: prov, ai: aiClient}
}

var coordPattern = regexp.MustCompile(`(-?\d+(\.\d+)?)\s*[, ]\s*(-?\d+(\.\d+)?)`)

func validCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// resolveCoordinates prefers explicit input, then a "lat, lon" substring in
// the region name, then a geocoder lookup.
func (s *Service) resolveCoordinates(ctx context.Context, req *domain.AnalysisRequest) (*domain.Coordinates, error) {
	if req.Coordinates != nil {
		if !validCoordinates(req.Coordinates.Lat, req.Coordinates.Lon) {
			return nil, constants.ErrUnresolvableCoordinates
		}
		return req.Coordinates, nil
	}

	if m := coordPattern.FindStringSubmatch(req.Region); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[3], 64)
		if errLat == nil && errLon == nil && validCoordinates(lat, lon) {
			return &domain.Coordinates{Lat: lat, Lon: lon}, nil
		}
		return nil, constants.ErrUnresolvableCoordinates
	}

	res := s.providers.Nominatim.Search(ctx, req.Region)
	if !res.OK || len(*res.Data) == 0 {
		return nil, constants.ErrUnresolvableCoordinates
	}

	place := (*res.Data)[0]
	lat, errLat := strconv.ParseFloat(place.Lat, 64)
	lon, errLon := strconv.ParseFloat(place.Lon, 64)
	if errLat != nil || errLon != nil || !validCoordinates(lat, lon) {
		return nil, constants.ErrUnresolvableCoordinates
	}

	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}

// parseDays reads the leading day count of a range token ("30d" -> 30),
// clamped to at least a week.
func parseDays(timeRange string) int {
	days, err := strconv.Atoi(strings.TrimSuffix(timeRange, "d"))
	if err != nil || days <= 0 {
		days = 30
	}
	if days < 7 {
		days = 7
	}
	return days
}

type dateWindow struct {
	startISO     string
	endISO       string
	startCompact string
	endCompact   string
}

// windowFor is the inclusive UTC date range of the given length ending today.
func windowFor(days int, now time.Time) dateWindow {
	end := now.UTC()
	start := end.AddDate(0, 0, -(days - 1))
	return dateWindow{
		startISO:     start.Format("2006-01-02"),
		endISO:       end.Format("2006-01-02"),
		startCompact: start.Format("20060102"),
		endCompact:   end.Format("20060102"),
	}
}

func monthStartUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AnalyzeForUser runs the session flow: monthly quota gate, the engine, then
// persistence and the usage counter.
func (s *Service) AnalyzeForUser(ctx context.Context, userID string, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.GetUserByID: %w", err)
	}

	tier := user.SubscriptionTier
	if !domain.ValidTier(tier) {
		tier = domain.TierFree
	}

	count, err := s.store.CountScansSince(ctx, userID, monthStartUTC(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("store.CountScansSince: %w", err)
	}
	if count >= domain.MonthlyQuota[tier] {
		return nil, constants.ErrQuotaExceeded
	}

	result, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := sonic.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	if err := s.store.InsertScan(ctx, &domain.ScanRecord{
		UserID:       userID,
		Region:       result.Region,
		NDVI:         result.NDVI,
		NDVICategory: result.NDVICategory,
		AnalysisType: result.AnalysisType,
		Payload:      payload,
	}); err != nil {
		return nil, fmt.Errorf("store.InsertScan: %w", err)
	}

	// The counter is informational; a failed bump must not fail the scan.
	if err := s.store.IncrementAPIUsage(ctx, userID); err != nil {
		logger.Warnf(ctx, "IncrementAPIUsage: %s", err.Error())
	}

	return result, nil
}

func (s *Service) ListHistory(ctx context.Context, userID string, limit int) ([]*domain.ScanListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	items, err := s.store.ListScans(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("store.ListScans: %w", err)
	}
	return items, nil
}

// Analyze runs the full pipeline without any quota or persistence side
// effects; the public API gateway uses it directly.
func (s *Service) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	started := time.Now()

	coords, err := s.resolveCoordinates(ctx, req)
	if err != nil {
		return nil, err
	}

	days := parseDays(req.TimeRange)
	win := windowFor(days, started)

	// Parallel fan-out: each call is wrapped by httpx and cannot fail the
	// group, so total wall time tracks the slowest provider.
	var (
		nasa     httpx.TimedResult[providers.PowerDaily]
		meteo    httpx.TimedResult[providers.Forecast]
		archive  httpx.TimedResult[providers.Archive]
		stac     httpx.TimedResult[providers.StacSearch]
		elev     httpx.TimedResult[providers.ElevationLookup]
		rev      httpx.TimedResult[providers.ReverseResult]
		overpass httpx.TimedResult[providers.OverpassResult]
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		nasa = s.providers.Power.Daily(egCtx, coords.Lat, coords.Lon, win.startCompact, win.endCompact)
		return nil
	})
	eg.Go(func() error {
		meteo = s.providers.Forecast.Fetch(egCtx, coords.Lat, coords.Lon)
		return nil
	})
	eg.Go(func() error {
		archive = s.providers.Archive.Fetch(egCtx, coords.Lat, coords.Lon, win.startISO, win.endISO)
		return nil
	})
	eg.Go(func() error {
		stac = s.providers.Stac.Search(egCtx, coords.Lat, coords.Lon, win.startISO, win.endISO)
		return nil
	})
	eg.Go(func() error {
		elev = s.providers.Elevation.Lookup(egCtx, coords.Lat, coords.Lon)
		return nil
	})
	eg.Go(func() error {
		rev = s.providers.Nominatim.Reverse(egCtx, coords.Lat, coords.Lon)
		return nil
	})
	eg.Go(func() error {
		overpass = s.providers.Overpass.Landuse(egCtx, coords.Lat, coords.Lon)
		return nil
	})
	_ = eg.Wait()

	// Scalar reduction of the historical series.
	var params map[string]map[string]float64
	if nasa.OK {
		params = nasa.Data.Properties.Parameter
	}
	tempAvg := meanValid(mapValues(params["T2M"]))
	tempMax := maxValid(mapValues(params["T2M_MAX"]))
	tempMin := minValid(mapValues(params["T2M_MIN"]))
	precipTotal := sumValid(mapValues(params["PRECTOTCORR"]))
	solarAvg := meanValid(mapValues(params["ALLSKY_SFC_SW_DWN"]))
	humidityAvg := meanValid(mapValues(params["RH2M"]))
	dew := meanValid(mapValues(params["T2MDEW"]))
	pressure := meanValid(mapValues(params["PS"]))

	var windAvgKmh, windMaxKmh *float64
	if windAvgMs := meanValid(mapValues(params["WS10M"])); windAvgMs != nil {
		windAvgKmh = ptr(*windAvgMs * 3.6)
	}
	if windMaxMs := maxValid(mapValues(params["WS10M"])); windMaxMs != nil {
		windMaxKmh = ptr(*windMaxMs * 3.6)
	}

	var fc providers.Forecast
	if meteo.OK {
		fc = *meteo.Data
	}
	cur := fc.Current

	forecastDays := buildForecastDays(fc)
	weeklyPrecip, weeklyAvgTemp, weeklyET0 := weeklyTotals(forecastDays)

	precipToday, et0Today := 0.0, 4.0
	if len(forecastDays) > 0 {
		precipToday = orDefault(forecastDays[0].PrecipSum, 0)
		et0Today = orDefault(forecastDays[0].ET0, 4)
	}

	scenes, avgCloud, bestScene := buildScenes(stac)

	precipDay := 3.0
	if precipTotal != nil {
		precipDay = *precipTotal / float64(days)
	}

	idx := computeIndices(indicesInput{
		PrecipDay: precipDay,
		Temp:      orDefault(tempAvg, orDefault(cur.Temperature, 20)),
		Solar:     orDefault(solarAvg, 170),
		Humidity:  orDefault(humidityAvg, orDefault(cur.RelativeHumidity, 55)),
		Soil:      orDefault(cur.SoilMoisture0To1cm, 0.2),
		ET0:       et0Today,
		WindKmh:   orDefault(windAvgKmh, orDefault(cur.WindSpeed, 10)),
		PrecipNow: precipToday,
	})

	risks := assessRisks(idx, riskInput{
		TempAvg:      tempAvg,
		TempMax:      tempMax,
		TempMin:      tempMin,
		WindKmh:      windAvgKmh,
		SoilMoisture: cur.SoilMoisture0To1cm,
		ET0Today:     et0Today,
		PrecipToday:  precipToday,
		WeeklyPrecip: weeklyPrecip,
	})

	displayName := req.Region
	var reverse providers.ReverseResult
	if rev.OK {
		reverse = *rev.Data
		if reverse.DisplayName != "" {
			displayName = reverse.DisplayName
		}
	}

	var elevation *float64
	if elev.OK && len(elev.Data.Results) > 0 {
		elevation = elev.Data.Results[0].Elevation
	}

	// The prompt embeds only computed values, never raw provider payloads.
	prompt := fmt.Sprintf(
		"Use only these real values and return JSON with keys headline,summary,insights,recommendations,agriAdvisory,climateContext,forecast7dSummary,waterResourcesSummary.\n"+
			"Location: %s. NDVI=%v, EVI=%v, SAVI=%v, NDWI=%v, drought=%v, fire=%v, flood=%v, risk=%s(%d/100), tempAvg=%s, precipTotal=%s, humidity=%s, soil=%s, weeklyPrecip=%.1f, weeklyET0=%.1f, scenes=%d, avgCloud=%s",
		displayName, idx.NDVI, idx.EVI, idx.SAVI, idx.NDWI, idx.DroughtIndex, idx.FireRisk, idx.FloodRisk,
		risks.Overall.Level, risks.Overall.Score,
		promptVal(tempAvg), promptVal(precipTotal), promptVal(humidityAvg), promptVal(cur.SoilMoisture0To1cm),
		weeklyPrecip, weeklyET0, len(scenes), promptVal(avgCloud),
	)
	gem := s.ai.GenerateJSON(ctx, prompt)
	advisory := NormalizeAdvisory(gem)

	alerts := buildAlerts(idx)

	timezone := fc.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	full := &domain.FullReport{
		ID:           fmt.Sprintf("scan_%d_%s", started.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		Timestamp:    started.UTC(),
		ProcessingMs: time.Since(started).Milliseconds(),
		Location: domain.Location{
			DisplayName: displayName,
			City:        reverse.CityName(),
			Region:      reverse.RegionName(),
			Country:     reverse.Address.Country,
			CountryCode: strings.ToUpper(reverse.Address.CountryCode),
			Lat:         coords.Lat,
			Lon:         coords.Lon,
			Elevation:   elevation,
			Timezone:    timezone,
		},
		Indices: idx,
		LandUse: placeholderLandUse(overpass.OK),
		Risks:   risks,
		Gemini:  advisory,
		DataSources: domain.DataSources{
			NasaPower:        domain.SourceStatus{Success: nasa.OK, Latency: nasa.LatencyMs, Error: nasa.Err},
			OpenMeteo:        domain.SourceStatus{Success: meteo.OK, Latency: meteo.LatencyMs, Error: meteo.Err},
			OpenMeteoArchive: domain.SourceStatus{Success: archive.OK, Latency: archive.LatencyMs, Error: archive.Err},
			CopernicusStac:   domain.SourceStatus{Success: stac.OK, Latency: stac.LatencyMs, Error: stac.Err},
			OpenElevation:    domain.SourceStatus{Success: elev.OK, Latency: elev.LatencyMs, Error: elev.Err},
			Nominatim:        domain.SourceStatus{Success: rev.OK, Latency: rev.LatencyMs, Error: rev.Err},
			AIProvider:       domain.SourceStatus{Success: gem.OK, Latency: 0, Error: gem.Err},
		},
		Confidence: confidence(nasa.OK, meteo.OK, archive.OK, stac.OK, elev.OK, rev.OK, gem.OK),
	}

	full.Climate = buildClimate(win, days, climateMetrics{
		ok:          nasa.OK,
		tempAvg:     tempAvg,
		tempMax:     tempMax,
		tempMin:     tempMin,
		precipTotal: precipTotal,
		solarAvg:    solarAvg,
		humidityAvg: humidityAvg,
		windAvgKmh:  windAvgKmh,
		windMaxKmh:  windMaxKmh,
		dew:         dew,
		pressure:    pressure,
	})
	full.Current = buildCurrent(cur, meteo.OK)
	full.Forecast = buildForecast(forecastDays, weeklyPrecip, weeklyAvgTemp, weeklyET0, meteo.OK)
	full.Satellite = buildSatellite(scenes, avgCloud, bestScene, stac.OK)

	return shapeSummary(req, full, alerts, started, stac.OK), nil
}

func confidence(ok ...bool) int {
	succeeded := 0
	for _, b := range ok {
		if b {
			succeeded++
		}
	}
	return int(math.Round(float64(succeeded) / float64(len(ok)) * 100))
}

func promptVal(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func buildAlerts(idx domain.ClimateIndices) []domain.Alert {
	alerts := []domain.Alert{}
	if idx.FireRisk > 70 {
		alerts = append(alerts, domain.Alert{Type: "fire", Severity: "high", Message: fmt.Sprintf("Fire risk %v/100", idx.FireRisk)})
	}
	if idx.FloodRisk > 70 {
		alerts = append(alerts, domain.Alert{Type: "flood", Severity: "high", Message: fmt.Sprintf("Flood risk %v/100", idx.FloodRisk)})
	}
	if idx.DroughtIndex < -1 {
		severity := "medium"
		if idx.DroughtIndex < -2 {
			severity = "high"
		}
		alerts = append(alerts, domain.Alert{Type: "drought", Severity: severity, Message: fmt.Sprintf("Drought index %v", idx.DroughtIndex)})
	}
	return alerts
}

// placeholderLandUse is a fixed breakdown: the Overpass result is fetched and
// its status reported, but the percentages are not derived from it.
func placeholderLandUse(osmOK bool) domain.LandUse {
	return domain.LandUse{
		Forest:           30,
		Agriculture:      35,
		Urban:            10,
		Water:            8,
		Bare:             12,
		Grassland:        4,
		Wetland:          1,
		OSMDataAvailable: osmOK,
	}
}
