package analysis

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/providers"
)

type stubStore struct {
	user      *domain.User
	scanCount int
	inserted  []*domain.ScanRecord
	bumps     int
}

func (s *stubStore) CreateUser(context.Context, *domain.User) error { return nil }
func (s *stubStore) GetUserByEmail(context.Context, string) (*domain.User, error) {
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, constants.ErrDBNotFound
	}
	return s.user, nil
}
func (s *stubStore) UpdateUserTier(context.Context, string, domain.SubscriptionTier) error {
	return nil
}
func (s *stubStore) IncrementAPIUsage(context.Context, string) error {
	s.bumps++
	return nil
}
func (s *stubStore) InsertScan(_ context.Context, scan *domain.ScanRecord) error {
	s.inserted = append(s.inserted, scan)
	return nil
}
func (s *stubStore) CountScansSince(context.Context, string, time.Time) (int, error) {
	return s.scanCount, nil
}
func (s *stubStore) ListScans(context.Context, string, int) ([]*domain.ScanListItem, error) {
	return nil, nil
}
func (s *stubStore) InsertAPIKey(context.Context, *domain.APIKeyRecord) error { return nil }
func (s *stubStore) ListAPIKeys(context.Context) ([]*domain.APIKeyRecord, error) {
	return nil, nil
}
func (s *stubStore) GetActiveAPIKey(context.Context, string) (*domain.APIKeyRecord, error) {
	return nil, constants.ErrDBNotFound
}
func (s *stubStore) Ping(context.Context) error { return nil }

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

const powerBody = `{"properties":{"parameter":{
	"T2M":{"d1":20,"d2":-999,"d3":22},
	"T2M_MAX":{"d1":28,"d2":30},
	"T2M_MIN":{"d1":10,"d2":12},
	"PRECTOTCORR":{"d1":2,"d2":4},
	"ALLSKY_SFC_SW_DWN":{"d1":180},
	"RH2M":{"d1":60},
	"WS10M":{"d1":3},
	"T2MDEW":{"d1":8},
	"PS":{"d1":100.2}}}}`

const meteoBody = `{"timezone":"Asia/Almaty",
	"current":{"temperature_2m":21.4,"relative_humidity_2m":50,"wind_speed_10m":8,"soil_moisture_0_to_1cm":0.25,"weather_code":1},
	"daily":{"time":["2026-03-01","2026-03-02"],
		"temperature_2m_max":[25,26],"temperature_2m_min":[12,13],
		"precipitation_sum":[1.5,0],"precipitation_probability_max":[30,10],
		"et0_fao_evapotranspiration":[3.5,4],"soil_moisture_0_to_10cm_mean":[0.22,0.21],
		"sunshine_duration":[36000,32400],"wind_speed_10m_max":[14,16]}}`

const stacBody = `{"features":[
	{"id":"S2A_1","properties":{"datetime":"2026-02-20T10:00:00Z","eo:cloud_cover":12.5,"platform":"sentinel-2a"}},
	{"id":"S2B_2","properties":{"datetime":"2026-02-18T10:00:00Z","s2:cloud_cover":40}}]}`

const reverseBody = `{"display_name":"Almaty, Kazakhstan","address":{"city":"Almaty","state":"Almaty Region","country":"Kazakhstan","country_code":"kz"}}`

const groqBody = `{"choices":[{"message":{"content":"{\"headline\":\"Healthy vegetation\",\"summary\":\"Conditions are stable.\",\"insights\":[\"NDVI is solid\"],\"recommendations\":[{\"priority\":\"high\",\"category\":\"water\",\"action\":\"irrigate\",\"timeframe\":\"now\"}]}"}}]}`

// newTestSet points every provider at a local fixture. searchBody controls
// the geocoder's forward-search reply.
func newTestSet(t *testing.T, searchBody string) *providers.Set {
	t.Helper()

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(r.URL.Path, "/search") {
			_, _ = w.Write([]byte(searchBody))
			return
		}
		_, _ = w.Write([]byte(reverseBody))
	}))

	servers := map[string]*httptest.Server{
		"power":    httptest.NewServer(jsonHandler(powerBody)),
		"meteo":    httptest.NewServer(jsonHandler(meteoBody)),
		"archive":  httptest.NewServer(jsonHandler(`{"daily":{"time":[]}}`)),
		"stac":     httptest.NewServer(jsonHandler(stacBody)),
		"elev":     httptest.NewServer(jsonHandler(`{"results":[{"elevation":820}]}`)),
		"overpass": httptest.NewServer(jsonHandler(`{"elements":[{"tags":{"landuse":"forest"}}]}`)),
	}
	t.Cleanup(func() {
		nominatim.Close()
		for _, srv := range servers {
			srv.Close()
		}
	})

	return &providers.Set{
		Power:     &providers.PowerClient{BaseURL: servers["power"].URL},
		Forecast:  &providers.ForecastClient{BaseURL: servers["meteo"].URL},
		Archive:   &providers.ArchiveClient{BaseURL: servers["archive"].URL},
		Stac:      &providers.StacClient{BaseURL: servers["stac"].URL},
		Elevation: &providers.ElevationClient{BaseURL: servers["elev"].URL},
		Nominatim: &providers.NominatimClient{BaseURL: nominatim.URL},
		Overpass:  &providers.OverpassClient{BaseURL: servers["overpass"].URL},
	}
}

func newTestAI(t *testing.T) *ai.Client {
	t.Helper()
	groq := httptest.NewServer(jsonHandler(groqBody))
	t.Cleanup(groq.Close)
	return &ai.Client{GroqURL: groq.URL, GroqKey: "test-key", GroqModel: "test-model"}
}

func analysisRequest() *domain.AnalysisRequest {
	return &domain.AnalysisRequest{
		Region:       "Almaty",
		Coordinates:  &domain.Coordinates{Lat: 43.25, Lon: 76.9},
		AnalysisType: "vegetation",
		TimeRange:    "30d",
		Satellite:    "sentinel2",
	}
}

func TestAnalyzeForUserFullPipeline(t *testing.T) {
	st := &stubStore{user: &domain.User{ID: "u1", SubscriptionTier: domain.TierFree}}
	svc := NewService(st, newTestSet(t, "[]"), newTestAI(t))

	result, err := svc.AnalyzeForUser(context.Background(), "u1", analysisRequest())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(result.ID, "scan_") {
		t.Errorf("id = %q", result.ID)
	}
	if result.NDVI < 0.03 || result.NDVI > 0.95 {
		t.Errorf("NDVI %v out of range", result.NDVI)
	}
	if result.NDVICategory != ndviCategory(result.NDVI) {
		t.Errorf("category %q inconsistent with NDVI %v", result.NDVICategory, result.NDVI)
	}
	if result.Confidence != 100 {
		t.Errorf("confidence = %d, want 100 with every source up", result.Confidence)
	}
	// The summary carries the reverse-geocoded display name, not the raw input.
	if result.Region != "Almaty, Kazakhstan" {
		t.Errorf("region = %q, want reverse-geocoded display name", result.Region)
	}
	// Processing time is reported in seconds with centisecond precision.
	if cs := result.ProcessingTime * 100; math.Abs(cs-math.Round(cs)) > 1e-9 {
		t.Errorf("processingTime = %v, want at most 2 decimals", result.ProcessingTime)
	}

	full := result.Full
	if full == nil {
		t.Fatal("full report missing")
	}
	if !full.DataSources.NasaPower.Success || !full.DataSources.CopernicusStac.Success {
		t.Errorf("source statuses: %+v", full.DataSources)
	}
	if full.Location.City != "Almaty" || full.Location.CountryCode != "KZ" {
		t.Errorf("location = %+v", full.Location)
	}
	if full.Location.Elevation == nil || *full.Location.Elevation != 820 {
		t.Errorf("elevation = %v", full.Location.Elevation)
	}
	if !full.LandUse.OSMDataAvailable || full.LandUse.Forest != 30 {
		t.Errorf("landUse = %+v", full.LandUse)
	}
	if !full.Gemini.Available || full.Gemini.Headline != "Healthy vegetation" {
		t.Errorf("gemini = %+v", full.Gemini)
	}

	if result.DataSource.Provider != "stac-earth-search" || result.DataSource.SceneCount != 2 {
		t.Errorf("dataSource = %+v", result.DataSource)
	}
	if result.Full.Satellite.BestScene != "S2A_1" {
		t.Errorf("bestScene = %q", result.Full.Satellite.BestScene)
	}
	if len(result.GeminiRecommendations) != 1 || result.GeminiRecommendations[0] != "high: irrigate" {
		t.Errorf("recommendations = %v", result.GeminiRecommendations)
	}

	if len(st.inserted) != 1 {
		t.Fatalf("inserted %d scans, want 1", len(st.inserted))
	}
	if st.inserted[0].Region != "Almaty, Kazakhstan" || st.inserted[0].NDVI != result.NDVI {
		t.Errorf("persisted scan = %+v", st.inserted[0])
	}
	if len(st.inserted[0].Payload) == 0 {
		t.Error("payload should carry the marshalled result")
	}
	if st.bumps != 1 {
		t.Errorf("usage bumped %d times, want 1", st.bumps)
	}
}

func TestAnalyzeAIUnavailable(t *testing.T) {
	st := &stubStore{user: &domain.User{ID: "u1", SubscriptionTier: domain.TierFree}}
	svc := NewService(st, newTestSet(t, "[]"), &ai.Client{})

	result, err := svc.Analyze(context.Background(), analysisRequest())
	if err != nil {
		t.Fatal(err)
	}

	if result.Full.Gemini.Available {
		t.Fatal("advisory should be unavailable without provider keys")
	}
	if result.Full.Gemini.Error == "" {
		t.Error("error string should explain the failure")
	}
	if result.Full.DataSources.AIProvider.Success {
		t.Error("aiProvider status should be down")
	}
	// 6 of 7 sources up: round(6/7*100) = 86.
	if result.Confidence != 86 {
		t.Errorf("confidence = %d, want 86", result.Confidence)
	}
	if result.NDVI < 0.03 || result.NDVI > 0.95 {
		t.Errorf("NDVI %v should still be computed", result.NDVI)
	}
}

func TestAnalyzeForUserQuotaExceeded(t *testing.T) {
	st := &stubStore{
		user:      &domain.User{ID: "u1", SubscriptionTier: domain.TierFree},
		scanCount: domain.MonthlyQuota[domain.TierFree],
	}
	svc := NewService(st, newTestSet(t, "[]"), newTestAI(t))

	_, err := svc.AnalyzeForUser(context.Background(), "u1", analysisRequest())
	if !errors.Is(err, constants.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want quota exceeded", err)
	}
	if len(st.inserted) != 0 {
		t.Error("no scan should be persisted past the quota")
	}
}

func TestAnalyzeUnresolvableRegion(t *testing.T) {
	st := &stubStore{user: &domain.User{ID: "u1", SubscriptionTier: domain.TierFree}}
	svc := NewService(st, newTestSet(t, "[]"), newTestAI(t))

	req := analysisRequest()
	req.Region = "Nowhereville"
	req.Coordinates = nil

	_, err := svc.AnalyzeForUser(context.Background(), "u1", req)
	if !errors.Is(err, constants.ErrUnresolvableCoordinates) {
		t.Fatalf("err = %v, want unresolvable coordinates", err)
	}
	if len(st.inserted) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestResolveCoordinatesFromRegionString(t *testing.T) {
	svc := NewService(&stubStore{}, newTestSet(t, "[]"), nil)

	coords, err := svc.resolveCoordinates(context.Background(), &domain.AnalysisRequest{Region: "43.25, 76.90"})
	if err != nil {
		t.Fatal(err)
	}
	if coords.Lat != 43.25 || coords.Lon != 76.9 {
		t.Fatalf("coords = %+v", coords)
	}
}

func TestResolveCoordinatesViaGeocoder(t *testing.T) {
	svc := NewService(&stubStore{}, newTestSet(t, `[{"lat":"43.25","lon":"76.9"}]`), nil)

	coords, err := svc.resolveCoordinates(context.Background(), &domain.AnalysisRequest{Region: "Almaty"})
	if err != nil {
		t.Fatal(err)
	}
	if coords.Lat != 43.25 || coords.Lon != 76.9 {
		t.Fatalf("coords = %+v", coords)
	}
}

func TestResolveCoordinatesRejectsOutOfRange(t *testing.T) {
	svc := NewService(&stubStore{}, newTestSet(t, "[]"), nil)

	_, err := svc.resolveCoordinates(context.Background(), &domain.AnalysisRequest{
		Region:      "broken",
		Coordinates: &domain.Coordinates{Lat: 120, Lon: 10},
	})
	if !errors.Is(err, constants.ErrUnresolvableCoordinates) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseDays(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"7d", 7},
		{"30d", 30},
		{"365d", 365},
		{"1d", 7},
		{"bogus", 30},
		{"", 30},
	}
	for _, tc := range cases {
		if got := parseDays(tc.in); got != tc.want {
			t.Errorf("parseDays(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestWindowFor(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	win := windowFor(7, now)

	if win.endISO != "2026-03-10" || win.startISO != "2026-03-04" {
		t.Fatalf("window = %+v", win)
	}
	if win.startCompact != "20260304" || win.endCompact != "20260310" {
		t.Fatalf("compact window = %+v", win)
	}
}
