package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
)

type OverpassResult struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

type OverpassClient struct {
	BaseURL string
}

// Landuse queries ways and relations tagged with landuse/natural around the
// point. The breakdown served to clients is still a placeholder; only the
// success of this call is surfaced (see domain.LandUse).
func (c *OverpassClient) Landuse(ctx context.Context, lat, lon float64) httpx.TimedResult[OverpassResult] {
	query := fmt.Sprintf(
		`[out:json][timeout:30];(way["landuse"~"farmland|forest|residential|industrial|commercial|grass|meadow|orchard|vineyard|scrub"](around:8000,%f,%f);way["natural"~"wood|water|wetland|grassland|heath|scrub|bare_rock|sand|glacier"](around:8000,%f,%f);relation["landuse"](around:8000,%f,%f););out tags;`,
		lat, lon, lat, lon, lat, lon,
	)

	form := url.Values{}
	form.Set("data", query)

	return httpx.Do[OverpassResult](ctx, httpx.Request{
		Method: http.MethodPost,
		URL:    c.BaseURL + "/api/interpreter",
		Body:   []byte(form.Encode()),
		Header: http.Header{"Content-Type": []string{"application/x-www-form-urlencoded;charset=UTF-8"}},
	})
}
