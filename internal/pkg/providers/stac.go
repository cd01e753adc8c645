package providers

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
)

// StacSearch is the Copernicus STAC search response. Properties stay loosely
// typed: cloud cover lives under either eo:cloud_cover or s2:cloud_cover
// depending on the collection.
type StacSearch struct {
	Features []StacFeature `json:"features"`
}

type StacFeature struct {
	ID         string                 `json:"id"`
	Properties map[string]interface{} `json:"properties"`
}

type StacClient struct {
	BaseURL string
}

func (c *StacClient) Search(ctx context.Context, lat, lon float64, startISO, endISO string) httpx.TimedResult[StacSearch] {
	body, err := sonic.Marshal(map[string]interface{}{
		"bbox":        []float64{lon - 0.15, lat - 0.15, lon + 0.15, lat + 0.15},
		"datetime":    startISO + "T00:00:00Z/" + endISO + "T23:59:59Z",
		"collections": []string{"SENTINEL-2"},
		"limit":       10,
		"sortby":      []map[string]string{{"field": "properties.datetime", "direction": "desc"}},
	})
	if err != nil {
		return httpx.TimedResult[StacSearch]{OK: false, Err: err.Error()}
	}

	return httpx.Do[StacSearch](ctx, httpx.Request{
		Method: http.MethodPost,
		URL:    c.BaseURL + "/stac/search",
		Body:   body,
		Header: http.Header{"Content-Type": []string{"application/json"}},
	})
}
