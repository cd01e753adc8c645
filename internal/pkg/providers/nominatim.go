package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
)

// Place is one Nominatim search hit. Coordinates arrive as strings.
type Place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type ReverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		County      string `json:"county"`
		State       string `json:"state"`
		Region      string `json:"region"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

type NominatimClient struct {
	BaseURL string
}

func (c *NominatimClient) Search(ctx context.Context, query string) httpx.TimedResult[[]Place] {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	return httpx.Do[[]Place](ctx, httpx.Request{
		URL:    c.BaseURL + "/search?" + params.Encode(),
		Header: http.Header{"User-Agent": []string{userAgent}},
	})
}

func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) httpx.TimedResult[ReverseResult] {
	reqURL := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json&addressdetails=1&zoom=10", c.BaseURL, lat, lon)
	return httpx.Do[ReverseResult](ctx, httpx.Request{
		URL:    reqURL,
		Header: http.Header{"User-Agent": []string{userAgent}},
	})
}

// CityName resolves the best-effort city label from the address fields.
func (r ReverseResult) CityName() string {
	for _, v := range []string{r.Address.City, r.Address.Town, r.Address.Village, r.Address.County} {
		if v != "" {
			return v
		}
	}
	return ""
}

// RegionName prefers the state over the looser region field.
func (r ReverseResult) RegionName() string {
	if r.Address.State != "" {
		return r.Address.State
	}
	return r.Address.Region
}
