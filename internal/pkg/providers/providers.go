// Package providers holds one typed client per upstream data source. Each
// response struct copies only the fields the scoring engine reads; everything
// else in the upstream payload is ignored at decode time.
package providers

// Set bundles every external data source the analysis engine fans out to.
// Base URLs are overridable so tests can point clients at local servers.
type Set struct {
	Power     *PowerClient
	Forecast  *ForecastClient
	Archive   *ArchiveClient
	Stac      *StacClient
	Elevation *ElevationClient
	Nominatim *NominatimClient
	Overpass  *OverpassClient
}

func NewSet() *Set {
	return &Set{
		Power:     &PowerClient{BaseURL: "https://power.larc.nasa.gov"},
		Forecast:  &ForecastClient{BaseURL: "https://api.open-meteo.com"},
		Archive:   &ArchiveClient{BaseURL: "https://archive-api.open-meteo.com"},
		Stac:      &StacClient{BaseURL: "https://catalogue.dataspace.copernicus.eu"},
		Elevation: &ElevationClient{BaseURL: "https://api.open-elevation.com"},
		Nominatim: &NominatimClient{BaseURL: "https://nominatim.openstreetmap.org"},
		Overpass:  &OverpassClient{BaseURL: "https://overpass-api.de"},
	}
}

// userAgent identifies us to OSM services, which require a contact in the UA.
const userAgent = "EcoScanAI/4.0 (contact@ecoscan.ai)"
