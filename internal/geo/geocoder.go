package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/coldtrail/internal/cache"
	"github.com/ppiankov/coldtrail/internal/model"
)

// Jitter radii in degrees. Centroid fallbacks are displaced so records
// sharing a neighborhood do not stack on one map point.
const (
	neighborhoodJitter = 0.002
	cityJitter         = 0.01
)

// geocodeTTL is how long resolved street coordinates stay cached
const geocodeTTL = 24 * time.Hour

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// cityCenter anchors the final fallback for unknown locations
var cityCenter = Coordinates{Lat: 42.3601, Lon: -71.0589}

// neighborhoodCenters maps lowercase neighborhood names to centroids used
// when a location is a bare neighborhood or street geocoding fails
var neighborhoodCenters = map[string]Coordinates{
	"roxbury":       {Lat: 42.3301, Lon: -71.0995},
	"dorchester":    {Lat: 42.3016, Lon: -71.0676},
	"mattapan":      {Lat: 42.2771, Lon: -71.0914},
	"hyde park":     {Lat: 42.2565, Lon: -71.1241},
	"jamaica plain": {Lat: 42.3097, Lon: -71.1151},
	"east boston":   {Lat: 42.3702, Lon: -71.0389},
	"south boston":  {Lat: 42.3381, Lon: -71.0476},
	"charlestown":   {Lat: 42.3782, Lon: -71.0602},
	"back bay":      {Lat: 42.3503, Lon: -71.0810},
	"downtown":      {Lat: 42.3601, Lon: -71.0589},
	"south end":     {Lat: 42.3388, Lon: -71.0765},
	"brighton":      {Lat: 42.3464, Lon: -71.1627},
	"allston":       {Lat: 42.3539, Lon: -71.1337},
	"west roxbury":  {Lat: 42.2798, Lon: -71.1627},
	"roslindale":    {Lat: 42.2832, Lon: -71.1270},
	"boston":        {Lat: 42.3601, Lon: -71.0589},
}

// NeighborhoodCenters returns a copy of the neighborhood centroid table
func NeighborhoodCenters() map[string]Coordinates {
	out := make(map[string]Coordinates, len(neighborhoodCenters))
	for name, center := range neighborhoodCenters {
		out[name] = center
	}
	return out
}

// Geocoder resolves case locations to coordinates. Street-level locations
// go to Nominatim (rate limited, cached); bare neighborhoods use centroids
// with deterministic jitter, so repeated runs draw identical maps.
type Geocoder struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	store      cache.Cache // may be nil
	baseURL    string
	citySuffix string
	userAgent  string
}

// NewGeocoder creates a geocoder from configuration. The store may be nil
// to disable result caching.
func NewGeocoder(cfg model.GeoConfig, userAgent string, store cache.Cache) *Geocoder {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Geocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		store:      store,
		baseURL:    cfg.NominatimURL,
		citySuffix: cfg.CitySuffix,
		userAgent:  userAgent,
	}
}

// Annotate fills coordinates for every record in place
func (g *Geocoder) Annotate(ctx context.Context, records []model.CaseRecord) {
	for i := range records {
		coords := g.Locate(ctx, records[i].Location, records[i].Signature())
		lat, lon := coords.Lat, coords.Lon
		records[i].Latitude = &lat
		records[i].Longitude = &lon
	}
}

// Locate resolves one location. The record signature seeds the jitter for
// centroid fallbacks, so distinct records spread out deterministically.
func (g *Geocoder) Locate(ctx context.Context, location, signature string) Coordinates {
	lower := strings.ToLower(strings.TrimSpace(location))
	if lower == "" || lower == model.UnknownLocation {
		return jitter(cityCenter, signature, cityJitter)
	}

	// A comma or anything beyond a bare neighborhood name means street
	// detail worth a real lookup.
	_, bareNeighborhood := neighborhoodCenters[lower]
	if strings.Contains(lower, ",") || !bareNeighborhood {
		if coords, ok := g.lookup(ctx, lower); ok {
			return coords
		}
	}

	if center, ok := neighborhoodCenters[lower]; ok {
		return jitter(center, signature, neighborhoodJitter)
	}

	return jitter(cityCenter, signature, cityJitter)
}

// lookup resolves a street-level location through the cache, then Nominatim
func (g *Geocoder) lookup(ctx context.Context, location string) (Coordinates, bool) {
	key := cache.CacheKey("geo:" + location)
	if g.store != nil {
		if raw, found := g.store.Get(key); found {
			var coords Coordinates
			if err := json.Unmarshal(raw, &coords); err == nil {
				return coords, true
			}
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Coordinates{}, false
	}

	coords, err := g.query(ctx, location)
	if err != nil {
		return Coordinates{}, false
	}

	if g.store != nil {
		if raw, err := json.Marshal(coords); err == nil {
			_ = g.store.Set(key, raw, geocodeTTL)
		}
	}

	return coords, true
}

// query performs one Nominatim search request
func (g *Geocoder) query(ctx context.Context, location string) (Coordinates, error) {
	params := url.Values{}
	params.Set("q", location+g.citySuffix)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	// Nominatim returns lat/lon as strings
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, fmt.Errorf("no results for %q", location)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse lon: %w", err)
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}

// jitter displaces a centroid by up to scale degrees on each axis, derived
// from the signature hash rather than a random source
func jitter(center Coordinates, signature string, scale float64) Coordinates {
	h := fnv.New64a()
	h.Write([]byte(signature))
	sum := h.Sum64()

	latUnit := float64(sum&0xFFFF)/0xFFFF*2 - 1
	lonUnit := float64((sum>>16)&0xFFFF)/0xFFFF*2 - 1

	return Coordinates{
		Lat: center.Lat + latUnit*scale,
		Lon: center.Lon + lonUnit*scale,
	}
}
