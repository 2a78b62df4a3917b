// Package geocoding resuelve direcciones a coordenadas con Nominatim (OpenStreetMap).
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/pkg/textnorm"
)

var _ ports.Geocoder = (*Nominatim)(nil)

// SpainBound península, Baleares, Canarias, Ceuta y Melilla.
var SpainBound = orb.Bound{
	Min: orb.Point{-18.5, 27.4},
	Max: orb.Point{4.6, 44.0},
}

// Nominatim geocodificador con caché en memoria (incluye resultados vacíos).
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*dto.GeocodeResult
	group singleflight.Group
}

// NewNominatim construye el cliente. Nominatim exige un User-Agent identificable.
func NewNominatim(baseURL, userAgent string, timeout time.Duration, log zerolog.Logger) *Nominatim {
	return &Nominatim{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "geocoding").Logger(),
		cache:      make(map[string]*dto.GeocodeResult),
	}
}

type nominatimPlace struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		Quarter       string `json:"quarter"`
		CityDistrict  string `json:"city_district"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		Municipality  string `json:"municipality"`
		Province      string `json:"province"`
		State         string `json:"state"`
		Postcode      string `json:"postcode"`
	} `json:"address"`
}

// Geocode devuelve el primer resultado dentro de España o (nil, nil).
// Las peticiones concurrentes de la misma dirección comparten una sola llamada.
func (n *Nominatim) Geocode(ctx context.Context, address string) (*dto.GeocodeResult, error) {
	key := textnorm.Fold(address)
	if key == "" {
		return nil, nil
	}
	n.mu.RLock()
	cached, ok := n.cache[key]
	n.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := n.group.Do(key, func() (any, error) {
		res, err := n.search(ctx, address)
		if err != nil {
			return nil, err
		}
		n.mu.Lock()
		n.cache[key] = res
		n.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.GeocodeResult), nil
}

func (n *Nominatim) search(ctx context.Context, address string) (*dto.GeocodeResult, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	q.Set("countrycodes", "es")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoding: crear request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("geocoding: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding: Nominatim HTTP %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("geocoding: deserializar respuesta: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}
	p := places[0]
	lat, errLat := strconv.ParseFloat(p.Lat, 64)
	lon, errLon := strconv.ParseFloat(p.Lon, 64)
	if errLat != nil || errLon != nil {
		return nil, fmt.Errorf("geocoding: coordenadas inválidas %q,%q", p.Lat, p.Lon)
	}
	if !SpainBound.Contains(orb.Point{lon, lat}) {
		n.log.Debug().Float64("lat", lat).Float64("lon", lon).Str("address", address).Msg("resultado fuera de España descartado")
		return nil, nil
	}

	a := p.Address
	return &dto.GeocodeResult{
		Latitude:     lat,
		Longitude:    lon,
		Neighborhood: firstNonEmpty(a.Neighbourhood, a.Suburb, a.Quarter, a.CityDistrict),
		City:         firstNonEmpty(a.City, a.Town, a.Village, a.Municipality),
		Province:     firstNonEmpty(a.Province, a.State),
		PostalCode:   a.Postcode,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
