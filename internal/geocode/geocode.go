// Package geocode turns coordinates into a display address via the
// Nominatim reverse lookup. The result is display-only and cached in
// memory; nothing downstream depends on it being accurate.
package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

type Resolver struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[string]string
}

func NewResolver() *Resolver {
	return NewResolverWithBaseURL(defaultBaseURL)
}

func NewResolverWithBaseURL(baseURL string) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   make(map[string]string),
	}
}

// Resolve returns a human-readable address for the coordinates, or the
// coordinate fallback string when the lookup fails. Successful lookups are
// cached by rounded coordinates; failures are not, so the next call can
// try again.
func (r *Resolver) Resolve(lat, lng float64) string {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)

	r.mu.Lock()
	if addr, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return addr
	}
	r.mu.Unlock()

	addr, err := r.lookup(lat, lng)
	if err != nil || addr == "" {
		return Fallback(lat, lng)
	}

	r.mu.Lock()
	r.cache[key] = addr
	r.mu.Unlock()
	return addr
}

func (r *Resolver) lookup(lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		r.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lng)),
	)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "geotrack-backend/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode: status %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.DisplayName, nil
}

// Fallback is the display string used when no address is available.
func Fallback(lat, lng float64) string {
	return fmt.Sprintf("Coordinates: %.4f, %.4f", lat, lng)
}
