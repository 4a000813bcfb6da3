package places

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/team4/foodflow/internal/types"
)

const (
	nearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	placeDetailsURL = "https://maps.googleapis.com/maps/api/place/details/json"

	// DefaultSearchRadius is the Places API search radius in meters.
	DefaultSearchRadius = 5000

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the user agent string for HTTP requests.
	DefaultUserAgent = "Mozilla/5.0 (compatible; FoodFlow/1.0)"

	// pageTokenDelay is how long a next_page_token takes to become valid.
	pageTokenDelay = 2 * time.Second
)

// Restaurant home location used for distance calculations.
const (
	HomeLat = 32.0861
	HomeLng = 34.7825
)

// DefaultSearchLocations covers the Tel Aviv area with overlapping circles.
var DefaultSearchLocations = []string{
	"32.0730,34.8003", "32.0853,34.7818", "32.0635,34.7722", "32.0554,34.7522",
	"32.0742,34.7920", "32.0925,34.8034", "32.1000,34.8240", "32.0690,34.8244",
	"32.0816,34.8486", "32.0765,34.8241", "32.0697,34.7947", "32.0231,34.7482",
	"32.0260,34.8100", "32.0755,34.8254", "32.1850,34.8260",
}

// Error represents a failure talking to the Places API.
type Error struct {
	Query   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("places error for %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("places error for %q: %s", e.Query, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// SearchOptions configures a Places API sweep.
type SearchOptions struct {
	APIKey    string
	Keyword   string
	Locations []string
	Radius    int
	Timeout   time.Duration
	UserAgent string
}

// DefaultSearchOptions returns the sweep used to refresh the soup kitchen
// dataset: the Hebrew keyword for soup kitchens across the Tel Aviv grid.
func DefaultSearchOptions(apiKey string) *SearchOptions {
	return &SearchOptions{
		APIKey:    apiKey,
		Keyword:   "בית תמחוי",
		Locations: DefaultSearchLocations,
		Radius:    DefaultSearchRadius,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

type nearbySearchResponse struct {
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	NextPageToken string `json:"next_page_token"`
	Status        string `json:"status"`
}

type placeDetailsResponse struct {
	Result struct {
		OpeningHours struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
	} `json:"result"`
	Status string `json:"status"`
}

// FetchSoupKitchens sweeps the Places API for donation-friendly kitchens near
// the restaurant, resolves opening hours per place, deduplicates by name and
// address, and computes the distance from the restaurant for each result.
func FetchSoupKitchens(ctx context.Context, opts *SearchOptions) ([]types.DonationCenter, error) {
	if opts == nil || opts.APIKey == "" {
		return nil, &Error{Query: "nearby search", Message: "missing API key"}
	}

	client := &http.Client{Timeout: opts.Timeout}

	seen := make(map[string]bool)
	var kitchens []types.DonationCenter

	for _, loc := range opts.Locations {
		pageToken := ""
		for {
			if pageToken != "" {
				if err := sleepCtx(ctx, pageTokenDelay); err != nil {
					return kitchens, err
				}
			}

			page, err := fetchNearbyPage(ctx, client, opts, loc, pageToken)
			if err != nil {
				return kitchens, err
			}

			for _, place := range page.Results {
				key := place.Name + "|" + place.Vicinity
				if place.Name == "" || seen[key] {
					continue
				}
				seen[key] = true

				hours, err := fetchOpeningHours(ctx, client, opts, place.PlaceID)
				if err != nil {
					// Hours are optional, keep the place without them.
					hours = ""
				}

				dist := haversineKm(place.Geometry.Location.Lat, place.Geometry.Location.Lng, HomeLat, HomeLng)
				kitchens = append(kitchens, types.DonationCenter{
					Name:       place.Name,
					Address:    place.Vicinity,
					DistanceKm: math.Round(dist*100) / 100,
					Hours:      hours,
				})
			}

			pageToken = page.NextPageToken
			if pageToken == "" {
				break
			}
		}
	}

	return kitchens, nil
}

func fetchNearbyPage(ctx context.Context, client *http.Client, opts *SearchOptions, location, pageToken string) (*nearbySearchResponse, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("radius", fmt.Sprintf("%d", opts.Radius))
	params.Set("keyword", opts.Keyword)
	params.Set("key", opts.APIKey)
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}

	var page nearbySearchResponse
	if err := getJSON(ctx, client, opts.UserAgent, nearbySearchURL+"?"+params.Encode(), &page); err != nil {
		return nil, &Error{Query: "nearby search " + location, Message: "request failed", Cause: err}
	}
	return &page, nil
}

func fetchOpeningHours(ctx context.Context, client *http.Client, opts *SearchOptions, placeID string) (string, error) {
	if placeID == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "opening_hours")
	params.Set("key", opts.APIKey)

	var details placeDetailsResponse
	if err := getJSON(ctx, client, opts.UserAgent, placeDetailsURL+"?"+params.Encode(), &details); err != nil {
		return "", &Error{Query: "place details " + placeID, Message: "request failed", Cause: err}
	}
	return strings.Join(details.Result.OpeningHours.WeekdayText, "\n"), nil
}

func getJSON(ctx context.Context, client *http.Client, userAgent, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// haversineKm returns the great-circle distance between two points in km.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// SaveSoupKitchensCSV writes the fetched dataset in the same shape the
// loaders read back.
func SaveSoupKitchensCSV(path string, kitchens []types.DonationCenter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "address", "distance_from_ha_salon_km", "opening_hours"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, k := range kitchens {
		record := []string{k.Name, k.Address, fmt.Sprintf("%.2f", k.DistanceKm), k.Hours}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
