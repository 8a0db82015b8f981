package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// LookupService talks to the external place-lookup collaborator. The core
// only depends on the two call shapes below (autocomplete candidates and
// full metadata by external id), not on any particular provider schema; the
// deployed endpoint proxies Google Places but tests point it at httptest.
type LookupService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

var lookupService *LookupService

// GetLookupService returns the lookup client singleton, configured from
// PLACES_API_URL / PLACES_API_KEY.
func GetLookupService() *LookupService {
	if lookupService == nil {
		lookupService = &LookupService{
			client: &http.Client{
				Timeout: 10 * time.Second,
			},
			baseURL: os.Getenv("PLACES_API_URL"),
			apiKey:  os.Getenv("PLACES_API_KEY"),
		}
	}
	return lookupService
}

// Suggestion is one ranked autocomplete candidate.
type Suggestion struct {
	ExternalID    string `json:"external_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// PlaceDetails is the full metadata for one external place.
type PlaceDetails struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Phone             string   `json:"phone"`
	Website           string   `json:"website"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Rating            *float64 `json:"rating"`
	RatingCount       *int     `json:"rating_count"`
	PriceLevel        *int     `json:"price_level"`
	OpeningHours      string   `json:"opening_hours"`
	Photos            []string `json:"photos"`
	ExtractedLocation string   `json:"extracted_location"`
}

// Autocomplete returns ranked candidates for a free-text query.
func (s *LookupService) Autocomplete(input string) ([]Suggestion, error) {
	endpoint := fmt.Sprintf("%s/autocomplete?input=%s&key=%s",
		s.baseURL, url.QueryEscape(input), url.QueryEscape(s.apiKey))

	var out struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := s.getJSON(endpoint, &out); err != nil {
		return nil, &LookupError{Op: "autocomplete", Err: err}
	}
	return out.Suggestions, nil
}

// Details returns the full metadata for an external place id.
func (s *LookupService) Details(externalID string) (*PlaceDetails, error) {
	endpoint := fmt.Sprintf("%s/details?place_id=%s&key=%s",
		s.baseURL, url.QueryEscape(externalID), url.QueryEscape(s.apiKey))

	var out PlaceDetails
	if err := s.getJSON(endpoint, &out); err != nil {
		return nil, &LookupError{Op: "details", Err: err}
	}
	return &out, nil
}

func (s *LookupService) getJSON(endpoint string, out interface{}) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
