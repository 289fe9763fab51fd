package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nestavo/contracts/backend/config"
	"github.com/nestavo/contracts/backend/model"
)

// Lookup interfaces consumed by the contract engine. The directory service
// below implements all three against the platform's directory API; tests
// substitute fakes.

type UserLookup interface {
	LookupUser(ctx context.Context, userID string) (*UserProfile, error)
}

type PropertyLookup interface {
	LookupProperty(ctx context.Context, propertyID string) (*model.PropertySnapshot, error)
}

type ReservationLookup interface {
	LookupReservation(ctx context.Context, reservationID string) (*model.ReservationSnapshot, error)
}

// UserProfile is the directory's view of a platform user.
type UserProfile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type DirectoryService struct {
	config     *config.DirectoryConfig
	httpClient *http.Client
}

func NewDirectoryService(cfg *config.DirectoryConfig) *DirectoryService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DirectoryService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LookupUser resolves a user's profile for party construction.
func (s *DirectoryService) LookupUser(ctx context.Context, userID string) (*UserProfile, error) {
	var profile UserProfile
	if err := s.getJSON(ctx, "/users/"+url.PathEscape(userID), &profile, model.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &profile, nil
}

type propertyResponse struct {
	Title   string  `json:"title"`
	Address string  `json:"address"`
	Surface float64 `json:"surface"`
	Rooms   int     `json:"rooms"`
}

// LookupProperty resolves the property snapshot captured at generation time.
func (s *DirectoryService) LookupProperty(ctx context.Context, propertyID string) (*model.PropertySnapshot, error) {
	var resp propertyResponse
	if err := s.getJSON(ctx, "/properties/"+url.PathEscape(propertyID), &resp, model.ErrPropertyNotFound); err != nil {
		return nil, err
	}
	return &model.PropertySnapshot{
		PropertyID: propertyID,
		Title:      resp.Title,
		Address:    resp.Address,
		Surface:    resp.Surface,
		Rooms:      resp.Rooms,
	}, nil
}

type reservationResponse struct {
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MonthlyRent float64   `json:"monthly_rent"`
}

// LookupReservation resolves the reservation snapshot captured at generation time.
func (s *DirectoryService) LookupReservation(ctx context.Context, reservationID string) (*model.ReservationSnapshot, error) {
	var resp reservationResponse
	if err := s.getJSON(ctx, "/reservations/"+url.PathEscape(reservationID), &resp, model.ErrReservationNotFound); err != nil {
		return nil, err
	}
	return &model.ReservationSnapshot{
		ReservationID: reservationID,
		StartDate:     resp.StartDate,
		EndDate:       resp.EndDate,
		MonthlyRent:   resp.MonthlyRent,
	}, nil
}

// getJSON performs an authenticated GET against the directory API. A 404 maps
// to the given typed notFound error so callers can tell missing entities apart
// from transport failures.
func (s *DirectoryService) getJSON(ctx context.Context, path string, out any, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.APIURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return notFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	return nil
}
