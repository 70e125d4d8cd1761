package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// Client talks to the booking API over HTTP. All operations take a
// context and fail fast on transport errors; server rejections of lock
// and unlock requests are surfaced as LockError/UnlockError carrying the
// server's message verbatim.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// LockRequest is the body of POST /seats/lock. PreviousSeat is only set
// for single-seat replace semantics: the server atomically releases it
// before granting the new lock.
type LockRequest struct {
	FlightID     string `json:"flightId"`
	SeatNumber   string `json:"seatNumber"`
	SessionID    string `json:"sessionId"`
	PreviousSeat string `json:"previousSeat,omitempty"`
}

// UnlockRequest is the body of POST /seats/unlock.
type UnlockRequest struct {
	FlightID   string `json:"flightId"`
	SeatNumber string `json:"seatNumber"`
	SessionID  string `json:"sessionId"`
}

// QuoteRequest asks the dynamic pricing endpoint for one seat's fare.
type QuoteRequest struct {
	TravelClass  models.TravelClass  `json:"travelClass"`
	ExtraLegroom bool                `json:"isExtraLegroom"`
	Position     models.SeatPosition `json:"position"`
}

type seatsResponse struct {
	Seats []models.Seat `json:"seats"`
}

type quoteResponse struct {
	Fare float64 `json:"fare"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetSeats fetches the current seat list for a flight leg.
func (c *Client) GetSeats(ctx context.Context, flightID string) ([]models.Seat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/seats/flight/"+flightID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build seats request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrFlightNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seats request failed: %s", readError(resp))
	}

	var body seatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode seats response: %w", err)
	}
	return body.Seats, nil
}

// LockSeat asks the server to lock one seat for this session.
func (c *Client) LockSeat(ctx context.Context, req LockRequest) error {
	resp, err := c.postJSON(ctx, "/seats/lock", req)
	if err != nil {
		return fmt.Errorf("lock request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &LockError{SeatNumber: req.SeatNumber, Message: readError(resp)}
	}
	return nil
}

// UnlockSeat releases a lock this session holds.
func (c *Client) UnlockSeat(ctx context.Context, req UnlockRequest) error {
	resp, err := c.postJSON(ctx, "/seats/unlock", req)
	if err != nil {
		return fmt.Errorf("unlock request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UnlockError{SeatNumber: req.SeatNumber, Message: readError(resp)}
	}
	return nil
}

// GetPricingConfig fetches the static fare configuration used for
// fallback fare computation.
func (c *Client) GetPricingConfig(ctx context.Context) (models.PricingConfig, error) {
	var cfg models.PricingConfig

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pricing/config", nil)
	if err != nil {
		return cfg, fmt.Errorf("failed to build pricing request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cfg, fmt.Errorf("failed to fetch pricing config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cfg, fmt.Errorf("pricing config request failed: %s", readError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode pricing config: %w", err)
	}
	return cfg, nil
}

// QuoteSeat fetches the dynamic fare for one seat.
func (c *Client) QuoteSeat(ctx context.Context, req QuoteRequest) (float64, error) {
	resp, err := c.postJSON(ctx, "/pricing/quote", req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote rejected: %s", readError(resp))
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode quote response: %w", err)
	}
	return body.Fare, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// readError extracts the server's error message from a non-2xx response.
func readError(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return resp.Status
}
