// Package stub is an in-memory implementation of the booking API this
// client consumes: seat inventory, server-arbitrated locks with expiry,
// pricing, bookings, and the per-flight WebSocket push channel. It backs
// local development (cmd/stubapi) and integration tests.
package stub

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// Server exposes the stub booking API over HTTP.
type Server struct {
	store    *Store
	hub      *Hub
	pricing  models.PricingConfig
	upgrader websocket.Upgrader
}

// DefaultPricing is the stub's fare configuration. The client's fallback
// arithmetic must agree with the quote handler below, which applies the
// same rule plus a position surcharge.
var DefaultPricing = models.PricingConfig{
	BaseFare: 100,
	ClassMultipliers: map[models.TravelClass]float64{
		models.TravelClassFirst:    3.0,
		models.TravelClassBusiness: 1.8,
		models.TravelClassEconomy:  1.0,
	},
	ExtraLegroomCharge: 25,
	TaxRate:            0.1,
}

// NewServer wires a store to a running hub.
func NewServer(store *Store) *Server {
	s := &Server{
		store:   store,
		hub:     NewHub(),
		pricing: DefaultPricing,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	go s.hub.Run()
	return s
}

// StartReaper releases expired locks on an interval, broadcasting
// seatExpired for each. Returns a stop function.
func (s *Server) StartReaper(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if events := s.store.ReapExpired(); len(events) > 0 {
					s.hub.Broadcast(events...)
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/seats/flight/{flightId}", s.handleGetSeats).Methods(http.MethodGet)
	api.HandleFunc("/seats/lock", s.handleLock).Methods(http.MethodPost)
	api.HandleFunc("/seats/unlock", s.handleUnlock).Methods(http.MethodPost)
	api.HandleFunc("/pricing/config", s.handlePricingConfig).Methods(http.MethodGet)
	api.HandleFunc("/pricing/quote", s.handleQuote).Methods(http.MethodPost)
	api.HandleFunc("/bookings", s.handleCreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", s.handleCancelBooking).Methods(http.MethodDelete)
	api.HandleFunc("/seats/flight/{flightId}/ws", s.handleWS)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)

	return r
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleGetSeats(w http.ResponseWriter, r *http.Request) {
	flightID := mux.Vars(r)["flightId"]
	seats, ok := s.store.Seats(flightID)
	if !ok {
		respondError(w, http.StatusNotFound, "Flight not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"seats": seats})
}

type lockRequest struct {
	FlightID     string `json:"flightId"`
	SeatNumber   string `json:"seatNumber"`
	SessionID    string `json:"sessionId"`
	PreviousSeat string `json:"previousSeat,omitempty"`
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightID == "" || req.SeatNumber == "" || req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "flightId, seatNumber and sessionId are required")
		return
	}

	events, err := s.store.Lock(req.FlightID, req.SeatNumber, req.SessionID, req.PreviousSeat)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.hub.Broadcast(events...)
	respondJSON(w, http.StatusOK, map[string]string{"status": "locked"})
}

type unlockRequest struct {
	FlightID   string `json:"flightId"`
	SeatNumber string `json:"seatNumber"`
	SessionID  string `json:"sessionId"`
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	events, err := s.store.Unlock(req.FlightID, req.SeatNumber, req.SessionID)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.hub.Broadcast(events...)
	respondJSON(w, http.StatusOK, map[string]string{"status": "unlocked"})
}

func (s *Server) handlePricingConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.pricing)
}

type quoteRequest struct {
	TravelClass  models.TravelClass  `json:"travelClass"`
	ExtraLegroom bool                `json:"isExtraLegroom"`
	Position     models.SeatPosition `json:"position"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fare := s.pricing.BaseFare * s.pricing.Multiplier(req.TravelClass)
	if req.ExtraLegroom {
		fare += s.pricing.ExtraLegroomCharge
	}
	switch req.Position {
	case models.SeatPositionWindow:
		fare += 10
	case models.SeatPositionAisle:
		fare += 5
	}
	fare *= 1 + s.pricing.TaxRate

	respondJSON(w, http.StatusOK, map[string]float64{"fare": fare})
}

type createBookingRequest struct {
	FlightID  string `json:"flightId"`
	SessionID string `json:"sessionId"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, events, err := s.store.Book(req.FlightID, req.SessionID)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.hub.Broadcast(events...)
	respondJSON(w, http.StatusCreated, map[string]string{"bookingId": id})
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	events, err := s.store.CancelBooking(id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.hub.Broadcast(events...)
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	flightID := mux.Vars(r)["flightId"]
	if _, ok := s.store.Seats(flightID); !ok {
		respondError(w, http.StatusNotFound, "Flight not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stub: websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		hub:      s.hub,
		conn:     conn,
		send:     make(chan []byte, 64),
		flightID: flightID,
	}
	s.hub.register <- c
	go c.writePump()
	go c.readPump()
}
