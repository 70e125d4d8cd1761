// Package pricing computes the live fare total for a seat selection.
// Each seat is priced through the dynamic quote endpoint; on any failure
// the static fallback formula from /pricing/config is used instead, so a
// total is always produced.
package pricing

import (
	"context"
	"log"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/api"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// Quoter is the dynamic pricing slice of the booking API.
type Quoter interface {
	QuoteSeat(ctx context.Context, req api.QuoteRequest) (float64, error)
}

// Calculator prices seats, preferring dynamic quotes over the static
// config formula.
type Calculator struct {
	quoter Quoter
	cfg    models.PricingConfig
}

// NewCalculator creates a calculator. The config is fetched once when
// the seat map opens and cached for the lifetime of the flow.
func NewCalculator(quoter Quoter, cfg models.PricingConfig) *Calculator {
	return &Calculator{quoter: quoter, cfg: cfg}
}

// SeatFare returns one seat's fare. Dynamic quote failures fall back
// silently to the static formula; they are logged, never surfaced.
func (c *Calculator) SeatFare(ctx context.Context, seat models.Seat) float64 {
	if c.quoter != nil {
		_, letter, err := models.ParseSeatNumber(seat.SeatNumber)
		if err == nil {
			fare, qerr := c.quoter.QuoteSeat(ctx, api.QuoteRequest{
				TravelClass:  seat.TravelClass,
				ExtraLegroom: seat.ExtraLegroom,
				Position:     models.PositionForLetter(letter),
			})
			if qerr == nil {
				return fare
			}
			log.Printf("pricing: dynamic quote for seat %s failed, using static fare: %v", seat.SeatNumber, qerr)
		}
	}
	return c.StaticFare(seat)
}

// StaticFare applies the fallback formula from the pricing config,
// mirroring the server's own rule: base fare scaled by the class
// multiplier, plus the extra-legroom charge, then taxed.
func (c *Calculator) StaticFare(seat models.Seat) float64 {
	fare := c.cfg.BaseFare * c.cfg.Multiplier(seat.TravelClass)
	if seat.ExtraLegroom {
		fare += c.cfg.ExtraLegroomCharge
	}
	return fare * (1 + c.cfg.TaxRate)
}

// Total sums the fares across a selection.
func (c *Calculator) Total(ctx context.Context, seats []models.Seat) float64 {
	var total float64
	for _, seat := range seats {
		total += c.SeatFare(ctx, seat)
	}
	return total
}
