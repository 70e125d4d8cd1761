// Command seatcli is an interactive seat-selection client. It drives the
// seat reservation coordinator against a booking API: type a seat number
// to toggle it, "confirm" to complete the current leg, "quit" to leave
// and release held seats.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/api"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/config"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/coordinator"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/pricing"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/push"
)

// expiryGrace keeps the expiry notice on screen before leaving the flow.
const expiryGrace = 2 * time.Second

func main() {
	cfg := config.Load()
	ctx := context.Background()

	client := api.NewClient(cfg.APIBaseURL)

	pricingCfg, err := client.GetPricingConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch pricing config: %v", err)
	}
	calc := pricing.NewCalculator(client, pricingCfg)

	coord := coordinator.New(client, calc, coordinator.SystemClock, coordinator.Config{
		OutboundFlightID: cfg.FlightID,
		ReturnFlightID:   cfg.ReturnFlightID,
		Passengers:       cfg.Passengers,
		HoldWindow:       cfg.HoldWindow,
		Notify: func(n coordinator.Notice) {
			fmt.Printf("\n[%s] %s\n", n.Level, n.Message)
		},
	})

	if err := coord.Load(ctx); err != nil {
		// Entering the seat map failed; bounce back.
		log.Fatalf("Failed to open seat map: %v", err)
	}

	listener, err := push.Dial(ctx, cfg.PushBaseURL, cfg.FlightID)
	if err != nil {
		log.Fatalf("Failed to open push channel: %v", err)
	}
	defer func() { listener.Close() }()

	input := make(chan string)
	go readInput(input)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	render(coord)

	events := listener.Events()
	for {
		select {
		case <-ticker.C:
			if coord.Tick() {
				time.Sleep(expiryGrace)
				return
			}
			render(coord)

		case ev, ok := <-events:
			if !ok {
				log.Println("Push channel lost; seat states may be stale")
				events = nil
				continue
			}
			coord.Apply(ev)
			render(coord)

		case line := <-input:
			switch line {
			case "":
			case "quit", "q":
				coord.Release(ctx)
				return
			case "confirm", "c":
				handoff, err := coord.ConfirmSelection(ctx)
				if err != nil {
					fmt.Printf("Cannot confirm: %v\n", err)
					continue
				}
				if handoff == nil {
					// Advanced to the return leg: resubscribe push to
					// the return flight.
					listener.Close()
					listener, err = push.Dial(ctx, cfg.PushBaseURL, cfg.ReturnFlightID)
					if err != nil {
						log.Fatalf("Failed to open push channel for return leg: %v", err)
					}
					events = listener.Events()
					fmt.Println("Outbound seats confirmed. Now select your return seats.")
					render(coord)
					continue
				}
				printHandoff(handoff)
				return
			default:
				if err := coord.SelectSeat(ctx, strings.ToUpper(line)); err != nil {
					printSelectError(line, err)
				}
				render(coord)
			}

		case <-quit:
			coord.Release(ctx)
			return
		}
	}
}

func readInput(out chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- strings.TrimSpace(scanner.Text())
	}
	close(out)
}

func printSelectError(seat string, err error) {
	switch {
	case errors.Is(err, coordinator.ErrSeatUnavailable),
		errors.Is(err, coordinator.ErrSeatLocked),
		errors.Is(err, coordinator.ErrSelectionLimit):
		fmt.Printf("Cannot select %s: %v\n", seat, err)
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

func render(coord *coordinator.Coordinator) {
	selected := make(map[string]bool)
	for _, n := range coord.Selection() {
		selected[n] = true
	}

	fmt.Printf("\n--- %s leg | %d:%02d remaining ---\n",
		coord.Step(), coord.Remaining()/60, coord.Remaining()%60)
	for _, row := range coord.Rows() {
		fmt.Printf("%3d %-8s ", row.Number, row.Class)
		for _, seat := range row.Seats {
			fmt.Print(marker(seat, selected[seat.SeatNumber]))
		}
		fmt.Println()
	}
	fmt.Printf("Selected: %v\n> ", coord.Selection())
}

func marker(seat models.Seat, mine bool) string {
	switch {
	case mine:
		return "[*]"
	case !seat.Available:
		return " # "
	case seat.LockedBy != "":
		return " x "
	default:
		return " . "
	}
}

func printHandoff(h *models.Handoff) {
	fmt.Println("\nSelection complete. Proceeding to booking confirmation:")
	if h.RoundTrip() {
		fmt.Printf("  Outbound %s: %v\n", h.FlightID, seatNumbers(h.Seats))
		fmt.Printf("  Return   %s: %v\n", h.ReturnFlightID, seatNumbers(h.ReturnSeats))
	} else {
		fmt.Printf("  Flight %s: %v\n", h.FlightID, seatNumbers(h.Seats))
	}
	fmt.Printf("  Total: $%.2f\n", h.TotalPrice)
	fmt.Printf("  Hold started: %s\n", h.LockStartTime.Format(time.RFC3339))
}

func seatNumbers(seats []models.Seat) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.SeatNumber
	}
	return out
}
