package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is an agency's priced offer against a request: a set of flights plus
// a set of hotel stays. Cost is a denormalized cache of QuoteTotal over the
// line items. It is refreshed on every line-item mutation and must never be
// read as authoritative.
type Quote struct {
	ID        uuid.UUID       `json:"id"`
	RequestID uuid.UUID       `json:"requestId"`
	AgencyID  uuid.UUID       `json:"agencyId"`
	Cost      decimal.Decimal `json:"cost"`
	Flights   []QuoteFlight   `json:"flights"`
	Hotels    []QuoteHotel    `json:"hotels"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// QuoteFlight is a single flight line item belonging to exactly one quote.
type QuoteFlight struct {
	ID               uuid.UUID       `json:"id"`
	QuoteID          uuid.UUID       `json:"quoteId"`
	FlightNumber     string          `json:"flightNumber"`
	DepartureAirport string          `json:"departureAirport"`
	ArrivalAirport   string          `json:"arrivalAirport"`
	DepartureTime    time.Time       `json:"departureTime"`
	ArrivalTime      time.Time       `json:"arrivalTime"`
	Price            decimal.Decimal `json:"price"`
}

// QuoteHotel is a hotel-stay line item belonging to exactly one quote.
// The stay is priced per night; see Nights for the night count rule.
type QuoteHotel struct {
	ID            uuid.UUID       `json:"id"`
	QuoteID       uuid.UUID       `json:"quoteId"`
	HotelName     string          `json:"hotelName"`
	CheckIn       time.Time       `json:"checkIn"`
	CheckOut      time.Time       `json:"checkOut"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
}

// Validate enforces flight line-item rules.
func (f QuoteFlight) Validate() error {
	var errs FieldErrors
	if f.FlightNumber == "" {
		errs.Add("flightNumber", "flight number is required")
	}
	if !f.Price.IsPositive() {
		errs.Add("price", "price must be positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate enforces hotel line-item rules.
func (h QuoteHotel) Validate() error {
	var errs FieldErrors
	if h.HotelName == "" {
		errs.Add("hotelName", "hotel name is required")
	}
	if !h.PricePerNight.IsPositive() {
		errs.Add("pricePerNight", "price per night must be positive")
	}
	if h.CheckIn.IsZero() || h.CheckOut.IsZero() {
		errs.Add("checkIn", "check-in and check-out are required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Nights is the number of billable nights between check-in and check-out:
// the elapsed time in days rounded up, floored at one night. A same-day stay
// still bills one night.
func Nights(checkIn, checkOut time.Time) int {
	days := math.Ceil(checkOut.Sub(checkIn).Hours() / 24)
	if days < 1 {
		return 1
	}
	return int(days)
}

// NightsFor returns the billable nights for a hotel line item.
func (h QuoteHotel) NightsFor() int {
	return Nights(h.CheckIn, h.CheckOut)
}

// QuoteTotal computes a quote's cost from its line items:
// the sum of flight prices plus, per hotel stay, nights × price per night.
// Pure and order-independent; this is the source of truth for quote cost.
func QuoteTotal(flights []QuoteFlight, hotels []QuoteHotel) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flights {
		total = total.Add(f.Price)
	}
	for _, h := range hotels {
		nights := decimal.NewFromInt(int64(h.NightsFor()))
		total = total.Add(h.PricePerNight.Mul(nights))
	}
	return total
}

// Total computes the quote's cost from its own line items.
func (q Quote) Total() decimal.Decimal {
	return QuoteTotal(q.Flights, q.Hotels)
}
