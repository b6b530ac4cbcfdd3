package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// FlightRepo defines standalone CRUD over quote flight line items, backing
// the /quoteFlights endpoints. Bulk writes that accompany a quote go
// through QuoteRepo instead.
type FlightRepo interface {
	Create(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteFlight, error)
	List(ctx context.Context) ([]domain.QuoteFlight, error)
	Update(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HotelRepo defines standalone CRUD over quote hotel line items, backing
// the /quoteHotels endpoints.
type HotelRepo interface {
	Create(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteHotel, error)
	List(ctx context.Context) ([]domain.QuoteHotel, error)
	Update(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgFlightRepo struct {
	db db
}

// NewFlightRepo constructs a FlightRepo backed by the provided db connection.
func NewFlightRepo(db db) FlightRepo {
	return &pgFlightRepo{db: db}
}

const flightColumns = `
	id, quote_id, flight_number, departure_airport, arrival_airport,
	departure_time, arrival_time, price::text`

func (r *pgFlightRepo) Create(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error) {
	const q = `
		INSERT INTO quote_flights (
			quote_id, flight_number, departure_airport, arrival_airport,
			departure_time, arrival_time, price)
		VALUES (
			@quote_id, @flight_number, @departure_airport, @arrival_airport,
			@departure_time, @arrival_time, @price::numeric)
		RETURNING` + flightColumns

	result, err := scanFlight(r.db.QueryRow(ctx, q, flightArgs(flight)))
	if err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("repo.FlightRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFlightRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteFlight, error) {
	const q = `SELECT` + flightColumns + ` FROM quote_flights WHERE id = @id`

	result, err := scanFlight(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("repo.FlightRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgFlightRepo) List(ctx context.Context) ([]domain.QuoteFlight, error) {
	return loadFlights(ctx, r.db, `true`, pgx.NamedArgs{})
}

func (r *pgFlightRepo) Update(ctx context.Context, flight domain.QuoteFlight) (domain.QuoteFlight, error) {
	const q = `
		UPDATE quote_flights
		SET flight_number     = @flight_number,
		    departure_airport = @departure_airport,
		    arrival_airport   = @arrival_airport,
		    departure_time    = @departure_time,
		    arrival_time      = @arrival_time,
		    price             = @price::numeric,
		    updated_at        = now()
		WHERE id = @id
		RETURNING` + flightColumns

	args := flightArgs(flight)
	args["id"] = flight.ID

	result, err := scanFlight(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("repo.FlightRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgFlightRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quote_flights WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.FlightRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FlightRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

type pgHotelRepo struct {
	db db
}

// NewHotelRepo constructs a HotelRepo backed by the provided db connection.
func NewHotelRepo(db db) HotelRepo {
	return &pgHotelRepo{db: db}
}

const hotelColumns = `
	id, quote_id, hotel_name, check_in, check_out, price_per_night::text`

func (r *pgHotelRepo) Create(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error) {
	const q = `
		INSERT INTO quote_hotels (quote_id, hotel_name, check_in, check_out, price_per_night)
		VALUES (@quote_id, @hotel_name, @check_in, @check_out, @price_per_night::numeric)
		RETURNING` + hotelColumns

	result, err := scanHotel(r.db.QueryRow(ctx, q, hotelArgs(hotel)))
	if err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("repo.HotelRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgHotelRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.QuoteHotel, error) {
	const q = `SELECT` + hotelColumns + ` FROM quote_hotels WHERE id = @id`

	result, err := scanHotel(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("repo.HotelRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgHotelRepo) List(ctx context.Context) ([]domain.QuoteHotel, error) {
	return loadHotels(ctx, r.db, `true`, pgx.NamedArgs{})
}

func (r *pgHotelRepo) Update(ctx context.Context, hotel domain.QuoteHotel) (domain.QuoteHotel, error) {
	const q = `
		UPDATE quote_hotels
		SET hotel_name      = @hotel_name,
		    check_in        = @check_in,
		    check_out       = @check_out,
		    price_per_night = @price_per_night::numeric,
		    updated_at      = now()
		WHERE id = @id
		RETURNING` + hotelColumns

	args := hotelArgs(hotel)
	args["id"] = hotel.ID

	result, err := scanHotel(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("repo.HotelRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgHotelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quote_hotels WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.HotelRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.HotelRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ---- shared helpers --------------------------------------------------------

// insertFlights inserts flights under the given quote and returns the
// persisted records. Used inside QuoteRepo transactions.
func insertFlights(ctx context.Context, d db, quoteID uuid.UUID, flights []domain.QuoteFlight) ([]domain.QuoteFlight, error) {
	const q = `
		INSERT INTO quote_flights (
			quote_id, flight_number, departure_airport, arrival_airport,
			departure_time, arrival_time, price)
		VALUES (
			@quote_id, @flight_number, @departure_airport, @arrival_airport,
			@departure_time, @arrival_time, @price::numeric)
		RETURNING` + flightColumns

	out := make([]domain.QuoteFlight, 0, len(flights))
	for _, f := range flights {
		f.QuoteID = quoteID
		created, err := scanFlight(d.QueryRow(ctx, q, flightArgs(f)))
		if err != nil {
			return nil, fmt.Errorf("insert flight: %w", err)
		}
		out = append(out, created)
	}
	return out, nil
}

// insertHotels inserts hotel stays under the given quote and returns the
// persisted records.
func insertHotels(ctx context.Context, d db, quoteID uuid.UUID, hotels []domain.QuoteHotel) ([]domain.QuoteHotel, error) {
	const q = `
		INSERT INTO quote_hotels (quote_id, hotel_name, check_in, check_out, price_per_night)
		VALUES (@quote_id, @hotel_name, @check_in, @check_out, @price_per_night::numeric)
		RETURNING` + hotelColumns

	out := make([]domain.QuoteHotel, 0, len(hotels))
	for _, h := range hotels {
		h.QuoteID = quoteID
		created, err := scanHotel(d.QueryRow(ctx, q, hotelArgs(h)))
		if err != nil {
			return nil, fmt.Errorf("insert hotel: %w", err)
		}
		out = append(out, created)
	}
	return out, nil
}

// loadFlights reads flight rows matching the given WHERE clause, ordered by
// departure time.
func loadFlights(ctx context.Context, d db, where string, args pgx.NamedArgs) ([]domain.QuoteFlight, error) {
	q := `SELECT` + flightColumns + ` FROM quote_flights WHERE ` + where + ` ORDER BY departure_time`

	rows, err := d.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}
	defer rows.Close()

	flights := []domain.QuoteFlight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flight rows: %w", err)
	}
	return flights, nil
}

// loadHotels reads hotel rows matching the given WHERE clause, ordered by
// check-in time.
func loadHotels(ctx context.Context, d db, where string, args pgx.NamedArgs) ([]domain.QuoteHotel, error) {
	q := `SELECT` + hotelColumns + ` FROM quote_hotels WHERE ` + where + ` ORDER BY check_in`

	rows, err := d.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("load hotels: %w", err)
	}
	defer rows.Close()

	hotels := []domain.QuoteHotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hotel rows: %w", err)
	}
	return hotels, nil
}

func flightArgs(f domain.QuoteFlight) pgx.NamedArgs {
	return pgx.NamedArgs{
		"quote_id":          f.QuoteID,
		"flight_number":     f.FlightNumber,
		"departure_airport": f.DepartureAirport,
		"arrival_airport":   f.ArrivalAirport,
		"departure_time":    f.DepartureTime,
		"arrival_time":      f.ArrivalTime,
		"price":             f.Price.String(),
	}
}

func hotelArgs(h domain.QuoteHotel) pgx.NamedArgs {
	return pgx.NamedArgs{
		"quote_id":        h.QuoteID,
		"hotel_name":      h.HotelName,
		"check_in":        h.CheckIn,
		"check_out":       h.CheckOut,
		"price_per_night": h.PricePerNight.String(),
	}
}

// scanFlight maps a single database row into a domain.QuoteFlight.
func scanFlight(s scanner) (domain.QuoteFlight, error) {
	var (
		f       domain.QuoteFlight
		id      pgtype.UUID
		quoteID pgtype.UUID
		price   string
	)

	err := s.Scan(&id, &quoteID, &f.FlightNumber, &f.DepartureAirport,
		&f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QuoteFlight{}, domain.ErrNotFound
		}
		return domain.QuoteFlight{}, err
	}

	f.ID = uuid.UUID(id.Bytes)
	f.QuoteID = uuid.UUID(quoteID.Bytes)
	f.Price, err = parseDecimal(price)
	if err != nil {
		return domain.QuoteFlight{}, fmt.Errorf("parse price: %w", err)
	}
	return f, nil
}

// scanHotel maps a single database row into a domain.QuoteHotel.
func scanHotel(s scanner) (domain.QuoteHotel, error) {
	var (
		h       domain.QuoteHotel
		id      pgtype.UUID
		quoteID pgtype.UUID
		price   string
	)

	err := s.Scan(&id, &quoteID, &h.HotelName, &h.CheckIn, &h.CheckOut, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QuoteHotel{}, domain.ErrNotFound
		}
		return domain.QuoteHotel{}, err
	}

	h.ID = uuid.UUID(id.Bytes)
	h.QuoteID = uuid.UUID(quoteID.Bytes)
	h.PricePerNight, err = parseDecimal(price)
	if err != nil {
		return domain.QuoteHotel{}, fmt.Errorf("parse price per night: %w", err)
	}
	return h, nil
}
