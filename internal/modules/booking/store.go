// README: Booking store backed by PostgreSQL with optimistic status updates.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vintrail/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const bookingColumns = `
    id, customer_id, service_type, tour_date, party_size, duration_hours,
    include_lunch, status, status_version,
    quote_subtotal, quote_tax, quote_deposit, quote_total, day_type, band,
    created_at, confirmed_at, started_at, completed_at, cancelled_at, cancel_reason`

func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO bookings (
            id, customer_id, service_type, tour_date, party_size, duration_hours,
            include_lunch, status, status_version,
            quote_subtotal, quote_tax, quote_deposit, quote_total, day_type, band,
            created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6,
            $7, $8, $9,
            $10, $11, $12, $13, $14, $15,
            $16
        )`,
		string(b.ID), string(b.CustomerID), b.ServiceType, b.TourDate,
		b.PartySize, b.DurationHours, b.IncludeLunch,
		string(b.Status), b.StatusVersion,
		b.QuoteSubtotal, b.QuoteTax, b.QuoteDeposit, b.QuoteTotal,
		b.DayType, b.Band,
		b.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, string(id))
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) ListByCustomer(ctx context.Context, customerID types.ID) ([]Booking, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings
         WHERE customer_id = $1
         ORDER BY created_at DESC`, string(customerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// UpdateStatus performs a compare-and-swap on (status, status_version) so
// concurrent transitions on the same booking cannot both win.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, cancelReason *string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET status = $1,
            status_version = status_version + 1,
            cancel_reason = COALESCE($2, cancel_reason),
            confirmed_at = CASE WHEN $1 = 'confirmed' THEN NOW() ELSE confirmed_at END,
            started_at = CASE WHEN $1 = 'in_progress' THEN NOW() ELSE started_at END,
            completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
            cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END
        WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to), cancelReason, string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO booking_state_events (
            booking_id, from_status, to_status, actor_type, actor_id, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.BookingID), string(e.FromStatus), string(e.ToStatus),
		e.ActorType, toStringPtr(e.ActorID), e.CreatedAt,
	)
	return err
}

// ExpireStaleQuotes cancels quoted bookings created before cutoff.
func (s *Store) ExpireStaleQuotes(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET status = 'cancelled',
            status_version = status_version + 1,
            cancelled_at = NOW(),
            cancel_reason = 'quote_expired'
        WHERE status = 'quoted' AND created_at < $1`, cutoff,
	)
	return err
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var cancelReason *string
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.ServiceType, &b.TourDate, &b.PartySize,
		&b.DurationHours, &b.IncludeLunch, &b.Status, &b.StatusVersion,
		&b.QuoteSubtotal, &b.QuoteTax, &b.QuoteDeposit, &b.QuoteTotal,
		&b.DayType, &b.Band,
		&b.CreatedAt, &b.ConfirmedAt, &b.StartedAt, &b.CompletedAt,
		&b.CancelledAt, &cancelReason,
	)
	if err != nil {
		return nil, err
	}
	b.CancelReason = cancelReason
	return &b, nil
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
