// README: Quote audit log backed by PostgreSQL.
package pricing

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// AppendQuote records an issued quote for later auditing against the rate
// table that produced it.
func (s *Store) AppendQuote(ctx context.Context, e *LogEntry) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO quote_log (
            customer_id, service, day_type, band,
            units, unit_rate, subtotal, tax, deposit, total,
            quoted_for, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.CustomerID,
		e.Quote.Service,
		e.Quote.DayType,
		e.Quote.Band,
		e.Quote.Units,
		e.Quote.UnitRate,
		e.Quote.Subtotal,
		e.Quote.Tax,
		e.Quote.Deposit,
		e.Quote.Total,
		e.QuotedFor,
		e.CreatedAt,
	)
	return err
}

// RecentByCustomer returns the most recent quotes issued to a customer,
// newest first.
func (s *Store) RecentByCustomer(ctx context.Context, customerID string, limit int) ([]LogEntry, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, customer_id, service, day_type, band,
               units, unit_rate, subtotal, tax, deposit, total,
               quoted_for, created_at
        FROM quote_log
        WHERE customer_id = $1
        ORDER BY created_at DESC
        LIMIT $2`, customerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(
			&e.ID, &e.CustomerID, &e.Quote.Service, &e.Quote.DayType, &e.Quote.Band,
			&e.Quote.Units, &e.Quote.UnitRate, &e.Quote.Subtotal, &e.Quote.Tax,
			&e.Quote.Deposit, &e.Quote.Total,
			&e.QuotedFor, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
