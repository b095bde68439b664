// README: Event store backed by PostgreSQL.
package event

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vintrail/internal/modules/recurrence"
	"vintrail/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, e *Event) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
        INSERT INTO events (
            id, host_id, title, venue, start_date,
            frequency, days_of_week, day_of_month, end_type, end_count, until_date,
            created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(e.ID), string(e.HostID), e.Title, e.Venue, e.StartDate,
		string(e.Rule.Frequency), encodeWeekdays(e.Rule.DaysOfWeek), e.Rule.DayOfMonth,
		string(e.Rule.EndType), e.Rule.Count, nullableDate(e.Rule.UntilDate),
		e.CreatedAt,
	)
	if err != nil {
		return err
	}

	for i, date := range e.Instances {
		_, err := tx.Exec(ctx, `
            INSERT INTO event_instances (event_id, seq, instance_date)
            VALUES ($1, $2, $3)`,
			string(e.ID), i+1, date,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Event, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, host_id, title, venue, start_date,
               frequency, days_of_week, day_of_month, end_type, end_count, until_date,
               created_at
        FROM events
        WHERE id = $1`, string(id),
	)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
        SELECT instance_date FROM event_instances
        WHERE event_id = $1
        ORDER BY seq`, string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		e.Instances = append(e.Instances, date)
	}
	return e, rows.Err()
}

func (s *Store) ListByHost(ctx context.Context, hostID types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, host_id, title, venue, start_date,
               frequency, days_of_week, day_of_month, end_type, end_count, until_date,
               created_at
        FROM events
        WHERE host_id = $1
        ORDER BY created_at DESC`, string(hostID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	var freq, endType, daysCSV string
	var untilDate *string
	err := row.Scan(
		&e.ID, &e.HostID, &e.Title, &e.Venue, &e.StartDate,
		&freq, &daysCSV, &e.Rule.DayOfMonth, &endType, &e.Rule.Count, &untilDate,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Rule.Frequency = recurrence.Frequency(freq)
	e.Rule.EndType = recurrence.EndType(endType)
	e.Rule.DaysOfWeek = decodeWeekdays(daysCSV)
	if untilDate != nil {
		e.Rule.UntilDate = *untilDate
	}
	return &e, nil
}

// encodeWeekdays stores the filter as a CSV of Go weekday numbers (0=Sunday).
func encodeWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(rune('0' + int(d)))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(csv string) []time.Weekday {
	if csv == "" {
		return nil
	}
	var out []time.Weekday
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if len(p) != 1 || p[0] < '0' || p[0] > '6' {
			continue
		}
		out = append(out, time.Weekday(p[0]-'0'))
	}
	return out
}

func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
