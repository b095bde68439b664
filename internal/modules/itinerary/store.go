// README: Itinerary store backed by PostgreSQL.
package itinerary

import (
	"context"
	"errors"

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

func (s *Store) Create(ctx context.Context, it *Itinerary) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
        INSERT INTO itineraries (
            id, booking_id, pickup_location, pickup_at,
            dropoff_location, dropoff_eta, pickup_drive_min, dropoff_drive_min
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(it.ID), string(it.BookingID),
		it.PickupLocation, it.PickupAt,
		it.DropoffLocation, it.DropoffETA,
		it.PickupDriveMin, it.DropoffDriveMin,
	)
	if err != nil {
		return err
	}
	if err := insertStops(ctx, tx, it); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Itinerary, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, booking_id, pickup_location, pickup_at,
               dropoff_location, dropoff_eta, pickup_drive_min, dropoff_drive_min
        FROM itineraries
        WHERE id = $1`, string(id),
	)

	var it Itinerary
	err := row.Scan(
		&it.ID, &it.BookingID, &it.PickupLocation, &it.PickupAt,
		&it.DropoffLocation, &it.DropoffETA, &it.PickupDriveMin, &it.DropoffDriveMin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
        SELECT id, name, address, position, duration_min, drive_to_next_min,
               arrival_at, departure_at, is_break
        FROM itinerary_stops
        WHERE itinerary_id = $1
        ORDER BY position`, string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var st Stop
		if err := rows.Scan(
			&st.ID, &st.Name, &st.Address, &st.Position, &st.DurationMin,
			&st.DriveToNextMin, &st.ArrivalAt, &st.DepartureAt, &st.IsBreak,
		); err != nil {
			return nil, err
		}
		it.Stops = append(it.Stops, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &it, nil
}

// Save rewrites the itinerary row and its full stop list in one transaction.
// Stop lists are short (a tour day tops out around ten stops), so
// delete-and-reinsert is simpler and safer than diffing positions.
func (s *Store) Save(ctx context.Context, it *Itinerary) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
        UPDATE itineraries
        SET pickup_location = $2, pickup_at = $3,
            dropoff_location = $4, dropoff_eta = $5,
            pickup_drive_min = $6, dropoff_drive_min = $7
        WHERE id = $1`,
		string(it.ID),
		it.PickupLocation, it.PickupAt,
		it.DropoffLocation, it.DropoffETA,
		it.PickupDriveMin, it.DropoffDriveMin,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_stops WHERE itinerary_id = $1`, string(it.ID)); err != nil {
		return err
	}
	if err := insertStops(ctx, tx, it); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertStops(ctx context.Context, tx pgx.Tx, it *Itinerary) error {
	for _, st := range it.Stops {
		_, err := tx.Exec(ctx, `
            INSERT INTO itinerary_stops (
                id, itinerary_id, name, address, position,
                duration_min, drive_to_next_min, arrival_at, departure_at, is_break
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			string(st.ID), string(it.ID), st.Name, st.Address, st.Position,
			st.DurationMin, st.DriveToNextMin, st.ArrivalAt, st.DepartureAt, st.IsBreak,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
