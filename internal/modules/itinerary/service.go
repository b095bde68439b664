// README: Itinerary service: persistence plus the drive-time fetch protocol.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vintrail/internal/types"
)

var ErrNotFound = errors.New("itinerary not found")

// TravelTimes is the external distance collaborator. Lookups are fallible and
// carry no retry policy of their own; retries and backoff belong to the
// caller's network layer.
type TravelTimes interface {
	DriveTimeMinutes(ctx context.Context, origin, destination string) (int, error)
}

type Service struct {
	store  *Store
	travel TravelTimes
}

func NewService(store *Store, travel TravelTimes) *Service {
	return &Service{store: store, travel: travel}
}

type CreateCommand struct {
	BookingID       types.ID
	PickupLocation  string
	PickupAt        time.Time
	DropoffLocation string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	it := Itinerary{
		ID:              types.NewID(),
		BookingID:       cmd.BookingID,
		PickupLocation:  cmd.PickupLocation,
		PickupAt:        cmd.PickupAt,
		DropoffLocation: cmd.DropoffLocation,
	}
	it = RecomputeTimes(it)
	if err := s.store.Create(ctx, &it); err != nil {
		return "", err
	}
	return it.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Itinerary, error) {
	return s.store.Get(ctx, id)
}

// AddStop appends a stop and persists the result.
func (s *Service) AddStop(ctx context.Context, id types.ID, stop Stop) (*Itinerary, error) {
	return s.mutate(ctx, id, func(it Itinerary) (Itinerary, error) {
		if stop.ID == "" {
			stop.ID = types.NewID()
		}
		return AddStop(it, stop), nil
	})
}

func (s *Service) RemoveStop(ctx context.Context, id types.ID, position int) (*Itinerary, error) {
	return s.mutate(ctx, id, func(it Itinerary) (Itinerary, error) {
		return RemoveStop(it, position)
	})
}

func (s *Service) ReorderStop(ctx context.Context, id types.ID, from, to int) (*Itinerary, error) {
	return s.mutate(ctx, id, func(it Itinerary) (Itinerary, error) {
		return ReorderStop(it, from, to)
	})
}

func (s *Service) UpdateStopDuration(ctx context.Context, id types.ID, position, durationMin int) (*Itinerary, error) {
	return s.mutate(ctx, id, func(it Itinerary) (Itinerary, error) {
		return UpdateStopDuration(it, position, durationMin)
	})
}

// FetchDriveTime resolves the origin/destination addresses for the leg
// starting at position (0 = the pickup leg, n = the dropoff leg) and asks the
// distance collaborator for minutes. It performs no mutation; pair it with
// ApplyDriveTime.
func (s *Service) FetchDriveTime(ctx context.Context, it *Itinerary, position int) (int, error) {
	origin, destination, err := legAddresses(it, position)
	if err != nil {
		return 0, err
	}
	minutes, err := s.travel.DriveTimeMinutes(ctx, origin, destination)
	if err != nil {
		return 0, fmt.Errorf("drive time %s -> %s: %w", origin, destination, err)
	}
	return minutes, nil
}

// RefreshDriveTimes re-fetches every leg of the itinerary, applies the
// results, recomputes all times, and persists. Legs are fetched sequentially;
// itineraries are short and the distance API is rate-limited anyway.
func (s *Service) RefreshDriveTimes(ctx context.Context, id types.ID) (*Itinerary, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	it := *cur

	for pos := 0; pos <= len(it.Stops); pos++ {
		minutes, err := s.FetchDriveTime(ctx, &it, pos)
		if err != nil {
			return nil, err
		}
		switch {
		case pos == 0:
			it = ApplyPickupDriveTime(it, minutes)
		case pos == len(it.Stops):
			it = ApplyDropoffDriveTime(it, minutes)
		default:
			it, err = ApplyDriveTime(it, pos, minutes)
			if err != nil {
				return nil, err
			}
		}
	}

	it = RecomputeTimes(it)
	if err := s.store.Save(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// RecomputeTimes re-derives and persists all times without touching drive
// minutes.
func (s *Service) RecomputeTimes(ctx context.Context, id types.ID) (*Itinerary, error) {
	return s.mutate(ctx, id, func(it Itinerary) (Itinerary, error) {
		return RecomputeTimes(it), nil
	})
}

func (s *Service) mutate(ctx context.Context, id types.ID, op func(Itinerary) (Itinerary, error)) (*Itinerary, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := op(*cur)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// legAddresses maps a leg index onto its origin/destination pair. Position 0
// is pickup -> first stop (or pickup -> dropoff when there are no stops);
// position len(stops) is last stop -> dropoff.
func legAddresses(it *Itinerary, position int) (string, string, error) {
	n := len(it.Stops)
	if position < 0 || position > n {
		return "", "", ErrBadPosition
	}
	origin := it.PickupLocation
	if position > 0 {
		origin = it.Stops[position-1].Address
	}
	destination := it.DropoffLocation
	if position < n {
		destination = it.Stops[position].Address
	}
	return origin, destination, nil
}
