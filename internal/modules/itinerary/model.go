// README: Itinerary aggregate: ordered winery stops with derived times.
package itinerary

import (
	"time"

	"vintrail/internal/types"
)

// DefaultDriveMin is the placeholder drive time used for a leg that has never
// had a real distance lookup applied. It is not an error fallback: a failed
// lookup surfaces to the caller instead of silently using this value.
const DefaultDriveMin = 15

// Stop is a single winery or venue visit. Position is 1-based and contiguous
// within its itinerary after every structural edit. ArrivalAt/DepartureAt are
// derived fields; structural edits may leave them stale until RecomputeTimes.
type Stop struct {
	ID             types.ID
	Name           string
	Address        string
	Position       int
	DurationMin    int
	DriveToNextMin int
	ArrivalAt      time.Time
	DepartureAt    time.Time
	IsBreak        bool
}

// Itinerary is the pickup-to-dropoff plan for one tour day.
type Itinerary struct {
	ID              types.ID
	BookingID       types.ID
	PickupLocation  string
	PickupAt        time.Time
	DropoffLocation string
	DropoffETA      time.Time
	PickupDriveMin  int
	DropoffDriveMin int
	Stops           []Stop
}

// clone returns a deep copy so every mutator can return a new value without
// aliasing the caller's stop slice.
func clone(it Itinerary) Itinerary {
	out := it
	out.Stops = make([]Stop, len(it.Stops))
	copy(out.Stops, it.Stops)
	return out
}

// driveOrDefault substitutes the placeholder for a leg that has no supplied
// drive time yet.
func driveOrDefault(minutes int) int {
	if minutes <= 0 {
		return DefaultDriveMin
	}
	return minutes
}
