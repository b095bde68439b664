// README: Pure structural and temporal operations over itinerary values.
//
// Structural edits (AddStop, RemoveStop, ReorderStop, UpdateStopDuration)
// keep positions contiguous but deliberately do not cascade time
// recomputation; RemoveStop after lunch should not silently shift every
// later arrival until the caller asks for it. Temporal operations
// (RecomputeTimes, ApplyDriveTime and friends) own the time fields. Keep the
// two families separate.
package itinerary

import (
	"errors"
	"time"
)

// ErrBadPosition signals a stop position outside 1..n.
var ErrBadPosition = errors.New("stop position out of range")

// AddStop appends a stop and derives its arrival and departure from the
// previous stop's departure and drive time (or from the pickup leg when it is
// the first stop). Legs without a supplied drive time use the 15-minute
// placeholder. Appending never renumbers existing stops.
func AddStop(it Itinerary, s Stop) Itinerary {
	out := clone(it)

	s.Position = len(out.Stops) + 1
	if s.DriveToNextMin <= 0 {
		s.DriveToNextMin = DefaultDriveMin
	}

	var arrival time.Time
	if len(out.Stops) == 0 {
		arrival = out.PickupAt.Add(time.Duration(driveOrDefault(out.PickupDriveMin)) * time.Minute)
	} else {
		prev := out.Stops[len(out.Stops)-1]
		arrival = prev.DepartureAt.Add(time.Duration(driveOrDefault(prev.DriveToNextMin)) * time.Minute)
	}
	s.ArrivalAt = arrival
	s.DepartureAt = arrival.Add(time.Duration(s.DurationMin) * time.Minute)

	out.Stops = append(out.Stops, s)
	out.DropoffETA = s.DepartureAt.Add(time.Duration(driveOrDefault(out.DropoffDriveMin)) * time.Minute)
	return out
}

// RemoveStop deletes the stop at position and renumbers the remainder to a
// contiguous 1..n. Downstream arrival/departure times are left stale; callers
// invoke RecomputeTimes (typically after refreshing drive times) when they
// want them re-derived.
func RemoveStop(it Itinerary, position int) (Itinerary, error) {
	if position < 1 || position > len(it.Stops) {
		return it, ErrBadPosition
	}
	out := clone(it)
	out.Stops = append(out.Stops[:position-1], out.Stops[position:]...)
	renumber(out.Stops)
	return out, nil
}

// ReorderStop moves the stop at fromPosition to toPosition and renumbers all
// positions. Times are left stale, same as RemoveStop.
func ReorderStop(it Itinerary, fromPosition, toPosition int) (Itinerary, error) {
	n := len(it.Stops)
	if fromPosition < 1 || fromPosition > n || toPosition < 1 || toPosition > n {
		return it, ErrBadPosition
	}
	out := clone(it)

	s := out.Stops[fromPosition-1]
	rest := append(out.Stops[:fromPosition-1], out.Stops[fromPosition:]...)
	out.Stops = make([]Stop, 0, n)
	out.Stops = append(out.Stops, rest[:toPosition-1]...)
	out.Stops = append(out.Stops, s)
	out.Stops = append(out.Stops, rest[toPosition-1:]...)
	renumber(out.Stops)
	return out, nil
}

// UpdateStopDuration sets one stop's visit duration without recomputing any
// times.
func UpdateStopDuration(it Itinerary, position, durationMin int) (Itinerary, error) {
	if position < 1 || position > len(it.Stops) {
		return it, ErrBadPosition
	}
	out := clone(it)
	out.Stops[position-1].DurationMin = durationMin
	return out, nil
}

// ApplyDriveTime sets the drive time from the stop at position to the next
// stop. This is the pure half of the fetch-then-apply protocol; the fetch
// half lives on Service because it crosses the network boundary.
func ApplyDriveTime(it Itinerary, position, minutes int) (Itinerary, error) {
	if position < 1 || position > len(it.Stops) {
		return it, ErrBadPosition
	}
	out := clone(it)
	out.Stops[position-1].DriveToNextMin = minutes
	return out, nil
}

// ApplyPickupDriveTime sets the pickup-to-first-stop leg.
func ApplyPickupDriveTime(it Itinerary, minutes int) Itinerary {
	out := clone(it)
	out.PickupDriveMin = minutes
	return out
}

// ApplyDropoffDriveTime sets the last-stop-to-dropoff leg.
func ApplyDropoffDriveTime(it Itinerary, minutes int) Itinerary {
	out := clone(it)
	out.DropoffDriveMin = minutes
	return out
}

// RecomputeTimes re-derives every stop's arrival and departure and the
// dropoff ETA by walking the stops in position order from the pickup time.
func RecomputeTimes(it Itinerary) Itinerary {
	out := clone(it)

	cursor := out.PickupAt.Add(time.Duration(driveOrDefault(out.PickupDriveMin)) * time.Minute)
	for i := range out.Stops {
		out.Stops[i].ArrivalAt = cursor
		out.Stops[i].DepartureAt = cursor.Add(time.Duration(out.Stops[i].DurationMin) * time.Minute)
		cursor = out.Stops[i].DepartureAt.Add(time.Duration(driveOrDefault(out.Stops[i].DriveToNextMin)) * time.Minute)
	}

	if len(out.Stops) == 0 {
		out.DropoffETA = out.PickupAt.Add(time.Duration(driveOrDefault(out.PickupDriveMin)) * time.Minute)
	} else {
		last := out.Stops[len(out.Stops)-1]
		out.DropoffETA = last.DepartureAt.Add(time.Duration(driveOrDefault(out.DropoffDriveMin)) * time.Minute)
	}
	return out
}

func renumber(stops []Stop) {
	for i := range stops {
		stops[i].Position = i + 1
	}
}
