package itinerary

import (
	"testing"
	"time"

	"vintrail/internal/types"
)

func baseItinerary(t *testing.T) Itinerary {
	t.Helper()
	pickup, err := time.Parse(time.RFC3339, "2025-06-21T10:00:00Z")
	if err != nil {
		t.Fatalf("parse pickup time: %v", err)
	}
	return Itinerary{
		ID:              "it1",
		PickupLocation:  "Hotel Valley Inn",
		PickupAt:        pickup,
		DropoffLocation: "Hotel Valley Inn",
		PickupDriveMin:  20,
		DropoffDriveMin: 25,
	}
}

func assertContiguousPositions(t *testing.T, it Itinerary) {
	t.Helper()
	for i, s := range it.Stops {
		if s.Position != i+1 {
			t.Fatalf("stop %d has position %d, want %d (positions must be contiguous 1..n)", i, s.Position, i+1)
		}
	}
}

func assertMonotonicTimes(t *testing.T, it Itinerary) {
	t.Helper()
	for i, s := range it.Stops {
		if s.DepartureAt.Before(s.ArrivalAt) {
			t.Fatalf("stop %d departs before it arrives", i+1)
		}
		if i > 0 && s.ArrivalAt.Before(it.Stops[i-1].DepartureAt) {
			t.Fatalf("stop %d arrives before stop %d departs", i+1, i)
		}
	}
}

func TestAddStop_FirstStopDerivesFromPickup(t *testing.T) {
	it := baseItinerary(t)
	it = AddStop(it, Stop{ID: "s1", Name: "Oakhollow Cellars", Address: "1 Vine Rd", DurationMin: 60})

	if len(it.Stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(it.Stops))
	}
	s := it.Stops[0]
	wantArrival := it.PickupAt.Add(20 * time.Minute)
	if !s.ArrivalAt.Equal(wantArrival) {
		t.Errorf("arrival = %v, want pickup+20m %v", s.ArrivalAt, wantArrival)
	}
	if !s.DepartureAt.Equal(wantArrival.Add(60 * time.Minute)) {
		t.Errorf("departure = %v, want arrival+60m", s.DepartureAt)
	}
	if s.DriveToNextMin != DefaultDriveMin {
		t.Errorf("new stop drive time = %d, want default %d", s.DriveToNextMin, DefaultDriveMin)
	}
	assertContiguousPositions(t, it)
}

func TestAddStop_ChainsFromPreviousDeparture(t *testing.T) {
	it := baseItinerary(t)
	it = AddStop(it, Stop{ID: "s1", DurationMin: 60})
	it = AddStop(it, Stop{ID: "s2", DurationMin: 45, DriveToNextMin: 10})

	first, second := it.Stops[0], it.Stops[1]
	wantArrival := first.DepartureAt.Add(time.Duration(first.DriveToNextMin) * time.Minute)
	if !second.ArrivalAt.Equal(wantArrival) {
		t.Errorf("second arrival = %v, want %v", second.ArrivalAt, wantArrival)
	}

	wantDropoff := second.DepartureAt.Add(25 * time.Minute)
	if !it.DropoffETA.Equal(wantDropoff) {
		t.Errorf("dropoff ETA = %v, want %v", it.DropoffETA, wantDropoff)
	}
	assertContiguousPositions(t, it)
	assertMonotonicTimes(t, it)
}

func TestAddStop_DoesNotMutateInput(t *testing.T) {
	it := baseItinerary(t)
	it = AddStop(it, Stop{ID: "s1", DurationMin: 60})

	before := len(it.Stops)
	_ = AddStop(it, Stop{ID: "s2", DurationMin: 30})
	if len(it.Stops) != before {
		t.Error("AddStop mutated its input itinerary")
	}
}

func TestRemoveStop(t *testing.T) {
	it := baseItinerary(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		it = AddStop(it, Stop{ID: types.ID("s_" + id), Name: id, DurationMin: 30})
	}

	got, err := RemoveStop(it, 2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(got.Stops))
	}
	if got.Stops[0].Name != "a" || got.Stops[1].Name != "c" || got.Stops[2].Name != "d" {
		t.Errorf("unexpected stop order after remove: %v", names(got.Stops))
	}
	assertContiguousPositions(t, got)

	// Removal must not recompute downstream times; they stay stale until the
	// caller requests recomputation.
	if !got.Stops[1].ArrivalAt.Equal(it.Stops[2].ArrivalAt) {
		t.Error("RemoveStop recomputed downstream times; expected them stale")
	}
}

func TestRemoveStop_BadPositions(t *testing.T) {
	it := baseItinerary(t)
	it = AddStop(it, Stop{ID: "s1", DurationMin: 30})

	for _, pos := range []int{0, -1, 2, 99} {
		if _, err := RemoveStop(it, pos); err != ErrBadPosition {
			t.Errorf("RemoveStop(%d): expected ErrBadPosition, got %v", pos, err)
		}
	}
}

func TestReorderStop(t *testing.T) {
	it := baseItinerary(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		it = AddStop(it, Stop{ID: types.ID("s_" + id), Name: id, DurationMin: 30})
	}

	tests := []struct {
		name      string
		from, to  int
		wantOrder []string
	}{
		{"move first to last", 1, 4, []string{"b", "c", "d", "a"}},
		{"move last to first", 4, 1, []string{"d", "a", "b", "c"}},
		{"move middle forward", 2, 3, []string{"a", "c", "b", "d"}},
		{"same position is a no-op", 3, 3, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReorderStop(it, tt.from, tt.to)
			if err != nil {
				t.Fatalf("reorder: %v", err)
			}
			if ns := names(got.Stops); !equal(ns, tt.wantOrder) {
				t.Errorf("order = %v, want %v", ns, tt.wantOrder)
			}
			assertContiguousPositions(t, got)
		})
	}

	if _, err := ReorderStop(it, 0, 2); err != ErrBadPosition {
		t.Errorf("expected ErrBadPosition for from=0, got %v", err)
	}
	if _, err := ReorderStop(it, 1, 5); err != ErrBadPosition {
		t.Errorf("expected ErrBadPosition for to=5, got %v", err)
	}
}

func TestUpdateStopDuration_LeavesTimesStale(t *testing.T) {
	it := baseItinerary(t)
	it = AddStop(it, Stop{ID: "s1", DurationMin: 30})
	it = AddStop(it, Stop{ID: "s2", DurationMin: 30})

	got, err := UpdateStopDuration(it, 1, 90)
	if err != nil {
		t.Fatalf("update duration: %v", err)
	}
	if got.Stops[0].DurationMin != 90 {
		t.Errorf("duration = %d, want 90", got.Stops[0].DurationMin)
	}
	if !got.Stops[0].DepartureAt.Equal(it.Stops[0].DepartureAt) {
		t.Error("UpdateStopDuration recomputed departure; expected it stale")
	}

	if _, err := UpdateStopDuration(it, 9, 30); err != ErrBadPosition {
		t.Errorf("expected ErrBadPosition, got %v", err)
	}
}

func TestRecomputeTimes(t *testing.T) {
	it := baseItinerary(t)
	it = AddStop(it, Stop{ID: "s1", DurationMin: 60})
	it = AddStop(it, Stop{ID: "s2", DurationMin: 45})
	it = AddStop(it, Stop{ID: "s3", DurationMin: 30, IsBreak: true})

	// Structural churn leaves times stale; recompute restores the invariant.
	it, err := RemoveStop(it, 2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	it, err = UpdateStopDuration(it, 1, 75)
	if err != nil {
		t.Fatalf("update duration: %v", err)
	}
	it, err = ApplyDriveTime(it, 1, 35)
	if err != nil {
		t.Fatalf("apply drive time: %v", err)
	}

	got := RecomputeTimes(it)

	wantFirstArrival := got.PickupAt.Add(20 * time.Minute)
	if !got.Stops[0].ArrivalAt.Equal(wantFirstArrival) {
		t.Errorf("first arrival = %v, want %v", got.Stops[0].ArrivalAt, wantFirstArrival)
	}
	wantSecondArrival := got.Stops[0].DepartureAt.Add(35 * time.Minute)
	if !got.Stops[1].ArrivalAt.Equal(wantSecondArrival) {
		t.Errorf("second arrival = %v, want %v", got.Stops[1].ArrivalAt, wantSecondArrival)
	}
	wantDropoff := got.Stops[1].DepartureAt.Add(25 * time.Minute)
	if !got.DropoffETA.Equal(wantDropoff) {
		t.Errorf("dropoff ETA = %v, want %v", got.DropoffETA, wantDropoff)
	}
	assertMonotonicTimes(t, got)
	assertContiguousPositions(t, got)
}

func TestRecomputeTimes_UsesDefaultForUnknownLegs(t *testing.T) {
	it := baseItinerary(t)
	it.PickupDriveMin = 0 // never fetched
	it = AddStop(it, Stop{ID: "s1", DurationMin: 60})

	got := RecomputeTimes(it)
	want := got.PickupAt.Add(DefaultDriveMin * time.Minute)
	if !got.Stops[0].ArrivalAt.Equal(want) {
		t.Errorf("arrival = %v, want pickup+default %v", got.Stops[0].ArrivalAt, want)
	}
}

func TestApplyDriveTimes(t *testing.T) {
	it := baseItinerary(t)
	it = AddStop(it, Stop{ID: "s1", DurationMin: 60})

	got, err := ApplyDriveTime(it, 1, 42)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Stops[0].DriveToNextMin != 42 {
		t.Errorf("drive time = %d, want 42", got.Stops[0].DriveToNextMin)
	}
	if it.Stops[0].DriveToNextMin == 42 {
		t.Error("ApplyDriveTime mutated its input")
	}
	if _, err := ApplyDriveTime(it, 3, 10); err != ErrBadPosition {
		t.Errorf("expected ErrBadPosition, got %v", err)
	}

	got = ApplyPickupDriveTime(it, 18)
	if got.PickupDriveMin != 18 {
		t.Errorf("pickup drive = %d, want 18", got.PickupDriveMin)
	}
	got = ApplyDropoffDriveTime(it, 33)
	if got.DropoffDriveMin != 33 {
		t.Errorf("dropoff drive = %d, want 33", got.DropoffDriveMin)
	}
}

func names(stops []Stop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
