// README: Tiered rate tables for tours, transfers, and wait time.
package rates

import (
	"fmt"
	"time"
)

// DayType classifies a calendar date into a pricing tier. Thursday through
// Saturday is the premium tier; Sunday through Wednesday is standard.
type DayType int

const (
	DayStandard DayType = iota
	DayPremium
)

func (d DayType) String() string {
	if d == DayPremium {
		return "premium"
	}
	return "standard"
}

// DayTypeFor maps a date's weekday onto its pricing tier.
func DayTypeFor(date time.Time) DayType {
	switch date.Weekday() {
	case time.Thursday, time.Friday, time.Saturday:
		return DayPremium
	}
	return DayStandard
}

// PartyBand is a contiguous party-size range used for wine-tour rates.
type PartyBand int

const (
	Band1to2 PartyBand = iota
	Band3to4
	Band5to6
	Band7to8
	Band9to11
	Band12to14

	partyBandCount = 6
)

// partyBandUpper holds the inclusive upper bound of each band.
var partyBandUpper = [partyBandCount]int{2, 4, 6, 8, 11, 14}

var partyBandLabels = [partyBandCount]string{"1-2", "3-4", "5-6", "7-8", "9-11", "12-14"}

func (b PartyBand) Label() string { return partyBandLabels[b] }

// BandFor selects the band for a party size by scanning bands in ascending
// order and taking the first whose upper bound is >= size. Sizes above the top
// band clamp to the top band; sizes below 1 fall into the bottom band. Range
// validation is the caller's job.
func BandFor(partySize int) PartyBand {
	for b, upper := range partyBandUpper {
		if partySize <= upper {
			return PartyBand(b)
		}
	}
	return Band12to14
}

// WaitBand is the coarser party-size banding used for wait-time rates.
type WaitBand int

const (
	WaitBand1to4 WaitBand = iota
	WaitBand5to8
	WaitBand9to14

	waitBandCount = 3
)

var waitBandUpper = [waitBandCount]int{4, 8, 14}

var waitBandLabels = [waitBandCount]string{"1-4", "5-8", "9-14"}

func (b WaitBand) Label() string { return waitBandLabels[b] }

// WaitBandFor selects the wait-time band with the same clamping policy as BandFor.
func WaitBandFor(partySize int) WaitBand {
	for b, upper := range waitBandUpper {
		if partySize <= upper {
			return WaitBand(b)
		}
	}
	return WaitBand9to14
}

// SharedTour holds per-person rates for the shared (join-in) tour product.
type SharedTour struct {
	PerGuestWithLunch float64
	PerGuestNoLunch   float64
	// Days are the weekdays the shared tour runs. The pricing engine does not
	// enforce this; callers check eligibility via Table.SharedTourRuns.
	Days []time.Weekday
}

// LocalTransfer parameterizes mileage-based local transfer pricing.
type LocalTransfer struct {
	BaseRate      float64
	IncludedMiles float64
	PerMile       float64
}

// Table is the immutable rate configuration threaded through every pricing
// call. Indexing is by closed enums, never by string keys. Callers must not
// mutate a Table after construction.
type Table struct {
	// WineTourHourly is indexed [DayType][PartyBand].
	WineTourHourly [2][partyBandCount]float64
	// MinimumHours is the per-day-type minimum billable hours.
	MinimumHours [2]float64

	Shared SharedTour

	// AirportFlat maps a fixed route key to a flat price.
	AirportFlat map[string]float64
	Local       LocalTransfer

	// WaitHourly is indexed [DayType][WaitBand].
	WaitHourly [2][waitBandCount]float64

	// TaxRate is a fraction (0.0775 = 7.75%).
	TaxRate float64
	// DepositPercent is a percentage (25 = 25%).
	DepositPercent float64

	MaxGuests int
}

// SharedTourRuns reports whether the shared tour operates on the given date.
func (t Table) SharedTourRuns(date time.Time) bool {
	for _, d := range t.Shared.Days {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

// Default returns the production rate table.
func Default() Table {
	return Table{
		WineTourHourly: [2][partyBandCount]float64{
			DayStandard: {85, 95, 110, 120, 140, 165},
			DayPremium:  {95, 110, 125, 140, 160, 185},
		},
		MinimumHours: [2]float64{DayStandard: 4, DayPremium: 5},
		Shared: SharedTour{
			PerGuestWithLunch: 149,
			PerGuestNoLunch:   119,
			Days:              []time.Weekday{time.Friday, time.Saturday, time.Sunday},
		},
		AirportFlat: map[string]float64{
			"sfo_valley": 320,
			"oak_valley": 280,
			"smf_valley": 260,
			"sts_valley": 120,
		},
		Local: LocalTransfer{
			BaseRate:      65,
			IncludedMiles: 8,
			PerMile:       3.50,
		},
		WaitHourly: [2][waitBandCount]float64{
			DayStandard: {25, 35, 50},
			DayPremium:  {35, 45, 60},
		},
		TaxRate:        0.0775,
		DepositPercent: 25,
		MaxGuests:      14,
	}
}

// Validate checks the structural invariants of a table: band partitions cover
// 1..MaxGuests contiguously and every rate is non-negative.
func (t Table) Validate() error {
	if t.MaxGuests < 1 {
		return fmt.Errorf("rates: max guests must be >= 1, got %d", t.MaxGuests)
	}
	if partyBandUpper[partyBandCount-1] != t.MaxGuests {
		return fmt.Errorf("rates: party bands cover 1..%d, table declares max guests %d",
			partyBandUpper[partyBandCount-1], t.MaxGuests)
	}
	if waitBandUpper[waitBandCount-1] != t.MaxGuests {
		return fmt.Errorf("rates: wait bands cover 1..%d, table declares max guests %d",
			waitBandUpper[waitBandCount-1], t.MaxGuests)
	}
	for day := 0; day < 2; day++ {
		if t.MinimumHours[day] < 0 {
			return fmt.Errorf("rates: negative minimum hours for %s", DayType(day))
		}
		for band, rate := range t.WineTourHourly[day] {
			if rate < 0 {
				return fmt.Errorf("rates: negative wine tour rate for %s band %s",
					DayType(day), PartyBand(band).Label())
			}
		}
		for band, rate := range t.WaitHourly[day] {
			if rate < 0 {
				return fmt.Errorf("rates: negative wait rate for %s band %s",
					DayType(day), WaitBand(band).Label())
			}
		}
	}
	if t.Shared.PerGuestWithLunch < 0 || t.Shared.PerGuestNoLunch < 0 {
		return fmt.Errorf("rates: negative shared tour rate")
	}
	for key, price := range t.AirportFlat {
		if price < 0 {
			return fmt.Errorf("rates: negative airport price for route %q", key)
		}
	}
	if t.Local.BaseRate < 0 || t.Local.IncludedMiles < 0 || t.Local.PerMile < 0 {
		return fmt.Errorf("rates: negative local transfer parameter")
	}
	if t.TaxRate < 0 || t.TaxRate >= 1 {
		return fmt.Errorf("rates: tax rate %v out of range [0,1)", t.TaxRate)
	}
	if t.DepositPercent < 0 || t.DepositPercent > 100 {
		return fmt.Errorf("rates: deposit percent %v out of range [0,100]", t.DepositPercent)
	}
	return nil
}
