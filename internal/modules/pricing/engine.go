// README: Pure pricing functions over an explicitly passed rate table.
package pricing

import (
	"errors"
	"time"

	"vintrail/internal/rates"
)

// ErrUnknownRoute is returned for a transfer route key that is neither an
// airport route nor the local mileage route.
var ErrUnknownRoute = errors.New("unknown transfer route")

// RouteLocal selects mileage-based local transfer pricing in QuoteTransfer.
const RouteLocal = "local"

// QuoteWineTour prices a private wine tour. Billable hours never drop below
// the day-type minimum, including for zero or negative requested durations.
// Party sizes outside 1..MaxGuests clamp to the nearest band; range
// validation belongs to the caller.
func QuoteWineTour(tbl rates.Table, durationHours float64, partySize int, date time.Time) Quote {
	day := rates.DayTypeFor(date)
	band := rates.BandFor(partySize)

	requested := durationHours
	if requested < 0 {
		requested = 0
	}
	billable := requested
	if billable < tbl.MinimumHours[day] {
		billable = tbl.MinimumHours[day]
	}

	rate := tbl.WineTourHourly[day][band]
	subtotal := rate * billable
	tax := subtotal * tbl.TaxRate
	total := subtotal + tax

	return Quote{
		Service:  ServiceWineTour,
		DayType:  day.String(),
		Band:     band.Label(),
		Units:    billable,
		UnitRate: rate,
		Subtotal: subtotal,
		Tax:      tax,
		Deposit:  total * tbl.DepositPercent / 100,
		Total:    total,
	}
}

// QuoteSharedTour prices a per-person shared tour. Day-of-week eligibility is
// deliberately not enforced here; callers check Table.SharedTourRuns first.
func QuoteSharedTour(tbl rates.Table, guestCount int, includeLunch bool) Quote {
	rate := tbl.Shared.PerGuestNoLunch
	band := "no_lunch"
	if includeLunch {
		rate = tbl.Shared.PerGuestWithLunch
		band = "with_lunch"
	}

	subtotal := rate * float64(guestCount)
	tax := subtotal * tbl.TaxRate
	total := subtotal + tax

	return Quote{
		Service:  ServiceSharedTour,
		Band:     band,
		Units:    float64(guestCount),
		UnitRate: rate,
		Subtotal: subtotal,
		Tax:      tax,
		Deposit:  total * tbl.DepositPercent / 100,
		Total:    total,
	}
}

// QuoteTransfer prices an airport or local transfer. Airport routes are flat
// prices looked up by route key; the local route is base rate plus per-mile
// over the included miles. Transfers carry no tax or deposit at this layer;
// callers apply tax uniformly if needed. That asymmetry is inherited from the
// business rules and is intentional.
func QuoteTransfer(tbl rates.Table, routeKey string, miles *float64) (float64, error) {
	if routeKey == RouteLocal {
		extra := 0.0
		if miles != nil && *miles > tbl.Local.IncludedMiles {
			extra = *miles - tbl.Local.IncludedMiles
		}
		return tbl.Local.BaseRate + extra*tbl.Local.PerMile, nil
	}
	if price, ok := tbl.AirportFlat[routeKey]; ok {
		return price, nil
	}
	return 0, ErrUnknownRoute
}

// QuoteWaitTime prices driver wait time with a one-hour minimum. The day-type
// split matches the wine-tour premium window (Thursday through Saturday).
func QuoteWaitTime(tbl rates.Table, hours float64, partySize int, date time.Time) float64 {
	day := rates.DayTypeFor(date)
	band := rates.WaitBandFor(partySize)

	billable := hours
	if billable < 1 {
		billable = 1
	}
	return tbl.WaitHourly[day][band] * billable
}

// Tax applies the configured tax rate to an amount.
func Tax(tbl rates.Table, amount float64) float64 {
	return amount * tbl.TaxRate
}

// Deposit computes the deposit due on a total. The percentage defaults from
// the table but may be overridden per call for contract-negotiated deposits.
func Deposit(tbl rates.Table, total float64, overridePct *float64) float64 {
	pct := tbl.DepositPercent
	if overridePct != nil {
		pct = *overridePct
	}
	return total * pct / 100
}
