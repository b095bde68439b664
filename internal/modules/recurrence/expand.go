// README: Expands a recurrence rule into concrete calendar instance dates.
package recurrence

import "time"

// GenerateInstanceDates expands a rule from a start date into an ordered,
// bounded list of "YYYY-MM-DD" strings. The start date is always the first
// element, even when a days-of-week filter would exclude it; the filter only
// constrains subsequent dates. Expansion never fails: an unknown frequency
// degrades to the one-element seed list, and a malformed start date yields
// nil (callers validate date format upstream).
func GenerateInstanceDates(startDate string, rule Rule) []string {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil
	}

	limit := HardCap
	if rule.EndType == EndCount && rule.Count > 0 && rule.Count < HardCap {
		limit = rule.Count
	}

	var until time.Time
	bounded := rule.EndType == EndUntil
	if bounded {
		until, err = time.Parse(DateLayout, rule.UntilDate)
		if err != nil {
			bounded = false
		}
	}

	out := []string{start.Format(DateLayout)}

	switch rule.Frequency {
	case FreqWeekly, FreqBiweekly:
		stepDays := 7
		if rule.Frequency == FreqBiweekly {
			stepDays = 14
		}
		cur := start
		// Candidate steps are capped alongside instances: a days-of-week
		// filter that never matches the stepped weekday must not spin forever
		// hunting for the count bound.
		for i := 0; i < HardCap && len(out) < limit; i++ {
			cur = cur.AddDate(0, 0, stepDays)
			if bounded && cur.After(until) {
				break
			}
			if len(rule.DaysOfWeek) > 0 && !weekdayIn(cur.Weekday(), rule.DaysOfWeek) {
				continue
			}
			out = append(out, cur.Format(DateLayout))
		}

	case FreqMonthly:
		anchor := rule.DayOfMonth
		if anchor <= 0 {
			// Derived anchors cap at 28 to sidestep months without a
			// 29th-31st. Explicit anchors are honored as configured; months
			// too short for them are skipped below.
			anchor = start.Day()
			if anchor > 28 {
				anchor = 28
			}
		}
		for i := 1; i <= HardCap && len(out) < limit; i++ {
			cand := time.Date(start.Year(), start.Month()+time.Month(i), anchor,
				0, 0, 0, 0, time.UTC)
			if cand.Day() != anchor {
				// Rolled over into the next month: this month is too short
				// for the anchor day. Skip it rather than shifting to
				// month-end.
				continue
			}
			if bounded && cand.After(until) {
				break
			}
			out = append(out, cand.Format(DateLayout))
		}

	default:
		// Unknown frequency: degrade to the seed date alone.
	}

	return out
}

func weekdayIn(day time.Weekday, set []time.Weekday) bool {
	for _, d := range set {
		if day == d {
			return true
		}
	}
	return false
}
