// README: Recurrence rule value consumed by the expander.
package recurrence

import "time"

type Frequency string

const (
	FreqWeekly   Frequency = "weekly"
	FreqBiweekly Frequency = "biweekly"
	FreqMonthly  Frequency = "monthly"
)

type EndType string

const (
	EndCount EndType = "count"
	EndUntil EndType = "until"
)

// DateLayout is the calendar-date wire format used throughout the expander.
const DateLayout = "2006-01-02"

// HardCap bounds every expansion regardless of the rule's own end condition.
const HardCap = 52

// Rule describes how a recurring event repeats. DaysOfWeek filters the dates
// generated after the seed for weekly/biweekly rules; DayOfMonth anchors
// monthly rules (0 means derive from the start date). With EndType unset,
// generation runs to the hard cap.
type Rule struct {
	Frequency  Frequency
	DaysOfWeek []time.Weekday
	DayOfMonth int
	EndType    EndType
	Count      int
	UntilDate  string
}
