// README: Recurring event aggregate (tastings, release parties, live music).
package event

import (
	"time"

	"vintrail/internal/modules/recurrence"
	"vintrail/internal/types"
)

// Event is a recurring happening at a winery or venue. Instances holds the
// expanded calendar dates; the recurrence rule is expanded exactly once, when
// the event is authored, and the instances are persisted alongside it.
type Event struct {
	ID        types.ID
	HostID    types.ID
	Title     string
	Venue     string
	StartDate string
	Rule      recurrence.Rule
	Instances []string
	CreatedAt time.Time
}
