// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"vintrail/internal/types"
)

type Status string

const (
	StatusNone       Status = "none"
	StatusQuoted     Status = "quoted"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Service families a booking can be made for. These match the pricing
// engine's quote labels.
const (
	ServiceWineTour   = "wine_tour"
	ServiceSharedTour = "shared_tour"
	ServiceTransfer   = "transfer"
)

type Booking struct {
	ID            types.ID
	CustomerID    types.ID
	ServiceType   string
	TourDate      time.Time
	PartySize     int
	DurationHours float64
	IncludeLunch  bool
	Status        Status
	StatusVersion int

	// Quote snapshot taken at creation; never recomputed afterwards so the
	// customer keeps the price they were shown.
	QuoteSubtotal float64
	QuoteTax      float64
	QuoteDeposit  float64
	QuoteTotal    float64
	DayType       string
	Band          string

	CreatedAt    time.Time
	ConfirmedAt  *time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason *string
}

// Event is one entry in the append-only booking state log.
type Event struct {
	ID         int64
	BookingID  types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the booking lifecycle as code. A booking is
// quoted at creation, confirmed when the deposit is received, and cancellable
// from any non-terminal state.
var AllowedTransitions = map[Status][]Status{
	StatusQuoted:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
