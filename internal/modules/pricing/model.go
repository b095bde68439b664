// README: Price quote value produced by the pricing engine.
package pricing

import "time"

// Service family labels carried on quotes for auditing.
const (
	ServiceWineTour   = "wine_tour"
	ServiceSharedTour = "shared_tour"
	ServiceTransfer   = "transfer"
	ServiceWaitTime   = "wait_time"
)

// Quote is the immutable output of a pricing call. Units is billable hours
// for hourly services and guest count for per-person services. DayType and
// Band record the tier labels the lookup used so a quote can be audited
// against the rate table later.
type Quote struct {
	Service  string
	DayType  string
	Band     string
	Units    float64
	UnitRate float64
	Subtotal float64
	Tax      float64
	Deposit  float64
	Total    float64
}

// LogEntry is a persisted quote audit record.
type LogEntry struct {
	ID         int64
	CustomerID string
	Quote      Quote
	QuotedFor  time.Time
	CreatedAt  time.Time
}
