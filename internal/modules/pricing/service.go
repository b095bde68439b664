// README: Pricing service wraps the pure engine with quote audit logging.
package pricing

import (
	"context"
	"time"

	"vintrail/internal/rates"
)

type Service struct {
	tbl   rates.Table
	store *Store
}

// NewService creates a pricing service over a fixed rate table. store may be
// nil, in which case quotes are computed but not logged.
func NewService(tbl rates.Table, store *Store) *Service {
	return &Service{tbl: tbl, store: store}
}

func (s *Service) Table() rates.Table { return s.tbl }

func (s *Service) WineTour(ctx context.Context, customerID string, durationHours float64, partySize int, date time.Time) Quote {
	q := QuoteWineTour(s.tbl, durationHours, partySize, date)
	s.log(ctx, customerID, q, date)
	return q
}

func (s *Service) SharedTour(ctx context.Context, customerID string, guestCount int, includeLunch bool, date time.Time) Quote {
	q := QuoteSharedTour(s.tbl, guestCount, includeLunch)
	s.log(ctx, customerID, q, date)
	return q
}

func (s *Service) Transfer(routeKey string, miles *float64) (float64, error) {
	return QuoteTransfer(s.tbl, routeKey, miles)
}

func (s *Service) WaitTime(hours float64, partySize int, date time.Time) float64 {
	return QuoteWaitTime(s.tbl, hours, partySize, date)
}

func (s *Service) SharedTourRuns(date time.Time) bool {
	return s.tbl.SharedTourRuns(date)
}

// log appends to the audit trail on a best-effort basis; a failed insert
// never blocks quoting.
func (s *Service) log(ctx context.Context, customerID string, q Quote, quotedFor time.Time) {
	if s.store == nil {
		return
	}
	_ = s.store.AppendQuote(ctx, &LogEntry{
		CustomerID: customerID,
		Quote:      q,
		QuotedFor:  quotedFor,
		CreatedAt:  time.Now(),
	})
}
