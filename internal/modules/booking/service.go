// README: Booking service implements state transitions and persistence.
package booking

import (
	"context"
	"errors"
	"time"

	"vintrail/internal/modules/pricing"
	"vintrail/internal/types"
)

var (
	ErrInvalidState = errors.New("invalid state transition")
	ErrNotFound     = errors.New("booking not found")
	ErrConflict     = errors.New("booking state conflict")
	ErrBadRequest   = errors.New("bad request")
)

type Service struct {
	store   *Store
	pricing *pricing.Service
}

func NewService(store *Store, pricingSvc *pricing.Service) *Service {
	return &Service{store: store, pricing: pricingSvc}
}

type CreateCommand struct {
	CustomerID    types.ID
	ServiceType   string
	TourDate      time.Time
	PartySize     int
	DurationHours float64
	IncludeLunch  bool
}

type ConfirmCommand struct {
	BookingID types.ID
}

type StartCommand struct {
	BookingID types.ID
	DriverID  types.ID
}

type CompleteCommand struct {
	BookingID types.ID
	DriverID  types.ID
}

type CancelCommand struct {
	BookingID types.ID
	ActorType string
	Reason    string
}

// Create validates the request, snapshots a quote, and persists the booking
// as quoted. Party-size range is enforced here, not in the pricing engine:
// the engine clamps permissively and it is the booking flow's job to reject
// out-of-range parties.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.CustomerID == "" || cmd.ServiceType == "" {
		return "", ErrBadRequest
	}
	maxGuests := s.pricing.Table().MaxGuests
	if cmd.PartySize < 1 || cmd.PartySize > maxGuests {
		return "", ErrBadRequest
	}

	var q pricing.Quote
	switch cmd.ServiceType {
	case ServiceWineTour:
		q = s.pricing.WineTour(ctx, string(cmd.CustomerID), cmd.DurationHours, cmd.PartySize, cmd.TourDate)
	case ServiceSharedTour:
		if !s.pricing.SharedTourRuns(cmd.TourDate) {
			return "", ErrBadRequest
		}
		q = s.pricing.SharedTour(ctx, string(cmd.CustomerID), cmd.PartySize, cmd.IncludeLunch, cmd.TourDate)
	default:
		return "", ErrBadRequest
	}

	b := &Booking{
		ID:            types.NewID(),
		CustomerID:    cmd.CustomerID,
		ServiceType:   cmd.ServiceType,
		TourDate:      cmd.TourDate,
		PartySize:     cmd.PartySize,
		DurationHours: cmd.DurationHours,
		IncludeLunch:  cmd.IncludeLunch,
		Status:        StatusQuoted,
		StatusVersion: 0,
		QuoteSubtotal: q.Subtotal,
		QuoteTax:      q.Tax,
		QuoteDeposit:  q.Deposit,
		QuoteTotal:    q.Total,
		DayType:       q.DayType,
		Band:          q.Band,
		CreatedAt:     time.Now(),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return "", err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: StatusNone,
		ToStatus:   StatusQuoted,
		ActorType:  "customer",
		ActorID:    &cmd.CustomerID,
		CreatedAt:  b.CreatedAt,
	})
	return b.ID, nil
}

// Confirm marks the deposit as received.
func (s *Service) Confirm(ctx context.Context, cmd ConfirmCommand) error {
	return s.transition(ctx, cmd.BookingID, StatusConfirmed, "customer", nil)
}

// Start marks the tour day underway.
func (s *Service) Start(ctx context.Context, cmd StartCommand) error {
	return s.transition(ctx, cmd.BookingID, StatusInProgress, "driver", &cmd.DriverID)
}

// Complete closes out a finished tour.
func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	return s.transition(ctx, cmd.BookingID, StatusCompleted, "driver", &cmd.DriverID)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	b, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, b.ID, b.Status, StatusCancelled, b.StatusVersion, &cmd.Reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	var actorID *types.ID
	if cmd.ActorType == "customer" {
		actorID = &b.CustomerID
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   StatusCancelled,
		ActorType:  cmd.ActorType,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID types.ID) ([]Booking, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

// RunQuoteExpiry cancels quoted bookings whose quotes were never confirmed
// within maxAge. Runs until ctx is done.
func (s *Service) RunQuoteExpiry(ctx context.Context, every, maxAge time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.store.ExpireStaleQuotes(ctx, time.Now().Add(-maxAge))
		}
	}
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status, actorType string, actorID *types.ID) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, b.ID, b.Status, to, b.StatusVersion, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   to,
		ActorType:  actorType,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	})
	return nil
}
