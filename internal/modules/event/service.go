// README: Event service expands recurrence rules at authoring time.
package event

import (
	"context"
	"errors"
	"time"

	"vintrail/internal/modules/recurrence"
	"vintrail/internal/types"
)

var (
	ErrNotFound   = errors.New("event not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	HostID    types.ID
	Title     string
	Venue     string
	StartDate string
	Rule      recurrence.Rule
}

// Create validates the start date, expands the rule into instance dates, and
// persists the event with its instances.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.HostID == "" || cmd.Title == "" {
		return "", ErrBadRequest
	}
	if _, err := time.Parse(recurrence.DateLayout, cmd.StartDate); err != nil {
		return "", ErrBadRequest
	}

	e := &Event{
		ID:        types.NewID(),
		HostID:    cmd.HostID,
		Title:     cmd.Title,
		Venue:     cmd.Venue,
		StartDate: cmd.StartDate,
		Rule:      cmd.Rule,
		Instances: recurrence.GenerateInstanceDates(cmd.StartDate, cmd.Rule),
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Event, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByHost(ctx context.Context, hostID types.ID) ([]Event, error) {
	return s.store.ListByHost(ctx, hostID)
}
