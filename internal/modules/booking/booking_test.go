// README: Booking lifecycle tests (state machine + DB-backed flows).
package booking

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vintrail/internal/modules/pricing"
	"vintrail/internal/rates"
	"vintrail/internal/types"
)

// TestCanTransition verifies the lifecycle transition table without a database.
func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// happy-path forward transitions
		{StatusQuoted, StatusConfirmed, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		// cancels from every non-terminal state
		{StatusQuoted, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusInProgress, StatusCancelled, true},
		// invalid: terminal states have no outgoing transitions
		{StatusCompleted, StatusQuoted, false},
		{StatusCancelled, StatusQuoted, false},
		{StatusCompleted, StatusCancelled, false},
		// invalid: skipping states
		{StatusQuoted, StatusInProgress, false},
		{StatusQuoted, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, false},
		// invalid: backwards
		{StatusInProgress, StatusConfirmed, false},
		{StatusConfirmed, StatusQuoted, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestBookingFlowHappyPath(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := mustCreateBooking(t, svc, "c_happy")
	assertStatus(t, svc, id, StatusQuoted)

	b, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.QuoteTotal != b.QuoteSubtotal+b.QuoteTax {
		t.Errorf("persisted quote total %v != subtotal+tax %v", b.QuoteTotal, b.QuoteSubtotal+b.QuoteTax)
	}
	if b.DayType == "" || b.Band == "" {
		t.Error("expected audit labels on the persisted quote")
	}

	if err := svc.Confirm(ctx, ConfirmCommand{BookingID: id}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	assertStatus(t, svc, id, StatusConfirmed)

	if err := svc.Start(ctx, StartCommand{BookingID: id, DriverID: "d1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	assertStatus(t, svc, id, StatusInProgress)

	if err := svc.Complete(ctx, CompleteCommand{BookingID: id, DriverID: "d1"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	assertStatus(t, svc, id, StatusCompleted)
}

func TestBookingValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	saturday := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	// Party-size range is the booking flow's responsibility, not the engine's.
	_, err := svc.Create(ctx, CreateCommand{
		CustomerID: "c_val", ServiceType: ServiceWineTour,
		TourDate: saturday, PartySize: 15, DurationHours: 5,
	})
	if err != ErrBadRequest {
		t.Fatalf("expected ErrBadRequest for party of 15, got %v", err)
	}

	_, err = svc.Create(ctx, CreateCommand{
		CustomerID: "c_val2", ServiceType: ServiceWineTour,
		TourDate: saturday, PartySize: 0, DurationHours: 5,
	})
	if err != ErrBadRequest {
		t.Fatalf("expected ErrBadRequest for party of 0, got %v", err)
	}

	// Shared tours only run on their data-declared days.
	tuesday := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(ctx, CreateCommand{
		CustomerID: "c_val3", ServiceType: ServiceSharedTour,
		TourDate: tuesday, PartySize: 2,
	})
	if err != ErrBadRequest {
		t.Fatalf("expected ErrBadRequest for shared tour on Tuesday, got %v", err)
	}

	_, err = svc.Create(ctx, CreateCommand{
		CustomerID: "c_val4", ServiceType: "hot_air_balloon",
		TourDate: saturday, PartySize: 2,
	})
	if err != ErrBadRequest {
		t.Fatalf("expected ErrBadRequest for unknown service type, got %v", err)
	}
}

func TestBookingCancelBlocksLaterTransitions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := mustCreateBooking(t, svc, "c_cancel")
	if err := svc.Cancel(ctx, CancelCommand{BookingID: id, ActorType: "customer", Reason: "changed_plans"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	assertStatus(t, svc, id, StatusCancelled)

	if err := svc.Confirm(ctx, ConfirmCommand{BookingID: id}); err != ErrInvalidState {
		t.Fatalf("confirm after cancel: expected ErrInvalidState, got %v", err)
	}
}

func TestConcurrentConfirmVsCancel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := mustCreateBooking(t, svc, "c_race")

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Confirm(ctx, ConfirmCommand{BookingID: id})
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Cancel(ctx, CancelCommand{BookingID: id, ActorType: "customer", Reason: "race"})
	}()

	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if err != ErrConflict && err != ErrInvalidState {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success < 1 || success > 2 {
		t.Fatalf("expected 1 or 2 successes, got %d", success)
	}
}

func mustCreateBooking(t *testing.T, svc *Service, customerID types.ID) types.ID {
	t.Helper()
	id, err := svc.Create(context.Background(), CreateCommand{
		CustomerID:    customerID,
		ServiceType:   ServiceWineTour,
		TourDate:      time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
		PartySize:     4,
		DurationHours: 6,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return id
}

func assertStatus(t *testing.T, svc *Service, id types.ID, want Status) {
	t.Helper()
	b, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if b.Status != want {
		t.Fatalf("expected status %s, got %s", want, b.Status)
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := setupTestStore(t)
	return NewService(store, pricing.NewService(rates.Default(), nil))
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("VINTRAIL_TEST_DSN")
	if dsn == "" {
		t.Skip("VINTRAIL_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE booking_state_events, bookings"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return NewStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, "migrations", "0001_init.sql")
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
