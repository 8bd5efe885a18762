package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventregistry/internal/domain"
)

// Reservation retry policy. Each attempt runs under its own deadline; lock
// timeouts, serialization failures, and deadlocks are retried with linear
// backoff before surfacing ErrTransient.
const (
	reserveAttempts = 3
	reserveTimeout  = 3 * time.Second
	reserveBackoff  = 50 * time.Millisecond
)

type capacityGuard struct {
	DB *sql.DB
}

// NewCapacityGuard returns a CapacityGuard that serialises admissions per
// event with a row-level lock on the event record.
//
// The naive sequence (read count, compare to capacity, insert) as three
// independent statements lets two concurrent callers both observe
// count < capacity and both insert, overshooting capacity. Here the whole
// check-and-insert runs in one transaction that first takes
// SELECT ... FOR UPDATE on the event row, so concurrent reservations for the
// same event queue behind the lock while other events proceed untouched.
func NewCapacityGuard(db *sql.DB) domain.CapacityGuard {
	return &capacityGuard{
		DB: db,
	}
}

func (g *capacityGuard) TryReserve(ctx context.Context, event *domain.Event, userID string, now time.Time) (*domain.Registration, error) {
	var lastErr error
	for attempt := 1; attempt <= reserveAttempts; attempt++ {
		reg, err := g.tryReserveOnce(ctx, event, userID, now)
		if err == nil {
			return reg, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
		if attempt < reserveAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * reserveBackoff):
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrTransient, lastErr)
}

func (g *capacityGuard) tryReserveOnce(ctx context.Context, event *domain.Event, userID string, now time.Time) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, reserveTimeout)
	defer cancel()

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reservation: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the event row. Capacity is re-read under the lock rather than
	// trusted from the snapshot.
	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`,
		event.ID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if !now.Before(event.StartAt) {
		return nil, domain.ErrPastEvent
	}

	// Duplicate before capacity: a user retrying a registration that already
	// succeeded should hear "already registered", not "full".
	exists, err := existsForEventAndUser(ctx, tx, event.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	count, err := countForEvent(ctx, tx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if count >= capacity {
		return nil, domain.ErrEventFull
	}

	reg := domain.NewRegistration(event.ID, userID, now)
	if err := insertRegistration(ctx, tx, reg); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reservation: %w", err)
	}
	return reg, nil
}

// retryable reports whether the reservation attempt hit a transient storage
// condition: attempt deadline, serialization failure, or deadlock.
func retryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01":
			return true
		}
	}
	return false
}
