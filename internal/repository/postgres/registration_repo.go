package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventregistry/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so the ledger queries can
// run standalone or inside a capacity guard transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type registrationLedger struct {
	DB *sql.DB
}

// NewRegistrationLedger returns a RegistrationLedger backed by Postgres.
func NewRegistrationLedger(db *sql.DB) domain.RegistrationLedger {
	return &registrationLedger{
		DB: db,
	}
}

func (r *registrationLedger) CountForEvent(ctx context.Context, eventID string) (int, error) {
	return countForEvent(ctx, r.DB, eventID)
}

func (r *registrationLedger) ExistsForEventAndUser(ctx context.Context, eventID, userID string) (bool, error) {
	return existsForEventAndUser(ctx, r.DB, eventID, userID)
}

func (r *registrationLedger) Insert(ctx context.Context, reg *domain.Registration) error {
	return insertRegistration(ctx, r.DB, reg)
}

func (r *registrationLedger) Release(ctx context.Context, eventID, userID string) (bool, error) {
	query := `DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *registrationLedger) ListAttendees(ctx context.Context, eventID string) ([]*domain.EventAttendee, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.EventAttendee, 0)
	for rows.Next() {
		a := &domain.EventAttendee{}
		if err := rows.Scan(&a.UserID, &a.Name, &a.Email); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func countForEvent(ctx context.Context, q querier, eventID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	return count, err
}

func existsForEventAndUser(ctx context.Context, q querier, eventID, userID string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&exists)
	return exists, err
}

func insertRegistration(ctx context.Context, q querier, reg *domain.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	query := `
		INSERT INTO registrations (id, event_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := q.ExecContext(ctx, query, reg.ID, reg.EventID, reg.UserID, reg.CreatedAt)
	if err != nil {
		// The (event_id, user_id) unique constraint is the backstop for
		// duplicate inserts that slip past a guard.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}
