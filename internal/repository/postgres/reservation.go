package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, reservation_code, subject_ref, requester_ref, contact_name, contact_email,
	kind, status, amount_cents, currency, processor_ref, paid_at,
	decision, drop_off, pickup, revision, created_on, updated_on`

func (r *reservationRepository) Create(ctx context.Context, rv *domain.Reservation, entry *domain.TimelineEntry) error {
	decision, dropOff, pickup, err := marshalEmbedded(rv)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO reservations (reservation_code, subject_ref, requester_ref, contact_name, contact_email,
	            kind, status, amount_cents, currency, processor_ref, paid_at, decision, drop_off, pickup, revision, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1, $15, $15) RETURNING id`
	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx, query,
		rv.ReservationCode, rv.SubjectRef, rv.RequesterRef, rv.ContactName, rv.ContactEmail,
		rv.Kind, rv.Status, rv.Payment.AmountCents, rv.Payment.Currency, rv.Payment.ProcessorRef,
		nullTime(rv.Payment.PaidAt), decision, dropOff, pickup, now,
	).Scan(&rv.ID)
	if err != nil {
		return err
	}
	rv.Revision = 1
	rv.CreatedOn = now
	rv.UpdatedOn = now

	if err := appendTimeline(ctx, tx, rv.ID, entry); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *reservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

// Update is the single-writer boundary for the aggregate: a conditional
// write on the revision the caller read, plus the timeline append, in one
// transaction. A lost race surfaces as ErrConcurrentModification.
func (r *reservationRepository) Update(ctx context.Context, rv *domain.Reservation, entry *domain.TimelineEntry) error {
	decision, dropOff, pickup, err := marshalEmbedded(rv)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE reservations SET status=$1, amount_cents=$2, currency=$3, processor_ref=$4, paid_at=$5,
	            decision=$6, drop_off=$7, pickup=$8, revision=revision+1, updated_on=$9
	          WHERE id=$10 AND revision=$11`
	res, err := tx.ExecContext(ctx, query,
		rv.Status, rv.Payment.AmountCents, rv.Payment.Currency, rv.Payment.ProcessorRef,
		nullTime(rv.Payment.PaidAt), decision, dropOff, pickup, time.Now().UTC(),
		rv.ID, rv.Revision,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = $1)`, rv.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConcurrentModification
	}

	if err := appendTimeline(ctx, tx, rv.ID, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	rv.Revision++
	return nil
}

func (r *reservationRepository) ListByRequester(ctx context.Context, requesterRef string, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return r.list(ctx, `requester_ref = $1`, requesterRef, status, page, pageSize)
}

func (r *reservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	if status == "" {
		return r.list(ctx, `1 = 1`, nil, "", page, pageSize)
	}
	return r.list(ctx, `1 = 1`, nil, status, page, pageSize)
}

func (r *reservationRepository) list(ctx context.Context, where string, firstArg interface{}, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	args := []interface{}{}
	if firstArg != nil {
		args = append(args, firstArg)
	}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE ` + where
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var count int32
	countQuery := `SELECT count(*) FROM (` + query + `) AS sub`
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		rv, err := r.scanOne(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *rv)
	}
	return out, count, rows.Err()
}

func (r *reservationRepository) ListTimeline(ctx context.Context, reservationID int32) ([]domain.TimelineEntry, error) {
	query := `SELECT id, reservation_id, status, actor, notes, occurred_at
	          FROM reservation_timeline WHERE reservation_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TimelineEntry
	for rows.Next() {
		var e domain.TimelineEntry
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.Status, &e.Actor, &e.Notes, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *reservationRepository) HasActiveForSubject(ctx context.Context, subjectRef string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reservations
	          WHERE subject_ref = $1 AND status NOT IN ($2, $3, $4))`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, subjectRef,
		domain.StatusCompleted, domain.StatusRejected, domain.StatusCancelled).Scan(&exists)
	return exists, err
}

func (r *reservationRepository) ListExpiredUnverifiedCodes(ctx context.Context, before time.Time) ([]repository.StaleCodeRef, error) {
	query := `
	SELECT id, 'drop_off' AS leg FROM reservations
	  WHERE drop_off -> 'otp' IS NOT NULL
	    AND drop_off -> 'otp' ->> 'verified_at' IS NULL
	    AND COALESCE(drop_off -> 'otp' ->> 'stale', 'false') = 'false'
	    AND (drop_off -> 'otp' ->> 'expires_at')::timestamptz < $1
	UNION ALL
	SELECT id, 'pickup' AS leg FROM reservations
	  WHERE pickup -> 'otp' IS NOT NULL
	    AND pickup -> 'otp' ->> 'verified_at' IS NULL
	    AND COALESCE(pickup -> 'otp' ->> 'stale', 'false') = 'false'
	    AND (pickup -> 'otp' ->> 'expires_at')::timestamptz < $1`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.StaleCodeRef
	for rows.Next() {
		var ref repository.StaleCodeRef
		if err := rows.Scan(&ref.ReservationID, &ref.Leg); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *reservationRepository) ListIDsByStatusOlderThan(ctx context.Context, status domain.ReservationStatus, before time.Time) ([]int32, error) {
	query := `SELECT id FROM reservations WHERE status = $1 AND updated_on < $2`
	rows, err := r.db.QueryContext(ctx, query, status, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *reservationRepository) scanOne(row rowScanner) (*domain.Reservation, error) {
	rv := &domain.Reservation{}
	var (
		paidAt   sql.NullTime
		decision []byte
		dropOff  []byte
		pickup   []byte
	)
	err := row.Scan(&rv.ID, &rv.ReservationCode, &rv.SubjectRef, &rv.RequesterRef, &rv.ContactName, &rv.ContactEmail,
		&rv.Kind, &rv.Status, &rv.Payment.AmountCents, &rv.Payment.Currency, &rv.Payment.ProcessorRef, &paidAt,
		&decision, &dropOff, &pickup, &rv.Revision, &rv.CreatedOn, &rv.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if paidAt.Valid {
		t := paidAt.Time
		rv.Payment.PaidAt = &t
	}
	if len(decision) > 0 {
		rv.Decision = &domain.ManagerDecision{}
		if err := json.Unmarshal(decision, rv.Decision); err != nil {
			return nil, fmt.Errorf("decoding decision: %w", err)
		}
	}
	if len(dropOff) > 0 {
		if err := json.Unmarshal(dropOff, &rv.DropOff); err != nil {
			return nil, fmt.Errorf("decoding drop-off leg: %w", err)
		}
	}
	if len(pickup) > 0 {
		if err := json.Unmarshal(pickup, &rv.Pickup); err != nil {
			return nil, fmt.Errorf("decoding pickup leg: %w", err)
		}
	}
	return rv, nil
}

func marshalEmbedded(rv *domain.Reservation) (decision, dropOff, pickup []byte, err error) {
	if rv.Decision != nil {
		decision, err = json.Marshal(rv.Decision)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encoding decision: %w", err)
		}
	}
	dropOff, err = json.Marshal(rv.DropOff)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding drop-off leg: %w", err)
	}
	pickup, err = json.Marshal(rv.Pickup)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding pickup leg: %w", err)
	}
	return decision, dropOff, pickup, nil
}

func appendTimeline(ctx context.Context, tx *sql.Tx, reservationID int32, entry *domain.TimelineEntry) error {
	entry.ReservationID = reservationID
	query := `INSERT INTO reservation_timeline (reservation_id, status, actor, notes, occurred_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return tx.QueryRowContext(ctx, query,
		reservationID, entry.Status, entry.Actor, entry.Notes, entry.OccurredAt).Scan(&entry.ID)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
