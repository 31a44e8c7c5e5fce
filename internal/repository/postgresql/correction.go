package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/correction"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}

// Create implements correction.CorrectionRepository. The request and its
// break pairs are inserted together; callers run this inside a transaction
// when that matters.
func (c *correctionRepository) Create(ctx context.Context, corr correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, c.db)

	corr.ID = uuid.NewString()

	query := `
		INSERT INTO attendance_corrections (
			id, attendance_id, requested_clock_in, requested_clock_out, requested_note, status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		corr.ID,
		corr.AttendanceID,
		corr.RequestedClockIn,
		corr.RequestedClockOut,
		corr.RequestedNote,
		corr.Status,
	).Scan(&corr.CreatedAt, &corr.UpdatedAt)
	if err != nil {
		return correction.CorrectionRequest{}, fmt.Errorf("failed to create correction: %w", err)
	}

	breakQuery := `
		INSERT INTO correction_breaks (id, correction_id, started_at, ended_at)
		VALUES ($1, $2, $3, $4)
	`
	for i := range corr.Breaks {
		corr.Breaks[i].ID = uuid.NewString()
		corr.Breaks[i].CorrectionID = corr.ID
		if _, err := q.Exec(ctx, breakQuery, corr.Breaks[i].ID, corr.ID, corr.Breaks[i].StartedAt, corr.Breaks[i].EndedAt); err != nil {
			return correction.CorrectionRequest{}, fmt.Errorf("failed to create correction break: %w", err)
		}
	}

	return corr, nil
}

// GetByID implements correction.CorrectionRepository.
func (c *correctionRepository) GetByID(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT c.id, c.attendance_id, c.requested_clock_in, c.requested_clock_out,
			   c.requested_note, c.status, c.approved_at, c.created_at, c.updated_at,
			   a.user_id, a.date, u.name
		FROM attendance_corrections c
		JOIN attendances a ON a.id = c.attendance_id
		JOIN users u ON u.id = a.user_id
		WHERE c.id = $1
	`

	var corr correction.CorrectionRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&corr.ID, &corr.AttendanceID, &corr.RequestedClockIn, &corr.RequestedClockOut,
		&corr.RequestedNote, &corr.Status, &corr.ApprovedAt, &corr.CreatedAt, &corr.UpdatedAt,
		&corr.UserID, &corr.Date, &corr.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.CorrectionRequest{}, correction.ErrCorrectionNotFound
		}
		return correction.CorrectionRequest{}, fmt.Errorf("failed to get correction by id: %w", err)
	}

	breaks, err := c.listBreaks(ctx, corr.ID)
	if err != nil {
		return correction.CorrectionRequest{}, err
	}
	corr.Breaks = breaks

	return corr, nil
}

// GetPendingByAttendance implements correction.CorrectionRepository.
func (c *correctionRepository) GetPendingByAttendance(ctx context.Context, attendanceID string) (*correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, attendance_id, requested_clock_in, requested_clock_out,
			   requested_note, status, approved_at, created_at, updated_at
		FROM attendance_corrections
		WHERE attendance_id = $1
		  AND status = 'pending'
		LIMIT 1
	`

	var corr correction.CorrectionRequest
	err := q.QueryRow(ctx, query, attendanceID).Scan(
		&corr.ID, &corr.AttendanceID, &corr.RequestedClockIn, &corr.RequestedClockOut,
		&corr.RequestedNote, &corr.Status, &corr.ApprovedAt, &corr.CreatedAt, &corr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending correction: %w", err)
	}

	breaks, err := c.listBreaks(ctx, corr.ID)
	if err != nil {
		return nil, err
	}
	corr.Breaks = breaks

	return &corr, nil
}

// Update implements correction.CorrectionRepository.
func (c *correctionRepository) Update(ctx context.Context, corr correction.CorrectionRequest) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE attendance_corrections
		SET status = $1, approved_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, corr.Status, corr.ApprovedAt, corr.ID)
	if err != nil {
		return fmt.Errorf("failed to update correction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrCorrectionNotFound
	}

	return nil
}

// ListPending implements correction.CorrectionRepository.
func (c *correctionRepository) ListPending(ctx context.Context, filter correction.PendingFilter) ([]correction.CorrectionRequest, int64, error) {
	q := GetQuerier(ctx, c.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_corrections WHERE status = 'pending'`
	if err := q.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pending corrections: %w", err)
	}

	query := `
		SELECT c.id, c.attendance_id, c.requested_clock_in, c.requested_clock_out,
			   c.requested_note, c.status, c.approved_at, c.created_at, c.updated_at,
			   a.user_id, a.date, u.name
		FROM attendance_corrections c
		JOIN attendances a ON a.id = c.attendance_id
		JOIN users u ON u.id = a.user_id
		WHERE c.status = 'pending'
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending corrections: %w", err)
	}
	defer rows.Close()

	var corrections []correction.CorrectionRequest
	for rows.Next() {
		var corr correction.CorrectionRequest
		if err := rows.Scan(
			&corr.ID, &corr.AttendanceID, &corr.RequestedClockIn, &corr.RequestedClockOut,
			&corr.RequestedNote, &corr.Status, &corr.ApprovedAt, &corr.CreatedAt, &corr.UpdatedAt,
			&corr.UserID, &corr.Date, &corr.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, corr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	for i := range corrections {
		breaks, err := c.listBreaks(ctx, corrections[i].ID)
		if err != nil {
			return nil, 0, err
		}
		corrections[i].Breaks = breaks
	}

	return corrections, total, nil
}

func (c *correctionRepository) listBreaks(ctx context.Context, correctionID string) ([]correction.BreakCorrection, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, correction_id, started_at, ended_at
		FROM correction_breaks
		WHERE correction_id = $1
		ORDER BY started_at ASC
	`

	rows, err := q.Query(ctx, query, correctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction breaks: %w", err)
	}
	defer rows.Close()

	var breaks []correction.BreakCorrection
	for rows.Next() {
		var brk correction.BreakCorrection
		if err := rows.Scan(&brk.ID, &brk.CorrectionID, &brk.StartedAt, &brk.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan correction break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate correction breaks: %w", err)
	}

	return breaks, nil
}
