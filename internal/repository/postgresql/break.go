package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/database"
)

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}

// Create implements attendance.BreakRepository.
func (b *breakRepository) Create(ctx context.Context, brk attendance.BreakInterval) (attendance.BreakInterval, error) {
	q := GetQuerier(ctx, b.db)

	brk.ID = uuid.NewString()

	query := `
		INSERT INTO attendance_breaks (id, attendance_id, started_at, ended_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, brk.ID, brk.AttendanceID, brk.StartedAt, brk.EndedAt).
		Scan(&brk.CreatedAt)
	if err != nil {
		return attendance.BreakInterval{}, fmt.Errorf("failed to create break: %w", err)
	}

	return brk, nil
}

// Update implements attendance.BreakRepository.
func (b *breakRepository) Update(ctx context.Context, brk attendance.BreakInterval) error {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE attendance_breaks
		SET started_at = $1, ended_at = $2
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, brk.StartedAt, brk.EndedAt, brk.ID)
	if err != nil {
		return fmt.Errorf("failed to update break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenBreak
	}

	return nil
}

// ListByAttendance implements attendance.BreakRepository.
func (b *breakRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.BreakInterval, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, attendance_id, started_at, ended_at, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		ORDER BY started_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.BreakInterval
	for rows.Next() {
		var brk attendance.BreakInterval
		if err := rows.Scan(&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt, &brk.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breaks: %w", err)
	}

	return breaks, nil
}

// GetOpenByAttendance implements attendance.BreakRepository.
func (b *breakRepository) GetOpenByAttendance(ctx context.Context, attendanceID string) (*attendance.BreakInterval, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, attendance_id, started_at, ended_at, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		  AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`

	var brk attendance.BreakInterval
	err := q.QueryRow(ctx, query, attendanceID).
		Scan(&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt, &brk.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &brk, nil
}

// DeleteByAttendance implements attendance.BreakRepository.
func (b *breakRepository) DeleteByAttendance(ctx context.Context, attendanceID string) error {
	q := GetQuerier(ctx, b.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_breaks WHERE attendance_id = $1`, attendanceID); err != nil {
		return fmt.Errorf("failed to delete breaks: %w", err)
	}

	return nil
}
