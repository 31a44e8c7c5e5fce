package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	record.ID = uuid.NewString()

	query := `
		INSERT INTO attendances (id, user_id, date, clock_in, clock_out, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.Date,
		record.ClockIn,
		record.ClockOut,
		record.Status,
		record.Note,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The (user_id, date) unique index caught a concurrent insert.
			return attendance.Record{}, attendance.ErrInconsistentState
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.clock_in, a.clock_out, a.status, a.note,
			   a.created_at, a.updated_at, u.name
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.Status, &rec.Note,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, clock_in, clock_out, status, note, created_at, updated_at
		FROM attendances
		WHERE user_id = $1 AND date = $2
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.Status, &rec.Note,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_in = $1, clock_out = $2, status = $3, note = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		record.ClockIn,
		record.ClockOut,
		record.Status,
		record.Note,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if filter.Month != nil && *filter.Month != "" {
		monthStart, err := time.Parse("2006-01", *filter.Month)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse month filter: %w", err)
		}
		args = append(args, monthStart)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
		args = append(args, monthStart.AddDate(0, 1, 0))
		conditions = append(conditions, fmt.Sprintf("date < $%d", len(args)))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT id, user_id, date, clock_in, clock_out, status, note, created_at, updated_at
		FROM attendances
		%s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.Status, &rec.Note,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.UserID != nil && *filter.UserID != "" {
		addCondition("a.user_id = $%d", *filter.UserID)
	}
	if filter.UserName != nil && *filter.UserName != "" {
		addCondition("u.name ILIKE $%d", "%"+*filter.UserName+"%")
	}
	if filter.Date != nil && *filter.Date != "" {
		addCondition("a.date = $%d", *filter.Date)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("a.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil && *filter.Status != "" {
		addCondition("a.status = $%d", *filter.Status)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendances a JOIN users u ON u.id = a.user_id %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// SortBy and SortOrder are validated against fixed lists before this
	// point, so interpolating them is safe.
	sortColumn := map[string]string{
		"date":      "a.date",
		"user_name": "u.name",
		"clock_in":  "a.clock_in",
		"clock_out": "a.clock_out",
		"status":    "a.status",
	}[filter.SortBy]
	if sortColumn == "" {
		sortColumn = "a.date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.date, a.clock_in, a.clock_out, a.status, a.note,
			   a.created_at, a.updated_at, u.name
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, sortColumn, sortOrder, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.Status, &rec.Note,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}
