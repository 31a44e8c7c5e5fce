package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/correction"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/timeutil"
)

type AttendanceServiceImpl struct {
	clock clock.Clock
	attendance.AttendanceRepository
	attendance.BreakRepository
	correctionRepo correction.CorrectionRepository
}

func NewAttendanceService(
	clk clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	correctionRepo correction.CorrectionRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		clock:                clk,
		AttendanceRepository: attendanceRepo,
		BreakRepository:      breakRepo,
		correctionRepo:       correctionRepo,
	}
}

// userIDFromContext pulls the acting user out of the verified token claims.
func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// ResolveActiveRecord implements attendance.AttendanceService.
// Today's record wins regardless of its state; otherwise yesterday's record
// is active only while its overnight shift is still open. This keeps a shift
// that started before midnight on a single record.
func (a *AttendanceServiceImpl) ResolveActiveRecord(ctx context.Context, userID string, now time.Time) (*attendance.Record, error) {
	today := timeutil.DateOf(now)

	rec, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's record: %w", err)
	}
	if rec != nil {
		return rec, nil
	}

	yesterday := today.AddDate(0, 0, -1)
	rec, err = a.AttendanceRepository.GetByUserAndDate(ctx, userID, yesterday)
	if err != nil {
		return nil, fmt.Errorf("failed to get yesterday's record: %w", err)
	}
	if rec != nil && rec.ClockIn != nil && rec.ClockOut == nil {
		return rec, nil
	}

	return nil, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()
	today := timeutil.DateOf(now)

	rec, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}

	if rec != nil {
		if rec.ClockIn != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
		}
		if rec.ClockOut != nil {
			// Clock-out without clock-in should not exist.
			return attendance.AttendanceResponse{}, attendance.ErrInconsistentState
		}
		rec.ClockIn = &now
		rec.Status = attendance.StatusWorking
		if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		return attendance.MapToResponse(*rec, nil), nil
	}

	yesterday := today.AddDate(0, 0, -1)
	prev, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, yesterday)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get yesterday's record: %w", err)
	}
	if prev != nil && prev.Status != attendance.StatusFinished && prev.ClockOut == nil && prev.ClockIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrPreviousDayUnfinished
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Record{
		UserID:  userID,
		Date:    today,
		ClockIn: &now,
		Status:  attendance.StatusWorking,
	})
	if err != nil {
		// A concurrent clock-in may have won the (user, date) unique index.
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return attendance.MapToResponse(created, nil), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()

	rec, err := a.ResolveActiveRecord(ctx, userID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec == nil || rec.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoActiveRecord
	}
	if rec.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}
	if !rec.Status.CanClockOut() {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidPunchState
	}

	rec.ClockOut = &now
	rec.Status = attendance.StatusFinished
	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	breaks, err := a.BreakRepository.ListByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	return attendance.MapToResponse(*rec, breaks), nil
}

// BreakStart implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakStart(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()

	rec, err := a.ResolveActiveRecord(ctx, userID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec == nil || rec.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoActiveRecord
	}
	if rec.Status != attendance.StatusWorking {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidPunchState
	}

	if _, err := a.BreakRepository.Create(ctx, attendance.BreakInterval{
		AttendanceID: rec.ID,
		StartedAt:    now,
	}); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create break: %w", err)
	}

	rec.Status = attendance.StatusOnBreak
	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	breaks, err := a.BreakRepository.ListByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	return attendance.MapToResponse(*rec, breaks), nil
}

// BreakEnd implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakEnd(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()

	rec, err := a.ResolveActiveRecord(ctx, userID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec == nil || rec.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoActiveRecord
	}
	if rec.Status != attendance.StatusOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrNotOnBreak
	}

	// GetOpenByAttendance picks the open break with the latest start, so a
	// stray second open break cannot shadow the current one.
	open, err := a.BreakRepository.GetOpenByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open break: %w", err)
	}
	if open == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenBreak
	}

	open.EndedAt = &now
	if err := a.BreakRepository.Update(ctx, *open); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close break: %w", err)
	}

	rec.Status = attendance.StatusWorking
	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	breaks, err := a.BreakRepository.ListByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	return attendance.MapToResponse(*rec, breaks), nil
}

// GetStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStatus(ctx context.Context) (attendance.StatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	rec, err := a.ResolveActiveRecord(ctx, userID, a.clock.Now())
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	if rec == nil {
		return attendance.StatusResponse{
			Status:     string(attendance.StatusOffDuty),
			CanClockIn: true,
		}, nil
	}

	breaks, err := a.BreakRepository.ListByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	resp := attendance.MapToResponse(*rec, breaks)
	return attendance.StatusResponse{
		Status:        string(rec.Status),
		Record:        &resp,
		CanClockIn:    rec.ClockIn == nil,
		CanClockOut:   rec.ClockOut == nil && rec.Status.CanClockOut(),
		CanBreakStart: rec.Status == attendance.StatusWorking,
		CanBreakEnd:   rec.Status == attendance.StatusOnBreak,
	}, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list my attendance: %w", err)
	}

	return a.buildList(ctx, records, total, filter.Page, filter.Limit)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return a.buildList(ctx, records, total, filter.Page, filter.Limit)
}

func (a *AttendanceServiceImpl) buildList(ctx context.Context, records []attendance.Record, total int64, page, limit int) (attendance.ListAttendanceResponse, error) {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		breaks, err := a.BreakRepository.ListByAttendance(ctx, rec.ID)
		if err != nil {
			return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
		}
		responses = append(responses, attendance.MapToResponse(rec, breaks))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
// The detail view needs to know whether the record is editable or frozen
// behind a pending correction, so the pending request rides along.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.DetailResponse, error) {
	rec, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.DetailResponse{}, err
	}

	breaks, err := a.BreakRepository.ListByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.DetailResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	pending, err := a.correctionRepo.GetPendingByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.DetailResponse{}, fmt.Errorf("failed to get pending correction: %w", err)
	}

	display := attendance.DisplayState{Kind: attendance.DisplayEditable}
	if pending != nil {
		values := attendance.PendingCorrectionValues{
			CorrectionID: pending.ID,
			ClockIn:      formatClock(pending.RequestedClockIn),
			ClockOut:     formatClock(pending.RequestedClockOut),
			Note:         pending.RequestedNote,
		}
		for _, b := range pending.Breaks {
			values.Breaks = append(values.Breaks, [2]*string{formatClock(b.StartedAt), formatClock(b.EndedAt)})
		}
		display = attendance.DisplayState{
			Kind:    attendance.DisplayPendingApproval,
			Pending: &values,
		}
	}

	return attendance.DetailResponse{
		Attendance: attendance.MapToResponse(rec, breaks),
		Display:    display,
	}, nil
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04")
	return &formatted
}
