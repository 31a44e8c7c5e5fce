package correction

import (
	"context"
	"fmt"

	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/correction"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/database"
)

type CorrectionServiceImpl struct {
	clock          clock.Clock
	tx             database.TxRunner
	correctionRepo correction.CorrectionRepository
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
}

func NewCorrectionService(
	clk clock.Clock,
	tx database.TxRunner,
	correctionRepo correction.CorrectionRepository,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
) correction.CorrectionService {
	return &CorrectionServiceImpl{
		clock:          clk,
		tx:             tx,
		correctionRepo: correctionRepo,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
	}
}

// Submit implements correction.CorrectionService. The target record must
// exist and must not already have a pending request.
func (c *CorrectionServiceImpl) Submit(ctx context.Context, req correction.SubmitRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	rec, err := c.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	pending, err := c.correctionRepo.GetPendingByAttendance(ctx, rec.ID)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to get pending correction: %w", err)
	}
	if pending != nil {
		return correction.CorrectionResponse{}, correction.ErrPendingExists
	}

	resolved, err := correction.Resolve(rec, req)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	corr := correction.CorrectionRequest{
		AttendanceID:      rec.ID,
		RequestedClockIn:  resolved.ClockIn,
		RequestedClockOut: resolved.ClockOut,
		RequestedNote:     resolved.Note,
		Status:            correction.StatusPending,
	}
	for _, b := range resolved.Breaks {
		start := b.Start
		end := b.End
		corr.Breaks = append(corr.Breaks, correction.BreakCorrection{
			StartedAt: &start,
			EndedAt:   &end,
		})
	}

	// The request row and its break pairs land together or not at all;
	// a partial insert would leave a pending request that blocks
	// resubmission.
	var created correction.CorrectionRequest
	err = c.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = c.correctionRepo.Create(txCtx, corr)
		if err != nil {
			return fmt.Errorf("failed to create correction: %w", err)
		}
		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	return correction.MapToResponse(created), nil
}

// Approve implements correction.CorrectionService. The requested values are
// merged into the owning attendance record, its break rows are replaced by
// the requested pairs, and the request is marked approved. Everything runs
// in one transaction; a failure leaves the record, its breaks and the
// request untouched, with the request still pending.
func (c *CorrectionServiceImpl) Approve(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	corr, err := c.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	if corr.Status != correction.StatusPending {
		return correction.CorrectionResponse{}, correction.ErrAlreadyProcessed
	}

	rec, err := c.attendanceRepo.GetByID(ctx, corr.AttendanceID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	err = c.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if corr.RequestedClockIn != nil {
			rec.ClockIn = corr.RequestedClockIn
		}
		if corr.RequestedClockOut != nil {
			rec.ClockOut = corr.RequestedClockOut
		}
		rec.Note = &corr.RequestedNote
		if rec.ClockOut != nil {
			rec.Status = attendance.StatusFinished
		}
		if err := c.attendanceRepo.Update(txCtx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		if err := c.breakRepo.DeleteByAttendance(txCtx, rec.ID); err != nil {
			return fmt.Errorf("failed to delete breaks: %w", err)
		}
		for _, b := range corr.Breaks {
			if b.StartedAt == nil || b.EndedAt == nil {
				continue
			}
			if _, err := c.breakRepo.Create(txCtx, attendance.BreakInterval{
				AttendanceID: rec.ID,
				StartedAt:    *b.StartedAt,
				EndedAt:      b.EndedAt,
			}); err != nil {
				return fmt.Errorf("failed to create break: %w", err)
			}
		}

		now := c.clock.Now()
		corr.Status = correction.StatusApproved
		corr.ApprovedAt = &now
		if err := c.correctionRepo.Update(txCtx, corr); err != nil {
			return fmt.Errorf("failed to update correction: %w", err)
		}

		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("%w: %v", correction.ErrReconciliationFailed, err)
	}

	return correction.MapToResponse(corr), nil
}

// Get implements correction.CorrectionService.
func (c *CorrectionServiceImpl) Get(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	corr, err := c.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.MapToResponse(corr), nil
}

// ListPending implements correction.CorrectionService.
func (c *CorrectionServiceImpl) ListPending(ctx context.Context, filter correction.PendingFilter) (correction.ListCorrectionResponse, error) {
	if err := filter.Validate(); err != nil {
		return correction.ListCorrectionResponse{}, err
	}

	corrections, total, err := c.correctionRepo.ListPending(ctx, filter)
	if err != nil {
		return correction.ListCorrectionResponse{}, fmt.Errorf("failed to list pending corrections: %w", err)
	}

	responses := make([]correction.CorrectionResponse, 0, len(corrections))
	for _, corr := range corrections {
		responses = append(responses, correction.MapToResponse(corr))
	}

	totalPages := (int(total) + filter.Limit - 1) / filter.Limit

	return correction.ListCorrectionResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Corrections: responses,
	}, nil
}
