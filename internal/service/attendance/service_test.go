package attendance

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/correction"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Record
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	for _, existing := range f.records {
		if existing.UserID == record.UserID && existing.Date.Equal(record.Date) {
			return attendance.Record{}, attendance.ErrInconsistentState
		}
	}
	f.nextID++
	record.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	for _, rec := range f.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Record) error {
	if _, ok := f.records[record.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

type fakeBreakRepo struct {
	breaks map[string]attendance.BreakInterval
	nextID int
}

func newFakeBreakRepo() *fakeBreakRepo {
	return &fakeBreakRepo{breaks: make(map[string]attendance.BreakInterval)}
}

func (f *fakeBreakRepo) Create(ctx context.Context, brk attendance.BreakInterval) (attendance.BreakInterval, error) {
	f.nextID++
	brk.ID = fmt.Sprintf("brk-%d", f.nextID)
	f.breaks[brk.ID] = brk
	return brk, nil
}

func (f *fakeBreakRepo) Update(ctx context.Context, brk attendance.BreakInterval) error {
	if _, ok := f.breaks[brk.ID]; !ok {
		return attendance.ErrNoOpenBreak
	}
	f.breaks[brk.ID] = brk
	return nil
}

func (f *fakeBreakRepo) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.BreakInterval, error) {
	var out []attendance.BreakInterval
	for _, brk := range f.breaks {
		if brk.AttendanceID == attendanceID {
			out = append(out, brk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (f *fakeBreakRepo) GetOpenByAttendance(ctx context.Context, attendanceID string) (*attendance.BreakInterval, error) {
	var open *attendance.BreakInterval
	for _, brk := range f.breaks {
		if brk.AttendanceID == attendanceID && brk.EndedAt == nil {
			found := brk
			if open == nil || found.StartedAt.After(open.StartedAt) {
				open = &found
			}
		}
	}
	return open, nil
}

func (f *fakeBreakRepo) DeleteByAttendance(ctx context.Context, attendanceID string) error {
	for id, brk := range f.breaks {
		if brk.AttendanceID == attendanceID {
			delete(f.breaks, id)
		}
	}
	return nil
}

type fakeCorrectionRepo struct {
	corrections map[string]correction.CorrectionRequest
	nextID      int
}

func newFakeCorrectionRepo() *fakeCorrectionRepo {
	return &fakeCorrectionRepo{corrections: make(map[string]correction.CorrectionRequest)}
}

func (f *fakeCorrectionRepo) Create(ctx context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("cor-%d", f.nextID)
	f.corrections[req.ID] = req
	return req, nil
}

func (f *fakeCorrectionRepo) GetByID(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	req, ok := f.corrections[id]
	if !ok {
		return correction.CorrectionRequest{}, correction.ErrCorrectionNotFound
	}
	return req, nil
}

func (f *fakeCorrectionRepo) GetPendingByAttendance(ctx context.Context, attendanceID string) (*correction.CorrectionRequest, error) {
	for _, req := range f.corrections {
		if req.AttendanceID == attendanceID && req.Status == correction.StatusPending {
			found := req
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeCorrectionRepo) Update(ctx context.Context, req correction.CorrectionRequest) error {
	if _, ok := f.corrections[req.ID]; !ok {
		return correction.ErrCorrectionNotFound
	}
	f.corrections[req.ID] = req
	return nil
}

func (f *fakeCorrectionRepo) ListPending(ctx context.Context, filter correction.PendingFilter) ([]correction.CorrectionRequest, int64, error) {
	var out []correction.CorrectionRequest
	for _, req := range f.corrections {
		if req.Status == correction.StatusPending {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

type fixture struct {
	svc     attendance.AttendanceService
	attRepo *fakeAttendanceRepo
	brkRepo *fakeBreakRepo
	corRepo *fakeCorrectionRepo
	clk     *clock.Fixed
}

func newFixture(t *testing.T, instant time.Time) *fixture {
	t.Helper()
	attRepo := newFakeAttendanceRepo()
	brkRepo := newFakeBreakRepo()
	corRepo := newFakeCorrectionRepo()
	clk := &clock.Fixed{Instant: instant}
	return &fixture{
		svc:     NewAttendanceService(clk, attRepo, brkRepo, corRepo),
		attRepo: attRepo,
		brkRepo: brkRepo,
		corRepo: corRepo,
		clk:     clk,
	}
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestClockIn(t *testing.T) {
	t.Run("creates today's record and starts working", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		resp, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		assert.Equal(t, string(attendance.StatusWorking), resp.Status)
		require.NotNil(t, resp.ClockIn)

		rec, err := f.attRepo.GetByUserAndDate(ctx, "user-1", timeutil.DateOf(at(t, "2025-03-10 09:00")))
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, at(t, "2025-03-10 09:00"), *rec.ClockIn)
	})

	t.Run("rejects a second clock-in on the same day", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		_, err = f.svc.ClockIn(ctx)
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})

	t.Run("rejects while yesterday's shift is still open", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 23:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		f.clk.Advance(10 * time.Hour) // 2025-03-11 09:00
		_, err = f.svc.ClockIn(ctx)
		assert.ErrorIs(t, err, attendance.ErrPreviousDayUnfinished)
	})

	t.Run("allowed the day after a finished shift", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		f.clk.Advance(8 * time.Hour)
		_, err = f.svc.ClockOut(ctx)
		require.NoError(t, err)

		f.clk.Advance(16 * time.Hour) // 2025-03-11 09:00
		resp, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusWorking), resp.Status)
	})

	t.Run("users do not interfere with each other", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))

		_, err := f.svc.ClockIn(authedContext(t, "user-1"))
		require.NoError(t, err)
		_, err = f.svc.ClockIn(authedContext(t, "user-2"))
		require.NoError(t, err)
	})
}

func TestClockOut(t *testing.T) {
	t.Run("finishes the shift and reports worked time", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		f.clk.Advance(8 * time.Hour)
		resp, err := f.svc.ClockOut(ctx)
		require.NoError(t, err)

		assert.Equal(t, string(attendance.StatusFinished), resp.Status)
		require.NotNil(t, resp.WorkTime)
		assert.Equal(t, "8:00", *resp.WorkTime)
	})

	t.Run("closes an overnight shift onto yesterday's record", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 23:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		f.clk.Advance(3 * time.Hour) // 2025-03-11 02:00
		resp, err := f.svc.ClockOut(ctx)
		require.NoError(t, err)

		assert.Equal(t, "2025-03-10", resp.Date)
		require.NotNil(t, resp.WorkTime)
		assert.Equal(t, "3:00", *resp.WorkTime)
	})

	t.Run("rejects without an active record", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 17:00"))
		_, err := f.svc.ClockOut(authedContext(t, "user-1"))
		assert.ErrorIs(t, err, attendance.ErrNoActiveRecord)
	})

	t.Run("rejects a second clock-out", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		f.clk.Advance(8 * time.Hour)
		_, err = f.svc.ClockOut(ctx)
		require.NoError(t, err)

		_, err = f.svc.ClockOut(ctx)
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	})

	t.Run("allowed while on break, break time still deducted", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		f.clk.Advance(3 * time.Hour)
		_, err = f.svc.BreakStart(ctx)
		require.NoError(t, err)

		f.clk.Advance(time.Hour)
		resp, err := f.svc.ClockOut(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusFinished), resp.Status)
		// The open break never closed, so it does not count.
		require.NotNil(t, resp.WorkTime)
		assert.Equal(t, "4:00", *resp.WorkTime)
	})
}

func TestBreaks(t *testing.T) {
	t.Run("break start and end round trip", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		f.clk.Advance(3 * time.Hour)
		resp, err := f.svc.BreakStart(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusOnBreak), resp.Status)

		f.clk.Advance(time.Hour)
		resp, err = f.svc.BreakEnd(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusWorking), resp.Status)
		require.NotNil(t, resp.BreakTime)
		assert.Equal(t, "1:00", *resp.BreakTime)
	})

	t.Run("deducts breaks from worked time", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		f.clk.Advance(3 * time.Hour)
		_, err = f.svc.BreakStart(ctx)
		require.NoError(t, err)
		f.clk.Advance(time.Hour)
		_, err = f.svc.BreakEnd(ctx)
		require.NoError(t, err)
		f.clk.Advance(4 * time.Hour)

		resp, err := f.svc.ClockOut(ctx)
		require.NoError(t, err)
		require.NotNil(t, resp.WorkTime)
		assert.Equal(t, "7:00", *resp.WorkTime)
	})

	t.Run("rejects break start when not working", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 12:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.BreakStart(ctx)
		assert.ErrorIs(t, err, attendance.ErrNoActiveRecord)

		_, err = f.svc.ClockIn(ctx)
		require.NoError(t, err)
		_, err = f.svc.BreakStart(ctx)
		require.NoError(t, err)

		_, err = f.svc.BreakStart(ctx)
		assert.ErrorIs(t, err, attendance.ErrInvalidPunchState)
	})

	t.Run("rejects break end when not on break", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 12:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		_, err = f.svc.BreakEnd(ctx)
		assert.ErrorIs(t, err, attendance.ErrNotOnBreak)
	})

	t.Run("break across midnight stays on yesterday's record", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 22:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		f.clk.Advance(90 * time.Minute) // 23:30
		_, err = f.svc.BreakStart(ctx)
		require.NoError(t, err)

		f.clk.Advance(time.Hour) // 2025-03-11 00:30
		resp, err := f.svc.BreakEnd(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", resp.Date)
		require.NotNil(t, resp.BreakTime)
		assert.Equal(t, "1:00", *resp.BreakTime)
	})
}

func TestResolveActiveRecord(t *testing.T) {
	t.Run("resolution is stable without intervening writes", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 23:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		f.clk.Advance(3 * time.Hour) // 2025-03-11 02:00
		now := f.clk.Now()

		first, err := f.svc.ResolveActiveRecord(ctx, "user-1", now)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := f.svc.ResolveActiveRecord(ctx, "user-1", now)
		require.NoError(t, err)
		require.NotNil(t, second)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Date, second.Date)
	})

	t.Run("same-day resolution repeats for a finished shift", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		f.clk.Advance(8 * time.Hour)
		_, err = f.svc.ClockOut(ctx)
		require.NoError(t, err)

		now := f.clk.Now()
		first, err := f.svc.ResolveActiveRecord(ctx, "user-1", now)
		require.NoError(t, err)
		second, err := f.svc.ResolveActiveRecord(ctx, "user-1", now)
		require.NoError(t, err)

		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestGetStatus(t *testing.T) {
	t.Run("off duty with no record", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 08:00"))

		status, err := f.svc.GetStatus(authedContext(t, "user-1"))
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusOffDuty), status.Status)
		assert.True(t, status.CanClockIn)
		assert.False(t, status.CanClockOut)
		assert.Nil(t, status.Record)
	})

	t.Run("working after clock-in", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		status, err := f.svc.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusWorking), status.Status)
		assert.False(t, status.CanClockIn)
		assert.True(t, status.CanClockOut)
		assert.True(t, status.CanBreakStart)
		assert.False(t, status.CanBreakEnd)
	})

	t.Run("overnight shift still active after midnight", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 23:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)

		f.clk.Advance(2 * time.Hour) // 2025-03-11 01:00
		status, err := f.svc.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusWorking), status.Status)
		require.NotNil(t, status.Record)
		assert.Equal(t, "2025-03-10", status.Record.Date)
	})
}

func TestGetAttendance(t *testing.T) {
	t.Run("editable without a pending correction", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		rec, err := f.attRepo.GetByUserAndDate(ctx, "user-1", timeutil.DateOf(f.clk.Now()))
		require.NoError(t, err)

		detail, err := f.svc.GetAttendance(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, attendance.DisplayEditable, detail.Display.Kind)
		assert.Nil(t, detail.Display.Pending)
	})

	t.Run("pending correction freezes the record view", func(t *testing.T) {
		f := newFixture(t, at(t, "2025-03-10 09:00"))
		ctx := authedContext(t, "user-1")

		_, err := f.svc.ClockIn(ctx)
		require.NoError(t, err)
		rec, err := f.attRepo.GetByUserAndDate(ctx, "user-1", timeutil.DateOf(f.clk.Now()))
		require.NoError(t, err)

		in := at(t, "2025-03-10 08:30")
		out := at(t, "2025-03-10 17:30")
		_, err = f.corRepo.Create(ctx, correction.CorrectionRequest{
			AttendanceID:      rec.ID,
			RequestedClockIn:  &in,
			RequestedClockOut: &out,
			RequestedNote:     "forgot to punch",
			Status:            correction.StatusPending,
		})
		require.NoError(t, err)

		detail, err := f.svc.GetAttendance(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, attendance.DisplayPendingApproval, detail.Display.Kind)
		require.NotNil(t, detail.Display.Pending)
		assert.Equal(t, "forgot to punch", detail.Display.Pending.Note)
		require.NotNil(t, detail.Display.Pending.ClockIn)
		assert.Equal(t, "08:30", *detail.Display.Pending.ClockIn)
	})
}
