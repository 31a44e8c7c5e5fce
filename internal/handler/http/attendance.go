package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	BreakStart(w http.ResponseWriter, r *http.Request)
	BreakEnd(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.ClockIn(r.Context())
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", resp)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.ClockOut(r.Context())
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", resp)
}

// BreakStart implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BreakStart(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.BreakStart(r.Context())
	if err != nil {
		slog.Error("BreakStart service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", resp)
}

// BreakEnd implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BreakEnd(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.BreakEnd(r.Context())
	if err != nil {
		slog.Error("BreakEnd service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", resp)
}

// GetStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetStatus(r.Context())
	if err != nil {
		slog.Error("GetStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetMy implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter attendance.MyAttendanceFilter
	if month := query.Get("month"); month != "" {
		filter.Month = &month
	}
	filter.Page = parseIntQuery(query.Get("page"))
	filter.Limit = parseIntQuery(query.Get("limit"))

	resp, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("GetMy service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetByID implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance id is required", nil)
		return
	}

	resp, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		slog.Error("GetByID service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter attendance.AttendanceFilter
	for param, target := range map[string]**string{
		"user_id":    &filter.UserID,
		"user_name":  &filter.UserName,
		"date":       &filter.Date,
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
		"status":     &filter.Status,
	} {
		if value := query.Get(param); value != "" {
			v := value
			*target = &v
		}
	}
	filter.Page = parseIntQuery(query.Get("page"))
	filter.Limit = parseIntQuery(query.Get("limit"))
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	resp, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("List service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// parseIntQuery returns 0 for absent or malformed values, leaving defaulting
// to the filter's Validate.
func parseIntQuery(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
