package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/ops"
	"rental-ops-backend/internal/service"

	"github.com/gorilla/mux"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the operations console API.
type Handler struct {
	ops           service.OpsService
	bookings      service.BookingService
	photos        service.PhotoService
	auth          service.AuthService
	db            Pinger
	maxPhotoBytes int64
	now           func() time.Time
}

func NewHandler(opsSvc service.OpsService, bookingSvc service.BookingService, photoSvc service.PhotoService, authSvc service.AuthService, db Pinger, maxPhotoBytes int64) *Handler {
	return &Handler{
		ops:           opsSvc,
		bookings:      bookingSvc,
		photos:        photoSvc,
		auth:          authSvc,
		db:            db,
		maxPhotoBytes: maxPhotoBytes,
		now:           time.Now,
	}
}

var errBadRequest = errors.New("bad request")

func bookingID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid booking id", errBadRequest)
	}
	return int32(id), nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Staff *domain.Staff `json:"staff"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}
	token, staff, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Staff: staff})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		writeMessage(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	wf, err := h.ops.GetWorkflow(r.Context(), id, ops.StepID(r.URL.Query().Get("step")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

func (h *Handler) MarkIntakeReviewed(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	wf, err := h.ops.MarkIntakeReviewed(r.Context(), staffID(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

func (h *Handler) SaveCheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var in service.CheckInInput
	if err := decodeJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid check-in body")
		return
	}
	res, err := h.ops.SaveCheckIn(r.Context(), staffID(r.Context()), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type modificationRequest struct {
	NewEndAt time.Time `json:"newEndAt"`
	Reason   string    `json:"reason"`
}

func (h *Handler) PreviewModification(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req modificationRequest
	if err := decodeJSON(r, &req); err != nil || req.NewEndAt.IsZero() {
		writeMessage(w, http.StatusBadRequest, "newEndAt is required")
		return
	}
	preview, err := h.ops.PreviewModification(r.Context(), id, req.NewEndAt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (h *Handler) ConfirmModification(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req modificationRequest
	if err := decodeJSON(r, &req); err != nil || req.NewEndAt.IsZero() {
		writeMessage(w, http.StatusBadRequest, "newEndAt is required")
		return
	}
	mod, err := h.ops.ConfirmModification(r.Context(), staffID(r.Context()), id, req.NewEndAt, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mod)
}

func (h *Handler) ListModifications(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	mods, err := h.bookings.ListModifications(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mods)
}

func (h *Handler) ActivateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.ops.ActivateBooking(r.Context(), staffID(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type dispatchRequest struct {
	DriverID int32 `json:"driverId"`
}

func (h *Handler) DispatchDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dispatchRequest
	if err := decodeJSON(r, &req); err != nil || req.DriverID <= 0 {
		writeMessage(w, http.StatusBadRequest, "driverId is required")
		return
	}
	task, err := h.ops.DispatchDelivery(r.Context(), staffID(r.Context()), id, req.DriverID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type statusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

func (h *Handler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil || !req.Status.IsValid() {
		writeMessage(w, http.StatusBadRequest, "a valid status is required")
		return
	}
	b, err := h.bookings.SetBookingStatus(r.Context(), staffID(r.Context()), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// ListUpcomingPickups defaults to the next 24 hours.
func (h *Handler) ListUpcomingPickups(w http.ResponseWriter, r *http.Request) {
	from := h.now()
	to := from.Add(24 * time.Hour)
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "from must be RFC 3339")
			return
		}
		from = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "to must be RFC 3339")
			return
		}
		to = t
	}
	if !to.After(from) {
		writeMessage(w, http.StatusBadRequest, "to must be after from")
		return
	}

	bookings, err := h.bookings.ListUpcomingPickups(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
