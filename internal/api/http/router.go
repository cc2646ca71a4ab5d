package http

import (
	"net/http"

	"rental-ops-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires every console endpoint behind request logging and auth.
func NewRouter(h *Handler, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger, NewAuthMiddleware(tokens).Handler)

	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/pickups", h.ListUpcomingPickups).Methods(http.MethodGet)
	api.HandleFunc("/files", h.DownloadPhoto).Methods(http.MethodGet)

	b := api.PathPrefix("/bookings/{id}").Subrouter()
	b.HandleFunc("/workflow", h.GetWorkflow).Methods(http.MethodGet)
	b.HandleFunc("/intake/review", h.MarkIntakeReviewed).Methods(http.MethodPost)
	b.HandleFunc("/checkin", h.SaveCheckIn).Methods(http.MethodPut)
	b.HandleFunc("/modification/preview", h.PreviewModification).Methods(http.MethodPost)
	b.HandleFunc("/modification", h.ConfirmModification).Methods(http.MethodPost)
	b.HandleFunc("/modifications", h.ListModifications).Methods(http.MethodGet)
	b.HandleFunc("/activate", h.ActivateBooking).Methods(http.MethodPost)
	b.HandleFunc("/dispatch", h.DispatchDelivery).Methods(http.MethodPost)
	b.HandleFunc("/status", h.SetBookingStatus).Methods(http.MethodPut)
	b.HandleFunc("/photos", h.ListPhotos).Methods(http.MethodGet)
	b.HandleFunc("/photos/{phase}/{type}", h.UploadPhoto).Methods(http.MethodPut)

	return router
}
