package safelink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	domain "github.com/oshokin/safelink/internal/domain/coordination"
	"github.com/oshokin/safelink/internal/geo"
	"github.com/oshokin/safelink/internal/logger"
)

// RequesterHeader carries the authenticated username supplied by the
// session collaborator in front of this service. An absent header means
// an anonymous poller.
const RequesterHeader = "X-Safelink-User"

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	ReportLocation(ctx context.Context, user string, location geo.Point, shareLocation bool) error
	DisableSharing(ctx context.Context, user string) error
	RaiseOrUpdateAlert(ctx context.Context, user string, location geo.Point, needsHelp bool) error
	RespondToAlert(ctx context.Context, helper, needy string, helperLocation geo.Point) (string, error)
	RefineDistance(ctx context.Context, needy, helper, distance string) error
	MarkSafe(ctx context.Context, user string) error
	Logout(ctx context.Context, user string) error
	Alerts(ctx context.Context, requestingUser string) []domain.Alert
}

// Server implements the JSON-over-HTTP API consumed by the legacy
// safelink clients.
type Server struct {
	// service provides the business logic for coordination operations.
	service Service
}

// NewServer wires the provided service implementation into an HTTP handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/update_location", s.handleUpdateLocation)
	mux.HandleFunc("/remove_location", s.handleRemoveLocation)
	mux.HandleFunc("/send_alert", s.handleSendAlert)
	mux.HandleFunc("/get_alerts", s.handleGetAlerts)
	mux.HandleFunc("/send_response", s.handleSendResponse)
	mux.HandleFunc("/notify_needy", s.handleNotifyNeedy)
	mux.HandleFunc("/notify_safe", s.handleNotifySafe)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/healthz", s.handleHealthz)

	return s.withRequestLogging(mux)
}

// statusResponse is the uniform response body of the mutation endpoints.
type statusResponse struct {
	// Status is a short human-readable outcome, e.g. "success".
	Status string `json:"status"`
	// Distance is attached by /send_response with the computed distance.
	Distance string `json:"distance,omitempty"`
}

// updateLocationRequest is the /update_location body.
type updateLocationRequest struct {
	Username     string  `json:"username"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ShowLocation bool    `json:"showLocation"`
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	err := s.service.ReportLocation(r.Context(), req.Username, geo.Point{Lat: req.Lat, Lng: req.Lng}, req.ShowLocation)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "success"})
}

// removeLocationRequest is the /remove_location body.
type removeLocationRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleRemoveLocation(w http.ResponseWriter, r *http.Request) {
	var req removeLocationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	err := s.service.DisableSharing(r.Context(), req.Username)

	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, statusResponse{Status: "location sharing disabled"})
	case errors.Is(err, domain.ErrNotFound):
		// Soft outcome kept verbatim from the legacy contract.
		writeJSON(w, r, http.StatusOK, statusResponse{Status: "user not found or already disabled"})
	default:
		writeServiceError(w, r, err)
	}
}

// sendAlertRequest is the /send_alert body.
type sendAlertRequest struct {
	Username string  `json:"username"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Helping  bool    `json:"helping"`
}

func (s *Server) handleSendAlert(w http.ResponseWriter, r *http.Request) {
	var req sendAlertRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	err := s.service.RaiseOrUpdateAlert(r.Context(), req.Username, geo.Point{Lat: req.Lat, Lng: req.Lng}, req.Helping)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "success"})
}

func (s *Server) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	requester := r.Header.Get(RequesterHeader)

	writeJSON(w, r, http.StatusOK, s.service.Alerts(r.Context(), requester))
}

// sendResponseRequest is the /send_response body.
type sendResponseRequest struct {
	Helper string  `json:"helper"`
	Needy  string  `json:"needy"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

func (s *Server) handleSendResponse(w http.ResponseWriter, r *http.Request) {
	var req sendResponseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	distance, err := s.service.RespondToAlert(r.Context(), req.Helper, req.Needy, geo.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "helper response recorded", Distance: distance})
}

// notifyNeedyRequest is the /notify_needy body.
type notifyNeedyRequest struct {
	Needy    string `json:"needy"`
	Helper   string `json:"helper"`
	Distance string `json:"distance"`
}

func (s *Server) handleNotifyNeedy(w http.ResponseWriter, r *http.Request) {
	var req notifyNeedyRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	err := s.service.RefineDistance(r.Context(), req.Needy, req.Helper, req.Distance)

	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, statusResponse{Status: "needy notified"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, statusResponse{Status: "helper response not found"})
	default:
		writeServiceError(w, r, err)
	}
}

// notifySafeRequest is the /notify_safe body.
type notifySafeRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleNotifySafe(w http.ResponseWriter, r *http.Request) {
	var req notifySafeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := s.service.MarkSafe(r.Context(), req.Username); err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "helpers notified"})
}

// logoutRequest is the /logout body.
type logoutRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := s.service.Logout(r.Context(), req.Username); err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "logged out"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, statusResponse{Status: "ok"})
}

// decodeRequest parses a JSON POST body into dst. On failure it writes
// the error response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, r, http.StatusBadRequest, statusResponse{Status: "malformed request body"})

		return false
	}

	return true
}

// writeServiceError maps service errors onto wire responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingUser):
		writeJSON(w, r, http.StatusBadRequest, statusResponse{Status: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, statusResponse{Status: err.Error()})
	default:
		logger.Errorf(r.Context(), "Unhandled service error: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, statusResponse{Status: "internal error"})
	}
}

// writeJSON encodes body with the proper content type.
func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf(r.Context(), "Failed to encode response: %v", err)
	}
}
