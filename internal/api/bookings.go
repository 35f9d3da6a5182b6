package api

import (
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/gorilla/mux"
)

func (s *HTTPServer) registerBookingRoutes(r *mux.Router) {
	r.HandleFunc("/bookings", s.handleCreateBooking).Methods(http.MethodPost)
	r.HandleFunc("/bookings", s.handleListBookings(models.RoleBooker)).Methods(http.MethodGet)
	r.HandleFunc("/bookings/owner", s.handleListBookings(models.RoleOwner)).Methods(http.MethodGet)
	r.HandleFunc("/bookings/owner/export", s.handleExportBookings).Methods(http.MethodGet)
	r.HandleFunc("/bookings/{bookingId}", s.handleGetBooking).Methods(http.MethodGet)
	r.HandleFunc("/bookings/{bookingId}", s.handleSetApproval).Methods(http.MethodPatch)
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in models.BookingInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.svc.Bookings.CreateBooking(r.Context(), userID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: approved must be true or false", domain.ErrInvalidRequest))
		return
	}

	view, err := s.svc.Bookings.SetApproval(r.Context(), userID, bookingID, approved)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.svc.Bookings.GetBooking(r.Context(), bookingID, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListBookings(role models.BookingRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		page, err := pageFrom(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		views, err := s.svc.Bookings.ListBookings(r.Context(), userID, role, r.URL.Query().Get("state"), page)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	state := r.URL.Query().Get("state")

	views, err := s.svc.Bookings.ExportBookings(r.Context(), userID, state, s.exports.MaxRows)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if state == "" {
		state = string(models.StateAll)
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings_%s.xlsx"`, state))
	if err := writeBookingsWorkbook(w, views); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", userID).Msg("Failed to write export")
	}
}
