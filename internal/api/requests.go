package api

import (
	"net/http"

	"shareit/internal/models"

	"github.com/gorilla/mux"
)

func (s *HTTPServer) registerRequestRoutes(r *mux.Router) {
	r.HandleFunc("/requests", s.handleCreateRequest).Methods(http.MethodPost)
	r.HandleFunc("/requests", s.handleOwnRequests).Methods(http.MethodGet)
	r.HandleFunc("/requests/all", s.handleOtherRequests).Methods(http.MethodGet)
	r.HandleFunc("/requests/{requestId}", s.handleGetRequest).Methods(http.MethodGet)
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in models.ItemRequestInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.svc.Requests.CreateRequest(r.Context(), userID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views, err := s.svc.Requests.GetOwnRequests(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleOtherRequests(w http.ResponseWriter, r *http.Request) {
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
	views, err := s.svc.Requests.GetOtherRequests(r.Context(), userID, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.svc.Requests.GetRequest(r.Context(), userID, requestID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
