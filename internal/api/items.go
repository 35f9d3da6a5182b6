package api

import (
	"net/http"

	"shareit/internal/models"

	"github.com/gorilla/mux"
)

func (s *HTTPServer) registerItemRoutes(r *mux.Router) {
	r.HandleFunc("/items", s.handleCreateItem).Methods(http.MethodPost)
	r.HandleFunc("/items", s.handleOwnerItems).Methods(http.MethodGet)
	r.HandleFunc("/items/search", s.handleSearchItems).Methods(http.MethodGet)
	r.HandleFunc("/items/{itemId}", s.handleGetItem).Methods(http.MethodGet)
	r.HandleFunc("/items/{itemId}", s.handleUpdateItem).Methods(http.MethodPatch)
	r.HandleFunc("/items/{itemId}", s.handleDeleteItem).Methods(http.MethodDelete)
	r.HandleFunc("/items/{itemId}/comment", s.handleAddComment).Methods(http.MethodPost)
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in models.ItemInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.svc.Items.CreateItem(r.Context(), userID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleOwnerItems(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views, err := s.svc.Items.GetOwnerItems(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Items.SearchItems(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.svc.Items.GetItem(r.Context(), itemID, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch models.ItemPatch
	if err := decodeBody(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.svc.Items.UpdateItem(r.Context(), userID, itemID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Items.DeleteItem(r.Context(), userID, itemID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in models.CommentInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	comment, err := s.svc.Items.AddComment(r.Context(), userID, itemID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}
