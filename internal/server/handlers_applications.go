package server

import (
	"net/http"

	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/types"
)

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, r, &ErrTokenMissing{})
		return
	}

	var req types.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, r, err)
		return
	}

	app, err := s.applicationService.Apply(r.Context(), userID, &req)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, types.ApplyResponse{
		Message:     "Application submitted successfully",
		ID:          app.ID,
		Application: app,
	})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.applicationService.ListAll(r.Context())
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, reviews)
}

func (s *Server) handleListUserApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, r, &ErrTokenMissing{})
		return
	}

	apps, err := s.applicationService.ListForUser(r.Context(), userID)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, apps)
}

func (s *Server) handleSetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "application")
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	var req types.SetStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, r, err)
		return
	}

	if err := s.applicationService.SetStatus(r.Context(), id, &req); err != nil {
		errorResponse(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Application status updated"})
}
