package server

import (
	"net/http"

	"github.com/jonathan/jobboard/internal/types"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobService.List(r.Context())
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "job")
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	job, err := s.jobService.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, r, err)
		return
	}

	job, err := s.jobService.Create(r.Context(), &req)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, types.CreateJobResponse{
		Message: "Job created successfully",
		ID:      job.ID,
		Job:     job,
	})
}
