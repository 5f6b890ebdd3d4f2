package handler

import (
	"log/slog"
	"net/http"

	"classroom/internal/domain/models"
	courseworkSvc "classroom/internal/domain/services/coursework"
	"classroom/internal/httputil"
	"classroom/internal/middleware"
)

// SubmissionHandler handles submission HTTP requests (student-service)
type SubmissionHandler struct {
	submissionService courseworkSvc.SubmissionService
	logger            *slog.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService courseworkSvc.SubmissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// RegisterRoutes mounts the submission routes. All of them are student-only
// and scoped to the caller's own submissions.
func (h *SubmissionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/student/assignments/{assignment_id}/submissions",
		middleware.RequireRolesFunc(h.CreateSubmission, models.RoleStudent))
	mux.Handle("GET /api/student/submissions",
		middleware.RequireRolesFunc(h.ListSubmissions, models.RoleStudent))
	mux.Handle("GET /api/student/submissions/{submission_id}",
		middleware.RequireRolesFunc(h.GetSubmission, models.RoleStudent))
}

// CreateSubmission submits an answer to an existing assignment
// POST /api/student/assignments/{assignment_id}/submissions
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := pathID(w, r, "assignment_id")
	if !ok {
		return
	}

	var req courseworkSvc.CreateSubmissionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, err)
		return
	}
	req.AssignmentID = assignmentID
	req.StudentID = httputil.GetUserID(r)
	req.Credential = httputil.GetCredential(r)

	submission, err := h.submissionService.CreateSubmission(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, submission)
}

// GetSubmission retrieves one of the caller's submissions
// GET /api/student/submissions/{submission_id}
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "submission_id")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, submission)
}

// ListSubmissions lists the caller's submissions
// GET /api/student/submissions
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.ListSubmissions(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, submissions)
}
