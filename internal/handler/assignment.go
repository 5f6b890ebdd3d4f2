package handler

import (
	"log/slog"
	"net/http"

	"classroom/internal/domain/models"
	courseworkSvc "classroom/internal/domain/services/coursework"
	"classroom/internal/httputil"
	"classroom/internal/middleware"
)

// AssignmentHandler handles assignment HTTP requests (teacher-service)
type AssignmentHandler struct {
	assignmentService courseworkSvc.AssignmentService
	logger            *slog.Logger
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService courseworkSvc.AssignmentService, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// RegisterRoutes mounts the assignment routes with their role allow-lists.
// Students may read assignments so student-service can verify one with the
// student's forwarded token.
func (h *AssignmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/teacher/courses/{course_id}/assignments",
		middleware.RequireRolesFunc(h.CreateAssignment, models.RoleTeacher))
	mux.Handle("GET /api/teacher/courses/{course_id}/assignments",
		middleware.RequireRolesFunc(h.ListAssignments, models.RoleTeacher, models.RoleStudent))
	mux.Handle("GET /api/teacher/assignments/{assignment_id}",
		middleware.RequireRolesFunc(h.GetAssignment, models.RoleTeacher, models.RoleStudent))
}

// CreateAssignment creates an assignment in an existing course
// POST /api/teacher/courses/{course_id}/assignments
func (h *AssignmentHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "course_id")
	if !ok {
		return
	}

	var req courseworkSvc.CreateAssignmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, err)
		return
	}
	req.CourseID = courseID
	req.Credential = httputil.GetCredential(r)

	assignment, err := h.assignmentService.CreateAssignment(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, assignment)
}

// GetAssignment retrieves an assignment by ID
// GET /api/teacher/assignments/{assignment_id}
func (h *AssignmentHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "assignment_id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetAssignment(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assignment)
}

// ListAssignments lists a course's assignments
// GET /api/teacher/courses/{course_id}/assignments
func (h *AssignmentHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "course_id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.ListAssignments(r.Context(), courseID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assignments)
}
