package handler

import (
	"log/slog"
	"net/http"

	"classroom/internal/domain/models"
	courseworkSvc "classroom/internal/domain/services/coursework"
	"classroom/internal/httputil"
	"classroom/internal/middleware"
)

// CourseHandler handles course HTTP requests (admin-service)
type CourseHandler struct {
	courseService courseworkSvc.CourseService
	logger        *slog.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService courseworkSvc.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// RegisterRoutes mounts the course routes with their role allow-lists.
// Teachers may read courses: teacher-service verifies a course with the
// teacher's own forwarded token.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/admin/courses", middleware.RequireRolesFunc(h.CreateCourse, models.RoleAdmin))
	mux.Handle("GET /api/admin/courses", middleware.RequireRolesFunc(h.ListCourses, models.RoleAdmin))
	mux.Handle("GET /api/admin/courses/{course_id}", middleware.RequireRolesFunc(h.GetCourse, models.RoleAdmin, models.RoleTeacher))
}

// CreateCourse creates a new course
// POST /api/admin/courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseworkSvc.CreateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, err)
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, course)
}

// GetCourse retrieves a course by ID
// GET /api/admin/courses/{course_id}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "course_id")
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// ListCourses lists all courses
// GET /api/admin/courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, courses)
}
