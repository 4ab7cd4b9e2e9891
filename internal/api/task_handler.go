package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/server"
	"github.com/skillsenselab/taskhive/internal/server/middleware"
	"github.com/skillsenselab/taskhive/internal/tasks"
	"github.com/skillsenselab/taskhive/internal/util"
	"github.com/skillsenselab/taskhive/internal/validation"
)

const maxPageLimit = 100

// CreateTaskRequest is the JSON body for POST /api/todos.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=new active completed"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high"`
	TermDate    *time.Time `json:"term_date"`
}

// UpdateTaskRequest is the JSON body for PUT /api/todos/:id. Absent fields
// are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=new active completed"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low normal high"`
	TermDate    *time.Time `json:"term_date"`
}

// TaskHandler serves the task CRUD and pagination endpoints.
type TaskHandler struct {
	svc *tasks.Service
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(svc *tasks.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create handles POST /api/todos.
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, validation.ToAppError(err))
		return
	}

	user := middleware.CurrentUser(c)
	task, err := h.svc.Create(c.Request.Context(), user.ID, tasks.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      tasks.Status(req.Status),
		Priority:    tasks.Priority(req.Priority),
		TermDate:    req.TermDate,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, task)
}

// Update handles PUT /api/todos/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := pathUint(c, "id")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, validation.ToAppError(err))
		return
	}

	in := tasks.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		TermDate:    req.TermDate,
	}
	if req.Status != nil {
		in.Status = util.Ptr(tasks.Status(*req.Status))
	}
	if req.Priority != nil {
		in.Priority = util.Ptr(tasks.Priority(*req.Priority))
	}

	user := middleware.CurrentUser(c)
	task, err := h.svc.Update(c.Request.Context(), user.ID, taskID, in)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, task)
}

// Delete handles DELETE /api/todos/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := pathUint(c, "id")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), user.ID, taskID); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// ListPage handles GET /api/todos/:id/:limit. Gin allows a single wildcard
// name per path position, so the first segment shares the ":id" name with the
// write routes; here it carries the page number.
func (h *TaskHandler) ListPage(c *gin.Context) {
	page, err := pathInt(c, "id")
	if err != nil || page < 1 {
		server.RespondWithError(c, apperrors.InvalidInput("page must be a positive integer"))
		return
	}
	limit, err := pathInt(c, "limit")
	if err != nil || limit < 1 || limit > maxPageLimit {
		server.RespondWithError(c, apperrors.InvalidInput("limit must be between 1 and 100"))
		return
	}

	user := middleware.CurrentUser(c)
	result, err := h.svc.ListPage(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, result)
}

func pathInt(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

func pathUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v < 1 {
		return 0, apperrors.InvalidInput(name + " must be a positive integer")
	}
	return uint(v), nil
}
