package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-notes-api/internal/dto"
	apierrors "github.com/yukikurage/task-notes-api/internal/errors"
	"github.com/yukikurage/task-notes-api/internal/middleware"
	"github.com/yukikurage/task-notes-api/internal/services"
	"github.com/yukikurage/task-notes-api/internal/utils"
)

type TaskHandler struct {
	taskService    *services.TaskService
	summaryService *services.SummaryService
}

func NewTaskHandler(taskService *services.TaskService, summaryService *services.SummaryService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		summaryService: summaryService,
	}
}

// ListTasks returns the current user's tasks, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, err := h.taskService.ListTasks(c.Request.Context(), middleware.CurrentActor(c), params)
	if err != nil {
		apierrors.RespondWithFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), middleware.CurrentActor(c), middleware.ResourceID(c))
	if err != nil {
		apierrors.RespondWithFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.CreateTaskRequest
	if !bindBody(c, actor, &req) {
		return
	}

	respondCreated(c, h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}))
}

// EditTask replaces title and description; any existing summary is cleared
func (h *TaskHandler) EditTask(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.EditTaskRequest
	if !bindBody(c, actor, &req) {
		return
	}

	respondOK(c, h.taskService.EditTaskContent(c.Request.Context(), actor, middleware.ResourceID(c), req.Title, req.Description))
}

// UpdateStatus moves a task to another status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.StatusRequest
	if !bindBody(c, actor, &req) {
		return
	}

	respondOK(c, h.taskService.TransitionStatus(c.Request.Context(), actor, middleware.ResourceID(c), req.Status))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	respondOK(c, h.taskService.DeleteTask(c.Request.Context(), middleware.CurrentActor(c), middleware.ResourceID(c)))
}

// SummarizeTask generates and stores a summary for a task
func (h *TaskHandler) SummarizeTask(c *gin.Context) {
	respondOK(c, h.summaryService.SummarizeTask(c.Request.Context(), middleware.CurrentActor(c), middleware.ResourceID(c)))
}
