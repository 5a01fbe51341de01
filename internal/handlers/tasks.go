package handlers

import (
	"net/http"
	"strconv"
	"time"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	projectService services.ProjectService
	taskService    services.TaskService
	policy         services.PolicyService
}

func NewTaskHandler(
	projectService services.ProjectService,
	taskService services.TaskService,
	policy services.PolicyService,
) *TaskHandler {
	return &TaskHandler{
		projectService: projectService,
		taskService:    taskService,
		policy:         policy,
	}
}

// authorize resolves the project from the route slug and checks the task
// action against the policy table.
func (h *TaskHandler) authorize(c *gin.Context, action services.Action) (*models.Project, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	project, err := h.projectService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	if err := h.policy.Authorize(c.Request.Context(), userID, project.ID, services.ResourceTask, action); err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return project, true
}

func (h *TaskHandler) resolveTask(c *gin.Context, project *models.Project) (*models.Task, bool) {
	task, err := h.taskService.GetBySlug(c.Request.Context(), project.ID, c.Param("task_slug"))
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) Index(c *gin.Context) {
	project, ok := h.authorize(c, services.ActionView)
	if !ok {
		return
	}

	filter := services.TaskFilter{Due: c.Query("due")}
	if completedStr := c.Query("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be a boolean"})
			return
		}
		filter.Completed = &completed
	}

	tasks, err := h.taskService.List(c.Request.Context(), project.ID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type taskInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

func (h *TaskHandler) Store(c *gin.Context) {
	project, ok := h.authorize(c, services.ActionCreate)
	if !ok {
		return
	}

	var input taskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), project.ID, input.Title, input.Description, input.DueDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// Show returns the task for editing. The editability gate applies to show
// the same way it applies to update and complete: a completed or overdue
// task is no longer served for editing.
func (h *TaskHandler) Show(c *gin.Context) {
	project, ok := h.authorize(c, services.ActionView)
	if !ok {
		return
	}
	task, ok := h.resolveTask(c, project)
	if !ok {
		return
	}

	if !h.taskService.Editable(task) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"task": "This task is either completed or overdue."},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task, "project": project})
}

func (h *TaskHandler) Update(c *gin.Context) {
	project, ok := h.authorize(c, services.ActionUpdate)
	if !ok {
		return
	}
	task, ok := h.resolveTask(c, project)
	if !ok {
		return
	}

	var input taskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.taskService.Update(c.Request.Context(), task.ID, input.Title, input.Description, input.DueDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Complete(c *gin.Context) {
	project, ok := h.authorize(c, services.ActionUpdate)
	if !ok {
		return
	}
	task, ok := h.resolveTask(c, project)
	if !ok {
		return
	}

	completed, err := h.taskService.Complete(c.Request.Context(), task.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completed)
}

func (h *TaskHandler) Destroy(c *gin.Context) {
	project, ok := h.authorize(c, services.ActionDelete)
	if !ok {
		return
	}
	task, ok := h.resolveTask(c, project)
	if !ok {
		return
	}

	// Deletion ignores the task's lifecycle state; only the role check
	// above gates it.
	if err := h.taskService.Delete(c.Request.Context(), task.ID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
