package handlers

import (
	"net/http"

	"project-tracker/backend/internal/middleware"
	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type ProjectHandler struct {
	projectService services.ProjectService
	taskService    services.TaskService
	accessService  services.AccessService
	policy         services.PolicyService
}

func NewProjectHandler(
	projectService services.ProjectService,
	taskService services.TaskService,
	accessService services.AccessService,
	policy services.PolicyService,
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
		accessService:  accessService,
		policy:         policy,
	}
}

// currentUser resolves the acting user set by the auth middleware; the
// route group guarantees it is present.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// resolveProject performs the slug lookup the framework used to do
// implicitly; every core operation receives the resolved entity.
func (h *ProjectHandler) resolveProject(c *gin.Context) (*models.Project, bool) {
	project, err := h.projectService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return project, true
}

func (h *ProjectHandler) Index(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListVisible(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

type projectInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (h *ProjectHandler) Store(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input projectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Creation is open to every authenticated user; no policy lookup.
	project, err := h.projectService.Create(c.Request.Context(), userID, input.Title, input.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Show(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.policy.Authorize(ctx, userID, project.ID, services.ResourceProject, services.ActionView); err != nil {
		handleServiceError(c, err)
		return
	}

	level, err := h.accessService.Level(ctx, userID, project.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	tasks, err := h.taskService.List(ctx, project.ID, services.TaskFilter{})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	owner, err := h.projectService.Owner(ctx, project.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"owner": gin.H{
			"id":    owner.ID,
			"name":  owner.Name,
			"email": owner.Email,
		},
		"tasks":             tasks,
		"user_access_level": level,
	})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.policy.Authorize(ctx, userID, project.ID, services.ResourceProject, services.ActionUpdate); err != nil {
		handleServiceError(c, err)
		return
	}

	var input projectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.projectService.Update(ctx, project.ID, input.Title, input.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProjectHandler) Destroy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.policy.Authorize(ctx, userID, project.ID, services.ResourceProject, services.ActionDelete); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.projectService.Delete(ctx, project.ID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
