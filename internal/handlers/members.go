package handlers

import (
	"net/http"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// MemberHandler manages project sharing: attaching collaborators,
// changing their access levels and detaching them. Every operation is
// gated on project update rights, which only the owner holds.
type MemberHandler struct {
	projectService services.ProjectService
	policy         services.PolicyService
}

func NewMemberHandler(projectService services.ProjectService, policy services.PolicyService) *MemberHandler {
	return &MemberHandler{projectService: projectService, policy: policy}
}

func (h *MemberHandler) authorizeManage(c *gin.Context) (*models.Project, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	project, err := h.projectService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	if err := h.policy.Authorize(c.Request.Context(), userID, project.ID, services.ResourceProject, services.ActionUpdate); err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return project, true
}

func (h *MemberHandler) Index(c *gin.Context) {
	project, ok := h.authorizeManage(c)
	if !ok {
		return
	}

	memberships, err := h.projectService.Members(c.Request.Context(), project.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	members := make([]gin.H, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, gin.H{
			"id":           m.UserID,
			"name":         m.User.Name,
			"email":        m.User.Email,
			"access_level": m.AccessLevel,
		})
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

type attachInput struct {
	Email       string `json:"email" binding:"required,email"`
	AccessLevel string `json:"access_level" binding:"required"`
}

func (h *MemberHandler) Attach(c *gin.Context) {
	project, ok := h.authorizeManage(c)
	if !ok {
		return
	}

	var input attachInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := models.ParseAccessLevel(input.AccessLevel)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"access_level": "access level must be one of read, write, admin"},
		})
		return
	}

	membership, err := h.projectService.AttachUser(c.Request.Context(), project.ID, input.Email, level)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User attached successfully.",
		"member": gin.H{
			"id":           membership.UserID,
			"name":         membership.User.Name,
			"email":        membership.User.Email,
			"access_level": membership.AccessLevel,
		},
	})
}

func memberUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.FromString(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return uuid.Nil, false
	}
	return userID, true
}

type changeLevelInput struct {
	AccessLevel string `json:"access_level" binding:"required"`
}

func (h *MemberHandler) ChangeAccessLevel(c *gin.Context) {
	project, ok := h.authorizeManage(c)
	if !ok {
		return
	}
	targetID, ok := memberUserID(c)
	if !ok {
		return
	}

	var input changeLevelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := models.ParseAccessLevel(input.AccessLevel)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"access_level": "access level must be one of read, write, admin"},
		})
		return
	}

	if err := h.projectService.ChangeAccessLevel(c.Request.Context(), project.ID, targetID, level); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Access level changed successfully."})
}

func (h *MemberHandler) Detach(c *gin.Context) {
	project, ok := h.authorizeManage(c)
	if !ok {
		return
	}
	targetID, ok := memberUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.DetachUser(c.Request.Context(), project.ID, targetID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User detached successfully."})
}
