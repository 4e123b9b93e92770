package handlers

import (
	"net/http"

	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Публичный каталог
	rg.GET("/creators", h.SearchCreators)
	rg.GET("/creators/:userID", h.GetCreatorProfile)
	rg.GET("/brands/:userID", h.GetBrandProfile)

	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.PUT("/creator", middleware.RequireRoles(models.UserRoleCreator), h.UpdateCreatorProfile)
		profile.PUT("/brand", middleware.RequireRoles(models.UserRoleBrand), h.UpdateBrandProfile)
		profile.GET("/me", h.GetMyProfile)
	}

	admin := rg.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.AdminListUsers)
		admin.PUT("/:userID/status", h.AdminSetUserStatus)
	}
}

func (h *ProfileHandler) SearchCreators(c *gin.Context) {
	var criteria dto.CreatorSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.profileService.SearchCreators(c.Request.Context(), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetCreatorProfile(c *gin.Context) {
	resp, err := h.profileService.GetCreatorProfile(c.Request.Context(), c.Param("userID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetBrandProfile(c *gin.Context) {
	resp, err := h.profileService.GetBrandProfile(c.Request.Context(), c.Param("userID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateCreatorProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCreatorProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateCreatorProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateBrandProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBrandProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateBrandProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) AdminListUsers(c *gin.Context) {
	var criteria dto.AdminUserCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.profileService.AdminListUsers(c.Request.Context(), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) AdminSetUserStatus(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.AdminSetUserStatus(c.Request.Context(), adminID, c.Param("userID"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	switch role {
	case models.UserRoleBrand:
		resp, err := h.profileService.GetBrandProfile(c.Request.Context(), userID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	default:
		resp, err := h.profileService.GetCreatorProfile(c.Request.Context(), userID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
