package handlers

import (
	"net/http"

	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

func (h *VerificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	verification := rg.Group("/verification")
	verification.Use(middleware.AuthMiddleware())
	verification.Use(middleware.RequireRoles(models.UserRoleCreator, models.UserRoleBrand))
	{
		verification.GET("/me", h.GetMyVerification)
		verification.POST("/code", h.SubmitCodeCheck)
		verification.POST("/code/verify", h.VerifyCode)
		verification.POST("/document", h.SubmitDocument)
		verification.POST("/payment", h.SubmitPayment)
	}

	admin := rg.Group("/admin/verification")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.AdminList)
		admin.PUT("/:userID/checks", h.AdminSetCheckStatus)
	}
}

func (h *VerificationHandler) GetMyVerification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetMyVerification(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) SubmitCodeCheck(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitCodeCheckRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.SubmitCodeCheck(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) VerifyCode(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.VerifyCode(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) SubmitDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitDocumentCheckRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.SubmitDocument(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) SubmitPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitPaymentCheckRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.SubmitPayment(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) AdminList(c *gin.Context) {
	var criteria dto.VerificationListCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.verificationService.AdminList(c.Request.Context(), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) AdminSetCheckStatus(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AdminSetCheckStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.AdminSetCheckStatus(c.Request.Context(), adminID, c.Param("userID"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
