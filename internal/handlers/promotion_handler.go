package handlers

import (
	"net/http"

	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	*BaseHandler
	promotionService services.PromotionService
}

func NewPromotionHandler(base *BaseHandler, promotionService services.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		BaseHandler:      base,
		promotionService: promotionService,
	}
}

func (h *PromotionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Публичный каталог активных кампаний
	rg.GET("/promotions", h.SearchPromotions)
	rg.GET("/promotions/:id", h.GetPromotion)

	brand := rg.Group("/promotions")
	brand.Use(middleware.AuthMiddleware())
	brand.Use(middleware.RequireRoles(models.UserRoleBrand))
	{
		brand.POST("", h.CreatePromotion)
		brand.PUT("/:id", h.UpdatePromotion)
		brand.POST("/:id/publish", h.PublishPromotion)
		brand.POST("/:id/close", h.ClosePromotion)
		brand.GET("/:id/applications", h.ListPromotionApplications)
	}

	brandOwn := rg.Group("/brand/promotions")
	brandOwn.Use(middleware.AuthMiddleware())
	brandOwn.Use(middleware.RequireRoles(models.UserRoleBrand))
	{
		brandOwn.GET("", h.ListBrandPromotions)
	}

	creator := rg.Group("")
	creator.Use(middleware.AuthMiddleware())
	creator.Use(middleware.RequireRoles(models.UserRoleCreator))
	{
		creator.POST("/promotions/:id/apply", h.Apply)
		creator.GET("/applications/my", h.ListMyApplications)
		creator.POST("/applications/:id/withdraw", h.WithdrawApplication)
	}

	decide := rg.Group("/applications")
	decide.Use(middleware.AuthMiddleware())
	decide.Use(middleware.RequireRoles(models.UserRoleBrand))
	{
		decide.POST("/:id/accept", h.AcceptApplication)
		decide.POST("/:id/reject", h.RejectApplication)
	}
}

func (h *PromotionHandler) SearchPromotions(c *gin.Context) {
	var criteria dto.PromotionSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.promotionService.SearchPromotions(c.Request.Context(), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	resp, err := h.promotionService.GetPromotion(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePromotionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.promotionService.CreatePromotion(c.Request.Context(), brandID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePromotionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.promotionService.UpdatePromotion(c.Request.Context(), brandID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) PublishPromotion(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.promotionService.PublishPromotion(c.Request.Context(), brandID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) ClosePromotion(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.promotionService.ClosePromotion(c.Request.Context(), brandID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) ListBrandPromotions(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var p dto.Pagination
	if !h.BindAndValidate_Query(c, &p) {
		return
	}

	resp, err := h.promotionService.ListBrandPromotions(c.Request.Context(), brandID, p)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) Apply(c *gin.Context) {
	creatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.promotionService.Apply(c.Request.Context(), creatorID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PromotionHandler) WithdrawApplication(c *gin.Context) {
	creatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.promotionService.WithdrawApplication(c.Request.Context(), creatorID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application withdrawn"})
}

func (h *PromotionHandler) AcceptApplication(c *gin.Context) {
	h.decideApplication(c, true)
}

func (h *PromotionHandler) RejectApplication(c *gin.Context) {
	h.decideApplication(c, false)
}

func (h *PromotionHandler) decideApplication(c *gin.Context, accept bool) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.promotionService.DecideApplication(c.Request.Context(), brandID, c.Param("id"), accept)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) ListPromotionApplications(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var p dto.Pagination
	if !h.BindAndValidate_Query(c, &p) {
		return
	}

	resp, err := h.promotionService.ListPromotionApplications(c.Request.Context(), brandID, c.Param("id"), p)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromotionHandler) ListMyApplications(c *gin.Context) {
	creatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var p dto.Pagination
	if !h.BindAndValidate_Query(c, &p) {
		return
	}

	resp, err := h.promotionService.ListMyApplications(c.Request.Context(), creatorID, p)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
