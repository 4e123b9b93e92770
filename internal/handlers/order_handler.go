package handlers

import (
	"net/http"

	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	*BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/submissions", h.ListSubmissions)
		orders.POST("/:id/cancel", h.CancelOrder)
	}

	brand := rg.Group("/orders")
	brand.Use(middleware.AuthMiddleware())
	brand.Use(middleware.RequireRoles(models.UserRoleBrand))
	{
		brand.POST("", h.CreateOrder)
		// Финансовые операции защищены ключом идемпотентности:
		// повторный запрос с тем же ключом не создаст вторую проводку.
		brand.POST("/:id/release-payment", middleware.IdempotencyMiddleware(), h.ReleasePayment)
	}

	creator := rg.Group("/orders")
	creator.Use(middleware.AuthMiddleware())
	creator.Use(middleware.RequireRoles(models.UserRoleCreator))
	{
		creator.POST("/:id/start", h.StartOrder)
		creator.POST("/:id/submit", h.SubmitWork)
	}

	submissions := rg.Group("/submissions")
	submissions.Use(middleware.AuthMiddleware())
	submissions.Use(middleware.RequireRoles(models.UserRoleBrand))
	{
		submissions.POST("/:id/review", middleware.IdempotencyMiddleware(), h.ReviewSubmission)
	}

	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.GET("", h.ListPayments)
	}

	balance := rg.Group("/balance")
	balance.Use(middleware.AuthMiddleware())
	balance.Use(middleware.RequireRoles(models.UserRoleCreator))
	{
		balance.GET("", h.CreatorBalance)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), brandID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) StartOrder(c *gin.Context) {
	creatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.StartOrder(c.Request.Context(), creatorID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) SubmitWork(c *gin.Context) {
	creatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitWorkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orderService.SubmitWork(c.Request.Context(), creatorID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) ReviewSubmission(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewSubmissionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orderService.ReviewSubmission(c.Request.Context(), brandID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ReleasePayment(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.ReleasePayment(c.Request.Context(), brandID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CancelOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orderService.CancelOrder(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.GetOrder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var criteria dto.OrderSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), userID, role, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ListSubmissions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.ListSubmissions(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": resp})
}

func (h *OrderHandler) ListPayments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var p dto.Pagination
	if !h.BindAndValidate_Query(c, &p) {
		return
	}

	resp, err := h.orderService.ListPayments(c.Request.Context(), userID, p)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) CreatorBalance(c *gin.Context) {
	creatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.CreatorBalance(c.Request.Context(), creatorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
