package handlers

import (
	"net/http"

	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	*BaseHandler
	offerService services.OfferService
}

func NewOfferHandler(base *BaseHandler, offerService services.OfferService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:  base,
		offerService: offerService,
	}
}

func (h *OfferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	offers := rg.Group("/offers")
	offers.Use(middleware.AuthMiddleware())
	{
		offers.POST("", h.CreateOffer)
		offers.GET("/my", h.ListMyOffers)
		offers.GET("/:id", h.GetOffer)
		offers.POST("/:id/respond", h.RespondOffer)
		offers.POST("/:id/counter", h.CounterOffer)
	}

	conv := rg.Group("/conversations")
	conv.Use(middleware.AuthMiddleware())
	{
		conv.GET("/:id/offers", h.ListConversationOffers)
	}
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.offerService.CreateOffer(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OfferHandler) RespondOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.offerService.RespondOffer(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfferHandler) CounterOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CounterOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.offerService.CounterOffer(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.offerService.GetOffer(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfferHandler) ListConversationOffers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.offerService.ListConversationOffers(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": resp})
}

func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var p dto.Pagination
	if !h.BindAndValidate_Query(c, &p) {
		return
	}

	resp, err := h.offerService.ListMyOffers(c.Request.Context(), userID, p)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
