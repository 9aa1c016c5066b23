package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/timbermart/backend/internal/application/session"
)

// StoreHandler handles cart and favorites HTTP requests. Every route
// operates on the shopper session established by the session middleware.
type StoreHandler struct {
	BaseHandler
	storeService *session.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *session.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// RegisterRoutes registers cart and favorites routes
func (h *StoreHandler) RegisterRoutes(r *gin.RouterGroup) {
	cart := r.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items/:id", h.AddToCart)
		cart.DELETE("/items/:id", h.RemoveFromCart)
	}

	favorites := r.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/:id", h.ToggleFavorite)
	}
}

// GetCart returns the session's cart
// GET /cart
func (h *StoreHandler) GetCart(c *gin.Context) {
	cart, err := h.storeService.GetCart(c.Request.Context(), getSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddToCart appends a product to the session's cart
// POST /cart/items/:id
func (h *StoreHandler) AddToCart(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.storeService.AddToCart(c.Request.Context(), getSessionID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveFromCart drops every cart entry for a product
// DELETE /cart/items/:id
func (h *StoreHandler) RemoveFromCart(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.storeService.RemoveFromCart(c.Request.Context(), getSessionID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// GetFavorites returns the session's favorites
// GET /favorites
func (h *StoreHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.storeService.GetFavorites(c.Request.Context(), getSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, favorites)
}

// ToggleFavorite marks or unmarks a product as favorite
// POST /favorites/:id
func (h *StoreHandler) ToggleFavorite(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	favorites, err := h.storeService.ToggleFavorite(c.Request.Context(), getSessionID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, favorites)
}
