package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "webgael/internal/service/cart"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Notes     string `json:"notes"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartHandler struct {
	svc cartService
}

func (h *cartHandler) get(c *gin.Context) {
	h.respondWithCart(c, http.StatusOK)
}

func (h *cartHandler) add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.svc.AddItem(c.Request.Context(), cartsvc.AddInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addItemResponse{
		Item: cartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Notes:     item.Notes,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		},
		Cart: toCartResponse(snap),
	})
}

// update sets a line's quantity; zero or less removes the line.
func (h *cartHandler) update(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	if err := h.svc.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		writeError(c, err)
		return
	}
	h.respondWithCart(c, http.StatusOK)
}

func (h *cartHandler) remove(c *gin.Context) {
	removed, err := h.svc.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *cartHandler) clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	h.respondWithCart(c, http.StatusOK)
}

func (h *cartHandler) respondWithCart(c *gin.Context, status int) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, toCartResponse(snap))
}
