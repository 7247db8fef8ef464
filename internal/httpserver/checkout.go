package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webgael/internal/domain"
)

type checkoutHandler struct {
	svc checkoutService
}

func (h *checkoutHandler) place(c *gin.Context) {
	var req domain.CustomerDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	order, err := h.svc.Place(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}
