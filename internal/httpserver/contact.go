package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webgael/internal/service/contact"
)

type contactHandler struct {
	svc contactService
}

func (h *contactHandler) options(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Options())
}

func (h *contactHandler) submit(c *gin.Context) {
	var req contact.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	sub, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, sub)
}
