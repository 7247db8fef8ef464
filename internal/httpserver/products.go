package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"webgael/internal/domain"
	productsvc "webgael/internal/service/product"
)

type productHandler struct {
	svc productService
}

func (h *productHandler) list(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context(), productsvc.ListFilter{
		Material: c.Query("material"),
		Color:    c.Query("color"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": lo.Map(products, func(p domain.Product, _ int) productResponse { return toProductResponse(p) }),
		"count":    len(products),
	})
}

func (h *productHandler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}
