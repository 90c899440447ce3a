package handler

import (
	"net/http"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/middleware"
	"erpvendas/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Consultar serves GET /v1/dashboard?ano&mes&metric&groupBy&vendedorId.
// Goal progress is scoped to ?vendedorId=, falling back to the request's
// seller.
func (h *DashboardHandler) Consultar(c *gin.Context) {
	var q dto.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros inválidos: "+err.Error()))
		return
	}
	vendedorID := q.VendedorID
	if vendedorID == "" {
		vendedorID = middleware.GetVendedorID(c)
	}
	resp, err := h.svc.Consultar(c.Request.Context(), q, vendedorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Comissoes(c *gin.Context) {
	var q dto.ComissoesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.Comissoes(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Interacoes(c *gin.Context) {
	var q dto.InteracoesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.Interacoes(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Reativar(c *gin.Context) {
	resp, err := h.svc.Reativar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
