package handler

import (
	"net/http"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/service"

	"github.com/gin-gonic/gin"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler {
	return &VendasHandler{svc: svc}
}

// Listar returns one sale for ?id=, otherwise the sales list, optionally
// narrowed by ?clienteId=.
func (h *VendasHandler) Listar(c *gin.Context) {
	if hasID(c) {
		id, ok := idParam(c, "da venda")
		if !ok {
			return
		}
		resp, err := h.svc.ObterPorID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VendasHandler) Registrar(c *gin.Context) {
	var req dto.VendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VendasHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c, "da venda")
	if !ok {
		return
	}
	var req dto.VendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VendasHandler) Excluir(c *gin.Context) {
	id, ok := idParam(c, "da venda")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Venda excluída com sucesso")
}
