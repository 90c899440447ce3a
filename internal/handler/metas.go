package handler

import (
	"net/http"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/middleware"
	"erpvendas/internal/service"

	"github.com/gin-gonic/gin"
)

type MetasHandler struct{ svc service.MetaService }

func NewMetasHandler(svc service.MetaService) *MetasHandler {
	return &MetasHandler{svc: svc}
}

func (h *MetasHandler) Listar(c *gin.Context) {
	if hasID(c) {
		id, ok := idParam(c, "da meta")
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

	var filter dto.MetaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Criar stores a goal; without vendedorId in the body it belongs to the
// authenticated seller.
func (h *MetasHandler) Criar(c *gin.Context) {
	var req dto.MetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), middleware.GetVendedorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MetasHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c, "da meta")
	if !ok {
		return
	}
	var req dto.MetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, middleware.GetVendedorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MetasHandler) Excluir(c *gin.Context) {
	id, ok := idParam(c, "da meta")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Meta excluída com sucesso")
}
