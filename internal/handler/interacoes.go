package handler

import (
	"net/http"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/service"

	"github.com/gin-gonic/gin"
)

type InteracoesHandler struct{ svc service.InteracaoService }

func NewInteracoesHandler(svc service.InteracaoService) *InteracoesHandler {
	return &InteracoesHandler{svc: svc}
}

// Listar returns one interaction for ?id=, otherwise the interaction list, optionally
// narrowed by ?clienteId=.
func (h *InteracoesHandler) Listar(c *gin.Context) {
	if hasID(c) {
		id, ok := idParam(c, "da interação")
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

	var filter dto.InteracaoFilter
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

func (h *InteracoesHandler) Registrar(c *gin.Context) {
	var req dto.InteracaoRequest
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

func (h *InteracoesHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c, "da interação")
	if !ok {
		return
	}
	var req dto.InteracaoRequest
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

func (h *InteracoesHandler) Excluir(c *gin.Context) {
	id, ok := idParam(c, "da interação")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Interação excluída com sucesso")
}
