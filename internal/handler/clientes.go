package handler

import (
	"net/http"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Listar returns every client, or a single one when ?id= (with its sales and
// interactions) or ?cnpj= is given.
func (h *ClientesHandler) Listar(c *gin.Context) {
	var filter dto.ClienteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	switch {
	case hasID(c):
		id, ok := idParam(c, "do cliente")
		if !ok {
			return
		}
		resp, err := h.svc.ObterPorID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	case filter.CNPJ != "":
		resp, err := h.svc.ObterPorCNPJ(c.Request.Context(), filter.CNPJ)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	default:
		resp, err := h.svc.Listar(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *ClientesHandler) Criar(c *gin.Context) {
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c, "do cliente")
	if !ok {
		return
	}
	var req dto.ClienteRequest
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

func (h *ClientesHandler) Excluir(c *gin.Context) {
	id, ok := idParam(c, "do cliente")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Cliente excluído com sucesso")
}
