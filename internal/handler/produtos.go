package handler

import (
	"net/http"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

func (h *ProdutosHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	switch {
	case hasID(c):
		id, ok := idParam(c, "do produto")
		if !ok {
			return
		}
		resp, err := h.svc.ObterPorID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	case filter.Codigo != "":
		resp, err := h.svc.ObterPorCodigo(c.Request.Context(), filter.Codigo)
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

func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.ProdutoRequest
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

func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c, "do produto")
	if !ok {
		return
	}
	var req dto.ProdutoRequest
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

func (h *ProdutosHandler) Excluir(c *gin.Context) {
	id, ok := idParam(c, "do produto")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Produto excluído com sucesso")
}
