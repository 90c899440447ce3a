package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VendaRequest is used by POST and PUT /v1/vendas. DataVenda accepts
// YYYY-MM-DD or RFC 3339; empty means now on create and "unchanged" on update.
type VendaRequest struct {
	ClienteID         string          `json:"clienteId"         label:"Cliente"               validate:"required,uuid"`
	ProdutoID         string          `json:"produtoId"         label:"Produto"               validate:"required,uuid"`
	Preco             decimal.Decimal `json:"preco"             label:"Preço"                 validate:"required,gt=0"`
	FatorVenda        decimal.Decimal `json:"fatorVenda"        label:"Fator de Venda"        validate:"required"`
	CondicaoPagamento string          `json:"condicaoPagamento" label:"Condição de Pagamento" validate:"required,max=200"`
	DataVenda         *string         `json:"dataVenda"         label:"Data da Venda"`
}

// VendaFilter is bound from the query string of GET /v1/vendas.
type VendaFilter struct {
	ID        string `form:"id"`
	ClienteID string `form:"clienteId"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VendaResponse struct {
	ID                string          `json:"id"`
	ClienteID         string          `json:"clienteId"`
	ProdutoID         string          `json:"produtoId"`
	Preco             decimal.Decimal `json:"preco"`
	DataVenda         time.Time       `json:"dataVenda"`
	FatorVenda        decimal.Decimal `json:"fatorVenda"`
	CondicaoPagamento string          `json:"condicaoPagamento"`
	ComissaoCalculada decimal.Decimal `json:"comissaoCalculada"`
	Cliente           *ClienteResumo  `json:"cliente,omitempty"`
	Produto           *ProdutoResumo  `json:"produto,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
