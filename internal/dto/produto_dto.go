package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProdutoRequest struct {
	Nome      string          `json:"nome"      label:"Nome"      validate:"required,max=200"`
	Codigo    string          `json:"codigo"    label:"Código"    validate:"required,max=60"`
	Preco     decimal.Decimal `json:"preco"     label:"Preço"     validate:"required,gt=0"`
	Descricao *string         `json:"descricao" label:"Descrição"`
}

type ProdutoFilter struct {
	ID     string `form:"id"`
	Codigo string `form:"codigo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID        string          `json:"id"`
	Nome      string          `json:"nome"`
	Codigo    string          `json:"codigo"`
	Descricao *string         `json:"descricao"`
	Preco     decimal.Decimal `json:"preco"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ProdutoResumo struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Codigo string `json:"codigo"`
}
