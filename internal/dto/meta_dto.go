package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetaRequest is used by POST and PUT /v1/metas. An empty VendedorID means the
// request's seller.
type MetaRequest struct {
	VendedorID         string          `json:"vendedorId"         label:"Vendedor"    validate:"omitempty,max=100"`
	Tipo               string          `json:"tipo"               label:"Tipo"        validate:"omitempty,oneof=FATURAMENTO VENDAS INTERACOES"`
	Descricao          *string         `json:"descricao"          label:"Descrição"`
	ValorAlvo          decimal.Decimal `json:"valorAlvo"          label:"Valor Alvo"  validate:"required,gt=0"`
	FatorMedioDesejado decimal.Decimal `json:"fatorMedioDesejado" label:"Fator Médio" validate:"required"`
	Mes                int             `json:"mes"                label:"Mês"         validate:"required,min=1,max=12"`
	Ano                int             `json:"ano"                label:"Ano"         validate:"required,min=2000,max=2100"`
}

type MetaFilter struct {
	ID         string `form:"id"`
	VendedorID string `form:"vendedorId"`
	Ano        int    `form:"ano"`
	Mes        int    `form:"mes"`
}

type MetaResponse struct {
	ID                 string          `json:"id"`
	VendedorID         string          `json:"vendedorId"`
	Tipo               string          `json:"tipo"`
	Descricao          *string         `json:"descricao"`
	ValorAlvo          decimal.Decimal `json:"valorAlvo"`
	FatorMedioDesejado decimal.Decimal `json:"fatorMedioDesejado"`
	Mes                int             `json:"mes"`
	Ano                int             `json:"ano"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
