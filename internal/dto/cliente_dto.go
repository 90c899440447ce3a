package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// ClienteRequest is used by both POST and PUT /v1/clientes. Derived activity
// fields are deliberately absent: they cannot be set by a client edit.
type ClienteRequest struct {
	Nome      string   `json:"nome"      label:"Nome"      validate:"required,max=200"`
	CNPJ      string   `json:"cnpj"      label:"CNPJ"      validate:"required,max=20"`
	Email     string   `json:"email"     label:"E-mail"    validate:"required,email"`
	Telefone  *string  `json:"telefone"  label:"Telefone"  validate:"omitempty,max=30"`
	Setor     *string  `json:"setor"     label:"Setor"     validate:"omitempty,max=100"`
	Regiao    *string  `json:"regiao"    label:"Região"    validate:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude"  label:"Latitude"  validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" label:"Longitude" validate:"omitempty,longitude"`
}

// ClienteFilter is bound from the query string of GET /v1/clientes.
type ClienteFilter struct {
	ID   string `form:"id"`
	CNPJ string `form:"cnpj"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID                            string           `json:"id"`
	Nome                          string           `json:"nome"`
	CNPJ                          string           `json:"cnpj"`
	Email                         string           `json:"email"`
	Telefone                      *string          `json:"telefone"`
	Setor                         *string          `json:"setor"`
	Regiao                        *string          `json:"regiao"`
	Latitude                      *float64         `json:"latitude"`
	Longitude                     *float64         `json:"longitude"`
	UltimaInteracao               *time.Time       `json:"ultimaInteracao"`
	DataUltimaCompra              *time.Time       `json:"dataUltimaCompra"`
	FatorVendaUltimaCompra        *decimal.Decimal `json:"fatorVendaUltimaCompra"`
	CondicaoPagamentoUltimaCompra *string          `json:"condicaoPagamentoUltimaCompra"`
	CreatedAt                     time.Time        `json:"createdAt"`
	UpdatedAt                     time.Time        `json:"updatedAt"`
}

// ClienteDetalheResponse is returned when a single client is requested; it
// carries the client's sales and interactions.
type ClienteDetalheResponse struct {
	ClienteResponse
	Vendas     []VendaResponse     `json:"vendas"`
	Interacoes []InteracaoResponse `json:"interacoes"`
}

// ClienteResumo is the compact client reference embedded in other records.
type ClienteResumo struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}
