package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cliente is a customer account. The Ultima*/DataUltimaCompra fields are
// derived from the client's Vendas and Interacoes and are only written by the
// activity recomputation, never by a client edit.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome      string    `gorm:"index;not null"`
	CNPJ      string    `gorm:"column:cnpj;uniqueIndex;not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Telefone  *string
	Setor     *string
	Regiao    *string
	Latitude  *float64
	Longitude *float64

	UltimaInteracao               *time.Time
	DataUltimaCompra              *time.Time
	FatorVendaUltimaCompra        *decimal.Decimal `gorm:"type:decimal(8,4)"`
	CondicaoPagamentoUltimaCompra *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Vendas     []Venda     `gorm:"foreignKey:ClienteID"`
	Interacoes []Interacao `gorm:"foreignKey:ClienteID"`
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// ClienteEditableColumns lists the columns a client edit may touch.
var ClienteEditableColumns = []string{
	"nome", "cnpj", "email", "telefone", "setor", "regiao", "latitude", "longitude", "updated_at",
}
