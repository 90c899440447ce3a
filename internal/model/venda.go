package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Venda is a single-product sale. ComissaoCalculada is fixed when the sale is
// written and only changes when the sale itself is updated.
type Venda struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClienteID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProdutoID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Preco             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DataVenda         time.Time       `gorm:"index;not null"`
	FatorVenda        decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	CondicaoPagamento string          `gorm:"not null"`
	ComissaoCalculada decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (Venda) TableName() string { return "vendas" }

func (v *Venda) BeforeCreate(_ *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
