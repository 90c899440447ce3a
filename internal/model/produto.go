package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Produto is a catalog item identified by its unique Codigo.
type Produto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome      string    `gorm:"index;not null"`
	Codigo    string    `gorm:"uniqueIndex;not null"`
	Descricao *string
	Preco     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Produto) TableName() string { return "produtos" }

func (p *Produto) BeforeCreate(_ *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
