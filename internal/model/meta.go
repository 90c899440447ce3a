package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tipos de meta.
const (
	MetaFaturamento = "FATURAMENTO" // revenue target
	MetaVendas      = "VENDAS"      // number of sales
	MetaInteracoes  = "INTERACOES"  // number of interactions
)

// Meta is a monthly target for one seller. (VendedorID, Mes, Ano) is unique.
type Meta struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendedorID         string    `gorm:"not null;uniqueIndex:idx_metas_vendedor_periodo,priority:1"`
	Tipo               string    `gorm:"type:varchar(20);not null;default:'FATURAMENTO'"`
	Descricao          *string
	ValorAlvo          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FatorMedioDesejado decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Mes                int             `gorm:"not null;uniqueIndex:idx_metas_vendedor_periodo,priority:2"`
	Ano                int             `gorm:"not null;uniqueIndex:idx_metas_vendedor_periodo,priority:3"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Meta) TableName() string { return "metas" }

func (m *Meta) BeforeCreate(_ *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
