package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interacao records a contact with a client (call, visit, e-mail...).
type Interacao struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Data      time.Time `gorm:"index;not null"`
	Descricao string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Interacao) TableName() string { return "interacoes" }

func (i *Interacao) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
