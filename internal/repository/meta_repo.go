package repository

import (
	"context"

	"erpvendas/internal/dto"
	"erpvendas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetaRepository defines CRUD operations for Meta.
type MetaRepository interface {
	Create(ctx context.Context, m *model.Meta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Meta, error)
	// FindByPeriodo looks a goal up by its natural key.
	FindByPeriodo(ctx context.Context, vendedorID string, mes, ano int) (*model.Meta, error)
	List(ctx context.Context, filter dto.MetaFilter) ([]model.Meta, error)
	Update(ctx context.Context, m *model.Meta) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type metaRepository struct{ db *gorm.DB }

func NewMetaRepository(db *gorm.DB) MetaRepository {
	return &metaRepository{db: db}
}

func (r *metaRepository) Create(ctx context.Context, m *model.Meta) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Meta, error) {
	var m model.Meta
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metaRepository) FindByPeriodo(ctx context.Context, vendedorID string, mes, ano int) (*model.Meta, error) {
	var m model.Meta
	err := r.db.WithContext(ctx).
		Where("vendedor_id = ? AND mes = ? AND ano = ?", vendedorID, mes, ano).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metaRepository) List(ctx context.Context, filter dto.MetaFilter) ([]model.Meta, error) {
	var list []model.Meta
	q := r.db.WithContext(ctx)
	if filter.VendedorID != "" {
		q = q.Where("vendedor_id = ?", filter.VendedorID)
	}
	if filter.Ano != 0 {
		q = q.Where("ano = ?", filter.Ano)
	}
	if filter.Mes != 0 {
		q = q.Where("mes = ?", filter.Mes)
	}
	err := q.Order("ano DESC, mes DESC, vendedor_id ASC").Find(&list).Error
	return list, err
}

func (r *metaRepository) Update(ctx context.Context, m *model.Meta) error {
	return r.db.WithContext(ctx).Model(m).
		Select("vendedor_id", "tipo", "descricao", "valor_alvo", "fator_medio_desejado", "mes", "ano", "updated_at").
		Updates(m).Error
}

func (r *metaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Meta{}).Error
}
