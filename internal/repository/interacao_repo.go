package repository

import (
	"context"
	"errors"
	"time"

	"erpvendas/internal/dto"
	"erpvendas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InteracaoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Interacao, error)
	List(ctx context.Context, filter dto.InteracaoFilter) ([]model.Interacao, error)
	// ListPeriodo returns interactions dated within [inicio, fim], oldest first.
	ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Interacao, error)
	// CountClientes returns how many distinct clients have at least one interaction.
	CountClientes(ctx context.Context) (int64, error)

	// Used inside transactions; callers must pass the tx instance
	CreateTx(ctx context.Context, tx *gorm.DB, i *model.Interacao) error
	UpdateTx(ctx context.Context, tx *gorm.DB, i *model.Interacao) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	// LatestByClienteTx returns the client's most recent interaction, or nil.
	LatestByClienteTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (*model.Interacao, error)

	DB() *gorm.DB
}

type interacaoRepo struct{ db *gorm.DB }

func NewInteracaoRepository(db *gorm.DB) InteracaoRepository { return &interacaoRepo{db: db} }

func (r *interacaoRepo) DB() *gorm.DB { return r.db }

func (r *interacaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Interacao, error) {
	var i model.Interacao
	if err := r.db.WithContext(ctx).Preload("Cliente").First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *interacaoRepo) List(ctx context.Context, filter dto.InteracaoFilter) ([]model.Interacao, error) {
	var list []model.Interacao
	q := r.db.WithContext(ctx).Preload("Cliente")
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	err := q.Order("data DESC, created_at DESC").Find(&list).Error
	return list, err
}

func (r *interacaoRepo) ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Interacao, error) {
	var list []model.Interacao
	err := r.db.WithContext(ctx).
		Where("data >= ? AND data <= ?", inicio, fim).
		Order("data ASC").
		Find(&list).Error
	return list, err
}

func (r *interacaoRepo) CountClientes(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Interacao{}).Distinct("cliente_id").Count(&n).Error
	return n, err
}

func (r *interacaoRepo) CreateTx(ctx context.Context, tx *gorm.DB, i *model.Interacao) error {
	return tx.WithContext(ctx).Omit("Cliente").Create(i).Error
}

func (r *interacaoRepo) UpdateTx(ctx context.Context, tx *gorm.DB, i *model.Interacao) error {
	return tx.WithContext(ctx).Model(i).
		Select("cliente_id", "data", "descricao", "updated_at").
		Updates(i).Error
}

func (r *interacaoRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Interacao{}).Error
}

func (r *interacaoRepo) LatestByClienteTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (*model.Interacao, error) {
	var i model.Interacao
	err := tx.WithContext(ctx).Where("cliente_id = ?", clienteID).
		Order("data DESC, created_at DESC").
		First(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}
