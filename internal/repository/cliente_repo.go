package repository

import (
	"context"
	"time"

	"erpvendas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UltimaCompra is the last-purchase trio denormalized onto a Cliente.
// A zero value clears all three columns.
type UltimaCompra struct {
	Data     *time.Time
	Fator    *decimal.Decimal
	Condicao *string
}

// ClienteRepository defines the data access contract for clients.
// Services depend on this interface, not on the concrete GORM implementation.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	// FindDetalhe loads the client with its sales (and their products) and
	// interactions, newest first.
	FindDetalhe(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*model.Cliente, error)
	FindByEmail(ctx context.Context, email string) (*model.Cliente, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	// Update writes only the editable columns; derived activity fields are
	// left untouched.
	Update(ctx context.Context, c *model.Cliente) error
	// DeleteTx removes the client and its interactions.
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	// ListReativar returns clients with no interaction and no purchase since
	// limite, oldest activity first.
	ListReativar(ctx context.Context, limite time.Time) ([]model.Cliente, error)

	// Used inside transactions; callers must pass the tx instance
	SetUltimaInteracaoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, data *time.Time) error
	SetUltimaCompraTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, uc UltimaCompra) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindDetalhe(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Vendas", func(db *gorm.DB) *gorm.DB { return db.Order("data_venda DESC, created_at DESC") }).
		Preload("Vendas.Produto").
		Preload("Interacoes", func(db *gorm.DB) *gorm.DB { return db.Order("data DESC, created_at DESC") }).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByCNPJ(ctx context.Context, cnpj string) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByEmail(ctx context.Context, email string) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Cliente, error) {
	var list []model.Cliente
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var list []model.Cliente
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Model(c).Select(model.ClienteEditableColumns).Updates(c).Error
}

func (r *clienteRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("cliente_id = ?", id).Delete(&model.Interacao{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Cliente{}).Error
}

func (r *clienteRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Count(&n).Error
	return n, err
}

func (r *clienteRepo) ListReativar(ctx context.Context, limite time.Time) ([]model.Cliente, error) {
	var list []model.Cliente
	// Four disjoint cases: never contacted and never bought; contact stale and
	// never bought; never contacted and purchase stale; both stale.
	err := r.db.WithContext(ctx).
		Where(`(ultima_interacao IS NULL AND data_ultima_compra IS NULL)
			OR (ultima_interacao < ? AND data_ultima_compra IS NULL)
			OR (ultima_interacao IS NULL AND data_ultima_compra < ?)
			OR (ultima_interacao < ? AND data_ultima_compra < ?)`,
			limite, limite, limite, limite).
		Order("ultima_interacao ASC NULLS LAST").
		Order("data_ultima_compra ASC NULLS LAST").
		Order("nome ASC").
		Find(&list).Error
	return list, err
}

func (r *clienteRepo) SetUltimaInteracaoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, data *time.Time) error {
	return tx.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).
		UpdateColumn("ultima_interacao", data).Error
}

func (r *clienteRepo) SetUltimaCompraTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, uc UltimaCompra) error {
	return tx.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"data_ultima_compra":               uc.Data,
			"fator_venda_ultima_compra":        uc.Fator,
			"condicao_pagamento_ultima_compra": uc.Condicao,
		}).Error
}
