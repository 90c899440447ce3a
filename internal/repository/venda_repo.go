package repository

import (
	"context"
	"errors"
	"time"

	"erpvendas/internal/dto"
	"erpvendas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProdutoAgregado is one row of the per-product revenue ranking.
type ProdutoAgregado struct {
	ProdutoID  uuid.UUID
	Total      decimal.Decimal
	Quantidade int64
}

type VendaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, error)
	CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error)
	CountByProduto(ctx context.Context, produtoID uuid.UUID) (int64, error)
	// CountClientes returns how many distinct clients have at least one sale.
	CountClientes(ctx context.Context) (int64, error)
	// ListPeriodo returns the sales dated within [inicio, fim], newest first,
	// with client and product loaded.
	ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Venda, error)
	// TopProdutos ranks products by summed price within [inicio, fim].
	TopProdutos(ctx context.Context, inicio, fim time.Time, limit int) ([]ProdutoAgregado, error)

	// Used inside transactions; callers must pass the tx instance
	CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	UpdateTx(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	// LatestByClienteTx returns the client's most recent sale, or nil when the
	// client has none.
	LatestByClienteTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (*model.Venda, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Produto").First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, error) {
	var vendas []model.Venda
	q := r.db.WithContext(ctx).Preload("Cliente").Preload("Produto")
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	err := q.Order("data_venda DESC, created_at DESC").Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venda{}).Where("cliente_id = ?", clienteID).Count(&n).Error
	return n, err
}

func (r *vendaRepo) CountByProduto(ctx context.Context, produtoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venda{}).Where("produto_id = ?", produtoID).Count(&n).Error
	return n, err
}

func (r *vendaRepo) CountClientes(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venda{}).Distinct("cliente_id").Count(&n).Error
	return n, err
}

func (r *vendaRepo) ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Produto").
		Where("data_venda >= ? AND data_venda <= ?", inicio, fim).
		Order("data_venda DESC, created_at DESC").
		Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) TopProdutos(ctx context.Context, inicio, fim time.Time, limit int) ([]ProdutoAgregado, error) {
	var rows []ProdutoAgregado
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Select("produto_id, SUM(preco) AS total, COUNT(id) AS quantidade").
		Where("data_venda >= ? AND data_venda <= ?", inicio, fim).
		Group("produto_id").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *vendaRepo) CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Omit("Cliente", "Produto").Create(v).Error
}

func (r *vendaRepo) UpdateTx(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Model(v).
		Select("cliente_id", "produto_id", "preco", "data_venda", "fator_venda",
			"condicao_pagamento", "comissao_calculada", "updated_at").
		Updates(v).Error
}

func (r *vendaRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Venda{}).Error
}

func (r *vendaRepo) LatestByClienteTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := tx.WithContext(ctx).Where("cliente_id = ?", clienteID).
		Order("data_venda DESC, created_at DESC").
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
