package repository

import (
	"context"

	"erpvendas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error) {
	var p model.Produto
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Produto, error) {
	var list []model.Produto
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	var list []model.Produto
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Model(p).
		Select("nome", "codigo", "descricao", "preco", "updated_at").
		Updates(p).Error
}

func (r *produtoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Produto{}).Error
}
