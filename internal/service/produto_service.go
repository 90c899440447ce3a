package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/model"
	"erpvendas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	msgProdutoNaoEncontrado = "Produto não encontrado"
	msgProdutoDuplicado     = "Já existe um produto com este código."
	msgProdutoComVendas     = "Não é possível excluir produto com vendas registradas."
)

// ProdutoService defines the business logic contract for products.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.ProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ProdutoRequest) (*dto.ProdutoResponse, error)
	// Excluir refuses to remove a product referenced by any sale.
	Excluir(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	repo   repository.ProdutoRepository
	vendas repository.VendaRepository
}

func NewProdutoService(repo repository.ProdutoRepository, vendas repository.VendaRepository) ProdutoService {
	return &produtoService{repo: repo, vendas: vendas}
}

func (s *produtoService) Criar(ctx context.Context, req dto.ProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{}
	if err := applyProdutoRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.checkCodigo(ctx, uuid.Nil, p.Codigo); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict(msgProdutoDuplicado)
		}
		return nil, fmt.Errorf("criar produto: %w", err)
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgProdutoNaoEncontrado)
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, strings.TrimSpace(codigo))
	if err != nil {
		return nil, notFoundOr(err, "Produto não encontrado com este código")
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	out := make([]dto.ProdutoResponse, 0, len(list))
	for i := range list {
		out = append(out, produtoToResponse(&list[i]))
	}
	return out, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgProdutoNaoEncontrado)
	}
	if err := applyProdutoRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.checkCodigo(ctx, id, p.Codigo); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict(msgProdutoDuplicado)
		}
		return nil, fmt.Errorf("atualizar produto: %w", err)
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, msgProdutoNaoEncontrado)
	}
	n, err := s.vendas.CountByProduto(ctx, id)
	if err != nil {
		return fmt.Errorf("contar vendas do produto: %w", err)
	}
	if n > 0 {
		return apierror.Dependency(msgProdutoComVendas)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("excluir produto: %w", err)
	}
	log.Info().Str("produto_id", id.String()).Msg("produto excluído")
	return nil
}

func (s *produtoService) checkCodigo(ctx context.Context, self uuid.UUID, codigo string) error {
	other, err := s.repo.FindByCodigo(ctx, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("verificar código: %w", err)
	}
	if other.ID != self {
		return apierror.Conflict(msgProdutoDuplicado)
	}
	return nil
}

func applyProdutoRequest(p *model.Produto, req dto.ProdutoRequest) error {
	p.Nome = strings.TrimSpace(req.Nome)
	p.Codigo = strings.TrimSpace(req.Codigo)

	var missing []string
	if p.Nome == "" {
		missing = append(missing, "Nome")
	}
	if p.Codigo == "" {
		missing = append(missing, "Código")
	}
	if req.Preco.IsZero() {
		missing = append(missing, "Preço")
	}
	if len(missing) > 0 {
		return apierror.MissingFields(missing...)
	}
	if !req.Preco.IsPositive() {
		return apierror.Validation("Preço deve ser maior que zero")
	}
	p.Preco = req.Preco.Round(2)
	p.Descricao = trimPtr(req.Descricao)
	return nil
}
