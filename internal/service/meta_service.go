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
	"gorm.io/gorm"
)

const (
	msgMetaNaoEncontrada = "Meta não encontrada"
	msgMetaDuplicada     = "Já existe uma meta para este vendedor neste mês/ano."
)

// MetaService manages monthly seller goals. vendedorPadrao is the request's
// seller, used when the payload names none.
type MetaService interface {
	Criar(ctx context.Context, vendedorPadrao string, req dto.MetaRequest) (*dto.MetaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.MetaResponse, error)
	Listar(ctx context.Context, filter dto.MetaFilter) ([]dto.MetaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, vendedorPadrao string, req dto.MetaRequest) (*dto.MetaResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type metaService struct {
	repo repository.MetaRepository
}

func NewMetaService(repo repository.MetaRepository) MetaService {
	return &metaService{repo: repo}
}

func (s *metaService) Criar(ctx context.Context, vendedorPadrao string, req dto.MetaRequest) (*dto.MetaResponse, error) {
	m := &model.Meta{}
	if err := applyMetaRequest(m, vendedorPadrao, req); err != nil {
		return nil, err
	}
	if err := s.checkPeriodo(ctx, uuid.Nil, m); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict(msgMetaDuplicada)
		}
		return nil, fmt.Errorf("criar meta: %w", err)
	}
	resp := metaToResponse(m)
	return &resp, nil
}

func (s *metaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.MetaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgMetaNaoEncontrada)
	}
	resp := metaToResponse(m)
	return &resp, nil
}

func (s *metaService) Listar(ctx context.Context, filter dto.MetaFilter) ([]dto.MetaResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar metas: %w", err)
	}
	out := make([]dto.MetaResponse, 0, len(list))
	for i := range list {
		out = append(out, metaToResponse(&list[i]))
	}
	return out, nil
}

func (s *metaService) Atualizar(ctx context.Context, id uuid.UUID, vendedorPadrao string, req dto.MetaRequest) (*dto.MetaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgMetaNaoEncontrada)
	}
	if err := applyMetaRequest(m, vendedorPadrao, req); err != nil {
		return nil, err
	}
	if err := s.checkPeriodo(ctx, id, m); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict(msgMetaDuplicada)
		}
		return nil, fmt.Errorf("atualizar meta: %w", err)
	}
	resp := metaToResponse(m)
	return &resp, nil
}

func (s *metaService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, msgMetaNaoEncontrada)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("excluir meta: %w", err)
	}
	return nil
}

func (s *metaService) checkPeriodo(ctx context.Context, self uuid.UUID, m *model.Meta) error {
	other, err := s.repo.FindByPeriodo(ctx, m.VendedorID, m.Mes, m.Ano)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("verificar meta do período: %w", err)
	}
	if other.ID != self {
		return apierror.Conflict(msgMetaDuplicada)
	}
	return nil
}

func applyMetaRequest(m *model.Meta, vendedorPadrao string, req dto.MetaRequest) error {
	m.VendedorID = strings.TrimSpace(req.VendedorID)
	if m.VendedorID == "" {
		m.VendedorID = vendedorPadrao
	}

	var missing []string
	if m.VendedorID == "" {
		missing = append(missing, "Vendedor")
	}
	if req.ValorAlvo.IsZero() {
		missing = append(missing, "Valor Alvo")
	}
	if req.FatorMedioDesejado.IsZero() {
		missing = append(missing, "Fator Médio")
	}
	if req.Mes == 0 {
		missing = append(missing, "Mês")
	}
	if req.Ano == 0 {
		missing = append(missing, "Ano")
	}
	if len(missing) > 0 {
		return apierror.MissingFields(missing...)
	}
	if req.Mes < 1 || req.Mes > 12 {
		return apierror.Validation("Mês deve estar entre 1 e 12")
	}

	m.Tipo = strings.ToUpper(strings.TrimSpace(req.Tipo))
	switch m.Tipo {
	case "":
		m.Tipo = model.MetaFaturamento
	case model.MetaFaturamento, model.MetaVendas, model.MetaInteracoes:
	default:
		return apierror.Validation("Tipo de meta inválido")
	}

	m.ValorAlvo = req.ValorAlvo.Round(2)
	m.FatorMedioDesejado = req.FatorMedioDesejado
	m.Mes = req.Mes
	m.Ano = req.Ano
	m.Descricao = trimPtr(req.Descricao)
	return nil
}
