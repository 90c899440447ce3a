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
	msgClienteNaoEncontrado  = "Cliente não encontrado"
	msgClienteComVendas      = "Não é possível excluir cliente com vendas registradas."
	msgClienteCNPJDuplicado  = "Já existe um cliente com este CNPJ."
	msgClienteEmailDuplicado = "Já existe um cliente com este E-mail."
)

// ClienteService defines the business logic contract for clients.
type ClienteService interface {
	Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	// ObterPorID returns the client together with its sales and interactions.
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteDetalheResponse, error)
	ObterPorCNPJ(ctx context.Context, cnpj string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo   repository.ClienteRepository
	vendas repository.VendaRepository
}

func NewClienteService(repo repository.ClienteRepository, vendas repository.VendaRepository) ClienteService {
	return &clienteService{repo: repo, vendas: vendas}
}

func (s *clienteService) Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{}
	if err := applyClienteRequest(c, req); err != nil {
		return nil, err
	}
	if err := s.checkUnicidade(ctx, uuid.Nil, c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if isDuplicate(err) {
			return nil, s.conflitoDuplicado(ctx, uuid.Nil, c)
		}
		return nil, fmt.Errorf("criar cliente: %w", err)
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteDetalheResponse, error) {
	c, err := s.repo.FindDetalhe(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgClienteNaoEncontrado)
	}
	resp := &dto.ClienteDetalheResponse{
		ClienteResponse: clienteToResponse(c),
		Vendas:          make([]dto.VendaResponse, 0, len(c.Vendas)),
		Interacoes:      make([]dto.InteracaoResponse, 0, len(c.Interacoes)),
	}
	for i := range c.Vendas {
		resp.Vendas = append(resp.Vendas, vendaToResponse(&c.Vendas[i]))
	}
	for i := range c.Interacoes {
		resp.Interacoes = append(resp.Interacoes, interacaoToResponse(&c.Interacoes[i]))
	}
	return resp, nil
}

func (s *clienteService) ObterPorCNPJ(ctx context.Context, cnpj string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByCNPJ(ctx, strings.TrimSpace(cnpj))
	if err != nil {
		return nil, notFoundOr(err, "Cliente não encontrado com este CNPJ")
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		out = append(out, clienteToResponse(&list[i]))
	}
	return out, nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgClienteNaoEncontrado)
	}
	if err := applyClienteRequest(c, req); err != nil {
		return nil, err
	}
	if err := s.checkUnicidade(ctx, id, c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		if isDuplicate(err) {
			return nil, s.conflitoDuplicado(ctx, id, c)
		}
		return nil, fmt.Errorf("atualizar cliente: %w", err)
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, msgClienteNaoEncontrado)
	}
	n, err := s.vendas.CountByCliente(ctx, id)
	if err != nil {
		return fmt.Errorf("contar vendas do cliente: %w", err)
	}
	if n > 0 {
		return apierror.Dependency(msgClienteComVendas)
	}
	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteTx(ctx, tx, id)
	}); err != nil {
		return fmt.Errorf("excluir cliente: %w", err)
	}
	log.Info().Str("cliente_id", id.String()).Msg("cliente excluído")
	return nil
}

// checkUnicidade reports which natural key (CNPJ first, then e-mail) is
// already used by a client other than self.
func (s *clienteService) checkUnicidade(ctx context.Context, self uuid.UUID, c *model.Cliente) error {
	if other, err := s.repo.FindByCNPJ(ctx, c.CNPJ); err == nil && other.ID != self {
		return apierror.Conflict(msgClienteCNPJDuplicado)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("verificar cnpj: %w", err)
	}
	if other, err := s.repo.FindByEmail(ctx, c.Email); err == nil && other.ID != self {
		return apierror.Conflict(msgClienteEmailDuplicado)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("verificar e-mail: %w", err)
	}
	return nil
}

// conflitoDuplicado names the key behind a duplicate-key error raised by a
// concurrent write that got past checkUnicidade.
func (s *clienteService) conflitoDuplicado(ctx context.Context, self uuid.UUID, c *model.Cliente) error {
	if err := s.checkUnicidade(ctx, self, c); err != nil {
		return err
	}
	return apierror.Conflict(msgClienteCNPJDuplicado)
}

func applyClienteRequest(c *model.Cliente, req dto.ClienteRequest) error {
	c.Nome = strings.TrimSpace(req.Nome)
	c.CNPJ = strings.TrimSpace(req.CNPJ)
	c.Email = strings.TrimSpace(req.Email)

	var missing []string
	if c.Nome == "" {
		missing = append(missing, "Nome")
	}
	if c.CNPJ == "" {
		missing = append(missing, "CNPJ")
	}
	if c.Email == "" {
		missing = append(missing, "E-mail")
	}
	if len(missing) > 0 {
		return apierror.MissingFields(missing...)
	}

	c.Telefone = trimPtr(req.Telefone)
	c.Setor = trimPtr(req.Setor)
	c.Regiao = trimPtr(req.Regiao)
	c.Latitude = req.Latitude
	c.Longitude = req.Longitude
	return nil
}
