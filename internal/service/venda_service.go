package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/model"
	"erpvendas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgVendaNaoEncontrada = "Venda não encontrada"

type VendaService interface {
	// Registrar stores the sale with its commission and pins the client's
	// last-purchase fields in the same transaction.
	Registrar(ctx context.Context, req dto.VendaRequest) (*dto.VendaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error)
	Listar(ctx context.Context, filter dto.VendaFilter) ([]dto.VendaResponse, error)
	// Atualizar recomputes the commission and the client's activity.
	Atualizar(ctx context.Context, id uuid.UUID, req dto.VendaRequest) (*dto.VendaResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type vendaService struct {
	repo      repository.VendaRepository
	clientes  repository.ClienteRepository
	produtos  repository.ProdutoRepository
	atividade AtividadeCliente
	loc       *time.Location
	now       func() time.Time
}

func NewVendaService(
	repo repository.VendaRepository,
	clientes repository.ClienteRepository,
	produtos repository.ProdutoRepository,
	atividade AtividadeCliente,
	loc *time.Location,
) VendaService {
	return &vendaService{
		repo:      repo,
		clientes:  clientes,
		produtos:  produtos,
		atividade: atividade,
		loc:       loc,
		now:       time.Now,
	}
}

// vendaInput is a validated VendaRequest.
type vendaInput struct {
	clienteID uuid.UUID
	produtoID uuid.UUID
	preco     decimal.Decimal
	fator     decimal.Decimal
	condicao  string
	data      time.Time
	temData   bool
}

func (s *vendaService) validar(ctx context.Context, req dto.VendaRequest) (*vendaInput, error) {
	in := &vendaInput{
		preco:    req.Preco.Round(2),
		fator:    req.FatorVenda.Round(4),
		condicao: strings.TrimSpace(req.CondicaoPagamento),
	}

	var missing []string
	if strings.TrimSpace(req.ClienteID) == "" {
		missing = append(missing, "Cliente")
	}
	if strings.TrimSpace(req.ProdutoID) == "" {
		missing = append(missing, "Produto")
	}
	if req.Preco.IsZero() {
		missing = append(missing, "Preço")
	}
	if req.FatorVenda.IsZero() {
		missing = append(missing, "Fator de Venda")
	}
	if in.condicao == "" {
		missing = append(missing, "Condição de Pagamento")
	}
	if len(missing) > 0 {
		return nil, apierror.MissingFields(missing...)
	}
	if !req.Preco.IsPositive() {
		return nil, apierror.Validation("Preço deve ser maior que zero")
	}

	var err error
	if in.data, in.temData, err = parseData(req.DataVenda, s.loc, "Data da Venda"); err != nil {
		return nil, err
	}

	if in.clienteID, err = uuid.Parse(req.ClienteID); err != nil {
		return nil, apierror.NotFound(msgClienteNaoEncontrado)
	}
	if _, err := s.clientes.FindByID(ctx, in.clienteID); err != nil {
		return nil, notFoundOr(err, msgClienteNaoEncontrado)
	}
	if in.produtoID, err = uuid.Parse(req.ProdutoID); err != nil {
		return nil, apierror.NotFound(msgProdutoNaoEncontrado)
	}
	if _, err := s.produtos.FindByID(ctx, in.produtoID); err != nil {
		return nil, notFoundOr(err, msgProdutoNaoEncontrado)
	}
	return in, nil
}

func (s *vendaService) Registrar(ctx context.Context, req dto.VendaRequest) (*dto.VendaResponse, error) {
	in, err := s.validar(ctx, req)
	if err != nil {
		return nil, err
	}
	if !in.temData {
		in.data = s.now().UTC()
	}

	venda := model.Venda{
		ClienteID:         in.clienteID,
		ProdutoID:         in.produtoID,
		Preco:             in.preco,
		DataVenda:         in.data,
		FatorVenda:        in.fator,
		CondicaoPagamento: in.condicao,
		ComissaoCalculada: CalcularComissao(in.preco, in.fator),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, &venda); err != nil {
			return err
		}
		return s.atividade.RegistrarCompra(ctx, tx, &venda)
	})
	if txErr != nil {
		return nil, fmt.Errorf("registrar venda: %w", txErr)
	}

	log.Info().
		Str("venda_id", venda.ID.String()).
		Str("cliente_id", venda.ClienteID.String()).
		Str("comissao", venda.ComissaoCalculada.StringFixed(2)).
		Msg("venda registrada")

	return s.ObterPorID(ctx, venda.ID)
}

func (s *vendaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgVendaNaoEncontrada)
	}
	resp := vendaToResponse(v)
	return &resp, nil
}

func (s *vendaService) Listar(ctx context.Context, filter dto.VendaFilter) ([]dto.VendaResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar vendas: %w", err)
	}
	out := make([]dto.VendaResponse, 0, len(list))
	for i := range list {
		out = append(out, vendaToResponse(&list[i]))
	}
	return out, nil
}

func (s *vendaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.VendaRequest) (*dto.VendaResponse, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgVendaNaoEncontrada)
	}
	in, err := s.validar(ctx, req)
	if err != nil {
		return nil, err
	}

	clienteAnterior := venda.ClienteID
	venda.ClienteID = in.clienteID
	venda.ProdutoID = in.produtoID
	venda.Preco = in.preco
	venda.FatorVenda = in.fator
	venda.CondicaoPagamento = in.condicao
	venda.ComissaoCalculada = CalcularComissao(in.preco, in.fator)
	if in.temData {
		venda.DataVenda = in.data
	}
	venda.Cliente, venda.Produto = nil, nil

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(ctx, tx, venda); err != nil {
			return err
		}
		if err := s.atividade.Recalcular(ctx, tx, venda.ClienteID, OrigemVenda); err != nil {
			return err
		}
		if clienteAnterior != venda.ClienteID {
			return s.atividade.Recalcular(ctx, tx, clienteAnterior, OrigemVenda)
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("atualizar venda: %w", txErr)
	}
	return s.ObterPorID(ctx, id)
}

func (s *vendaService) Excluir(ctx context.Context, id uuid.UUID) error {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, msgVendaNaoEncontrada)
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}
		return s.atividade.Recalcular(ctx, tx, venda.ClienteID, OrigemVenda)
	})
	if txErr != nil {
		return fmt.Errorf("excluir venda: %w", txErr)
	}
	log.Info().Str("venda_id", id.String()).Msg("venda excluída")
	return nil
}
