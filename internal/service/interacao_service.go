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
	"gorm.io/gorm"
)

const msgInteracaoNaoEncontrada = "Interação não encontrada"

type InteracaoService interface {
	Registrar(ctx context.Context, req dto.InteracaoRequest) (*dto.InteracaoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.InteracaoResponse, error)
	Listar(ctx context.Context, filter dto.InteracaoFilter) ([]dto.InteracaoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.InteracaoRequest) (*dto.InteracaoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type interacaoService struct {
	repo      repository.InteracaoRepository
	clientes  repository.ClienteRepository
	atividade AtividadeCliente
	loc       *time.Location
	now       func() time.Time
}

func NewInteracaoService(
	repo repository.InteracaoRepository,
	clientes repository.ClienteRepository,
	atividade AtividadeCliente,
	loc *time.Location,
) InteracaoService {
	return &interacaoService{repo: repo, clientes: clientes, atividade: atividade, loc: loc, now: time.Now}
}

func (s *interacaoService) validar(ctx context.Context, req dto.InteracaoRequest) (clienteID uuid.UUID, descricao string, data time.Time, temData bool, err error) {
	descricao = strings.TrimSpace(req.Descricao)
	var missing []string
	if strings.TrimSpace(req.ClienteID) == "" {
		missing = append(missing, "Cliente")
	}
	if descricao == "" {
		missing = append(missing, "Descrição")
	}
	if len(missing) > 0 {
		err = apierror.MissingFields(missing...)
		return
	}
	if data, temData, err = parseData(req.Data, s.loc, "Data"); err != nil {
		return
	}
	if clienteID, err = uuid.Parse(req.ClienteID); err != nil {
		err = apierror.NotFound(msgClienteNaoEncontrado)
		return
	}
	if _, ferr := s.clientes.FindByID(ctx, clienteID); ferr != nil {
		err = notFoundOr(ferr, msgClienteNaoEncontrado)
	}
	return
}

func (s *interacaoService) Registrar(ctx context.Context, req dto.InteracaoRequest) (*dto.InteracaoResponse, error) {
	clienteID, descricao, data, temData, err := s.validar(ctx, req)
	if err != nil {
		return nil, err
	}
	if !temData {
		data = s.now().UTC()
	}
	i := model.Interacao{ClienteID: clienteID, Data: data, Descricao: descricao}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, &i); err != nil {
			return err
		}
		return s.atividade.Recalcular(ctx, tx, clienteID, OrigemInteracao)
	})
	if txErr != nil {
		return nil, fmt.Errorf("registrar interação: %w", txErr)
	}
	return s.ObterPorID(ctx, i.ID)
}

func (s *interacaoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.InteracaoResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgInteracaoNaoEncontrada)
	}
	resp := interacaoToResponse(i)
	return &resp, nil
}

func (s *interacaoService) Listar(ctx context.Context, filter dto.InteracaoFilter) ([]dto.InteracaoResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar interações: %w", err)
	}
	out := make([]dto.InteracaoResponse, 0, len(list))
	for idx := range list {
		out = append(out, interacaoToResponse(&list[idx]))
	}
	return out, nil
}

func (s *interacaoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.InteracaoRequest) (*dto.InteracaoResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgInteracaoNaoEncontrada)
	}
	clienteID, descricao, data, temData, err := s.validar(ctx, req)
	if err != nil {
		return nil, err
	}

	clienteAnterior := i.ClienteID
	i.ClienteID = clienteID
	i.Descricao = descricao
	if temData {
		i.Data = data
	}
	i.Cliente = nil

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(ctx, tx, i); err != nil {
			return err
		}
		if err := s.atividade.Recalcular(ctx, tx, i.ClienteID, OrigemInteracao); err != nil {
			return err
		}
		if clienteAnterior != i.ClienteID {
			return s.atividade.Recalcular(ctx, tx, clienteAnterior, OrigemInteracao)
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("atualizar interação: %w", txErr)
	}
	return s.ObterPorID(ctx, id)
}

func (s *interacaoService) Excluir(ctx context.Context, id uuid.UUID) error {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, msgInteracaoNaoEncontrada)
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}
		return s.atividade.Recalcular(ctx, tx, i.ClienteID, OrigemInteracao)
	})
	if txErr != nil {
		return fmt.Errorf("excluir interação: %w", txErr)
	}
	return nil
}
