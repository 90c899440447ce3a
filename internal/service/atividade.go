package service

import (
	"context"
	"fmt"

	"erpvendas/internal/model"
	"erpvendas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Origem names the kind of record whose write triggered a recomputation.
type Origem uint8

const (
	// OrigemInteracao refreshes only ultimaInteracao.
	OrigemInteracao Origem = 1 << iota
	// OrigemVenda refreshes only the last-purchase trio.
	OrigemVenda
)

// AtividadeCliente keeps a client's derived activity columns
// (ultimaInteracao and the last-purchase trio) in line with its sales and
// interactions. Every method runs on the caller's transaction.
type AtividadeCliente interface {
	// Recalcular rebuilds the columns owned by origem from the client's
	// remaining records. It is idempotent.
	Recalcular(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID, origem Origem) error
	RecalcularInteracao(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) error
	RecalcularCompra(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) error
	// RegistrarCompra pins the last-purchase columns to v.
	RegistrarCompra(ctx context.Context, tx *gorm.DB, v *model.Venda) error
}

type atividadeCliente struct {
	clientes   repository.ClienteRepository
	vendas     repository.VendaRepository
	interacoes repository.InteracaoRepository
}

func NewAtividadeCliente(
	clientes repository.ClienteRepository,
	vendas repository.VendaRepository,
	interacoes repository.InteracaoRepository,
) AtividadeCliente {
	return &atividadeCliente{clientes: clientes, vendas: vendas, interacoes: interacoes}
}

func (a *atividadeCliente) Recalcular(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID, origem Origem) error {
	if origem&OrigemInteracao != 0 {
		if err := a.RecalcularInteracao(ctx, tx, clienteID); err != nil {
			return err
		}
	}
	if origem&OrigemVenda != 0 {
		if err := a.RecalcularCompra(ctx, tx, clienteID); err != nil {
			return err
		}
	}
	log.Debug().
		Str("cliente_id", clienteID.String()).
		Uint8("origem", uint8(origem)).
		Msg("atividade recalculada")
	return nil
}

func (a *atividadeCliente) RecalcularInteracao(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) error {
	ultima, err := a.interacoes.LatestByClienteTx(ctx, tx, clienteID)
	if err != nil {
		return fmt.Errorf("buscar última interação: %w", err)
	}
	if ultima != nil {
		data := ultima.Data
		err = a.clientes.SetUltimaInteracaoTx(ctx, tx, clienteID, &data)
	} else {
		err = a.clientes.SetUltimaInteracaoTx(ctx, tx, clienteID, nil)
	}
	if err != nil {
		return fmt.Errorf("atualizar última interação: %w", err)
	}
	return nil
}

func (a *atividadeCliente) RecalcularCompra(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) error {
	ultima, err := a.vendas.LatestByClienteTx(ctx, tx, clienteID)
	if err != nil {
		return fmt.Errorf("buscar última venda: %w", err)
	}
	if ultima != nil {
		return a.RegistrarCompra(ctx, tx, ultima)
	}
	if err := a.clientes.SetUltimaCompraTx(ctx, tx, clienteID, repository.UltimaCompra{}); err != nil {
		return fmt.Errorf("limpar última compra: %w", err)
	}
	return nil
}

func (a *atividadeCliente) RegistrarCompra(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	data, fator, condicao := v.DataVenda, v.FatorVenda, v.CondicaoPagamento
	err := a.clientes.SetUltimaCompraTx(ctx, tx, v.ClienteID, repository.UltimaCompra{
		Data:     &data,
		Fator:    &fator,
		Condicao: &condicao,
	})
	if err != nil {
		return fmt.Errorf("registrar última compra: %w", err)
	}
	return nil
}
