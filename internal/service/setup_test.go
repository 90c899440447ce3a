package service

import (
	"context"
	"testing"
	"time"

	"erpvendas/internal/model"
	"erpvendas/internal/repository"
	"erpvendas/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// env bundles a fresh database with every repository and service built on it.
type env struct {
	db *gorm.DB

	clienteRepo   repository.ClienteRepository
	produtoRepo   repository.ProdutoRepository
	vendaRepo     repository.VendaRepository
	interacaoRepo repository.InteracaoRepository
	metaRepo      repository.MetaRepository

	atividade  AtividadeCliente
	clientes   ClienteService
	produtos   ProdutoService
	vendas     *vendaService
	interacoes *interacaoService
	metas      MetaService
	dashboard  *dashboardService
}

var agora = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	e := &env{
		db:            db,
		clienteRepo:   repository.NewClienteRepository(db),
		produtoRepo:   repository.NewProdutoRepository(db),
		vendaRepo:     repository.NewVendaRepository(db),
		interacaoRepo: repository.NewInteracaoRepository(db),
		metaRepo:      repository.NewMetaRepository(db),
	}
	e.atividade = NewAtividadeCliente(e.clienteRepo, e.vendaRepo, e.interacaoRepo)
	e.clientes = NewClienteService(e.clienteRepo, e.vendaRepo)
	e.produtos = NewProdutoService(e.produtoRepo, e.vendaRepo)
	e.vendas = NewVendaService(e.vendaRepo, e.clienteRepo, e.produtoRepo, e.atividade, time.UTC).(*vendaService)
	e.interacoes = NewInteracaoService(e.interacaoRepo, e.clienteRepo, e.atividade, time.UTC).(*interacaoService)
	e.metas = NewMetaService(e.metaRepo)
	e.dashboard = NewDashboardService(e.vendaRepo, e.interacaoRepo, e.clienteRepo, e.produtoRepo, e.metaRepo, time.UTC).(*dashboardService)

	clock := func() time.Time { return agora }
	e.vendas.now = clock
	e.interacoes.now = clock
	e.dashboard.now = clock
	return e
}

func (e *env) reload(t *testing.T, id uuid.UUID) *model.Cliente {
	t.Helper()
	c, err := e.clienteRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 10, 0, 0, 0, time.UTC)
}
