package service

import (
	"context"
	"testing"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/model"
	"erpvendas/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clienteReq(nome, cnpj, email string) dto.ClienteRequest {
	return dto.ClienteRequest{Nome: nome, CNPJ: cnpj, Email: email, Setor: testutil.Str("Indústria")}
}

func TestClienteCriar(t *testing.T) {
	e := newEnv(t)
	c, err := e.clientes.Criar(context.Background(), dto.ClienteRequest{
		Nome:     " Acme ",
		CNPJ:     "12.345.678/0001-90",
		Email:    "contato@acme.com.br",
		Telefone: testutil.Str("  "),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Acme", c.Nome)
	assert.Nil(t, c.Telefone)
	assert.Nil(t, c.UltimaInteracao)
	assert.Nil(t, c.DataUltimaCompra)
}

func TestClienteCriar_CamposObrigatorios(t *testing.T) {
	e := newEnv(t)
	_, err := e.clientes.Criar(context.Background(), dto.ClienteRequest{Nome: "Acme"})
	ae, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindValidation, ae.Kind)
	assert.Equal(t, "CNPJ e E-mail são obrigatórios", ae.Msg)
}

func TestClienteCriar_Duplicados(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.clientes.Criar(ctx, clienteReq("Acme", "111", "a@acme.com"))
	require.NoError(t, err)

	_, err = e.clientes.Criar(ctx, clienteReq("Outro", "111", "b@acme.com"))
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
	assert.EqualError(t, err, "Já existe um cliente com este CNPJ.")

	_, err = e.clientes.Criar(ctx, clienteReq("Outro", "222", "A@ACME.com"))
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
	assert.EqualError(t, err, "Já existe um cliente com este E-mail.")
}

func TestClienteAtualizar_PreservaAtividade(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := testutil.Cliente(t, e.db, "Acme")
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	testutil.Interacao(t, e.db, c, dia(2024, 5, 1))
	testutil.Venda(t, e.db, c, p, "10", "1.3", dia(2024, 5, 2))
	require.NoError(t, e.atividade.Recalcular(ctx, e.db, c.ID, OrigemInteracao|OrigemVenda))

	upd, err := e.clientes.Atualizar(ctx, c.ID, clienteReq("Acme Ltda", c.CNPJ, c.Email))
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", upd.Nome)

	got := e.reload(t, c.ID)
	assert.Equal(t, "Acme Ltda", got.Nome)
	require.NotNil(t, got.UltimaInteracao)
	assert.True(t, got.UltimaInteracao.Equal(dia(2024, 5, 1)))
	require.NotNil(t, got.DataUltimaCompra)
	assert.True(t, got.DataUltimaCompra.Equal(dia(2024, 5, 2)))
}

func TestClienteAtualizar_ConflitoComOutro(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := testutil.Cliente(t, e.db, "Alfa")
	b := testutil.Cliente(t, e.db, "Beta")

	_, err := e.clientes.Atualizar(ctx, b.ID, clienteReq("Beta", a.CNPJ, b.Email))
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	_, err = e.clientes.Atualizar(ctx, uuid.New(), clienteReq("X", "9", "x@x.com"))
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestClienteExcluir_BloqueadoPorVendas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := testutil.Cliente(t, e.db, "Acme")
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	testutil.Venda(t, e.db, c, p, "10", "1.0", dia(2024, 1, 1))

	err := e.clientes.Excluir(ctx, c.ID)
	assert.True(t, apierror.IsKind(err, apierror.KindDependency))
	assert.EqualError(t, err, "Não é possível excluir cliente com vendas registradas.")
	e.reload(t, c.ID)
}

func TestClienteExcluir_RemoveInteracoes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := testutil.Cliente(t, e.db, "Acme")
	testutil.Interacao(t, e.db, c, dia(2024, 1, 1))
	testutil.Interacao(t, e.db, c, dia(2024, 1, 2))

	require.NoError(t, e.clientes.Excluir(ctx, c.ID))

	var n int64
	require.NoError(t, e.db.Model(&model.Interacao{}).Where("cliente_id = ?", c.ID).Count(&n).Error)
	assert.Zero(t, n)
	_, err := e.clientes.ObterPorID(ctx, c.ID)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestClienteObterPorID_IncluiHistorico(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := testutil.Cliente(t, e.db, "Acme")
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	testutil.Venda(t, e.db, c, p, "10", "1.0", dia(2024, 1, 1))
	testutil.Venda(t, e.db, c, p, "20", "1.0", dia(2024, 2, 1))
	testutil.Interacao(t, e.db, c, dia(2024, 1, 5))

	d, err := e.clientes.ObterPorID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, d.Vendas, 2)
	assert.Equal(t, "20.00", d.Vendas[0].Preco.StringFixed(2))
	require.NotNil(t, d.Vendas[0].Produto)
	assert.Equal(t, "Parafuso", d.Vendas[0].Produto.Nome)
	assert.Len(t, d.Interacoes, 1)
}

func TestClienteObterPorCNPJ(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := testutil.Cliente(t, e.db, "Acme")

	got, err := e.clientes.ObterPorCNPJ(ctx, " "+c.CNPJ+" ")
	require.NoError(t, err)
	assert.Equal(t, c.ID.String(), got.ID)

	_, err = e.clientes.ObterPorCNPJ(ctx, "000")
	assert.EqualError(t, err, "Cliente não encontrado com este CNPJ")
}

func TestClienteConflitoDuplicado_NomeiaChave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	outro := testutil.Cliente(t, e.db, "Outro")
	svc := e.clientes.(*clienteService)

	err := svc.conflitoDuplicado(ctx, uuid.Nil, &model.Cliente{CNPJ: "novo", Email: outro.Email})
	assert.EqualError(t, err, "Já existe um cliente com este E-mail.")

	err = svc.conflitoDuplicado(ctx, uuid.Nil, &model.Cliente{CNPJ: outro.CNPJ, Email: "novo@x.com"})
	assert.EqualError(t, err, "Já existe um cliente com este CNPJ.")

	// The conflicting row may be gone by the time the error is read.
	err = svc.conflitoDuplicado(ctx, uuid.Nil, &model.Cliente{CNPJ: "livre", Email: "livre@x.com"})
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}
