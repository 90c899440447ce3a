package repository_test

import (
	"context"
	"testing"
	"time"

	"erpvendas/internal/model"
	"erpvendas/internal/repository"
	"erpvendas/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendaLatestByClienteTx(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVendaRepository(db)
	ctx := context.Background()
	c := testutil.Cliente(t, db, "Acme")
	p := testutil.Produto(t, db, "Parafuso", "P-1", "10")

	v, err := repo.LatestByClienteTx(ctx, db, c.ID)
	require.NoError(t, err)
	assert.Nil(t, v)

	data := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	testutil.Venda(t, db, c, p, "10", "1.0", data.AddDate(0, -1, 0))
	segunda := testutil.Venda(t, db, c, p, "20", "1.0", data)

	v, err = repo.LatestByClienteTx(ctx, db, c.ID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, segunda.ID, v.ID)
}

func TestVendaTopProdutos(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVendaRepository(db)
	c := testutil.Cliente(t, db, "Acme")
	a := testutil.Produto(t, db, "A", "A", "1")
	b := testutil.Produto(t, db, "B", "B", "1")
	dentro := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	testutil.Venda(t, db, c, a, "100", "1.0", dentro)
	testutil.Venda(t, db, c, b, "70", "1.0", dentro)
	testutil.Venda(t, db, c, b, "80", "1.0", dentro)
	testutil.Venda(t, db, c, a, "999", "1.0", dentro.AddDate(1, 0, 0))

	rows, err := repo.TopProdutos(context.Background(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, b.ID, rows[0].ProdutoID)
	assert.True(t, testutil.Dec("150").Equal(rows[0].Total))
	assert.EqualValues(t, 2, rows[0].Quantidade)
	assert.Equal(t, a.ID, rows[1].ProdutoID)
}

func TestClienteUpdate_NaoTocaCamposDerivados(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewClienteRepository(db)
	ctx := context.Background()
	c := testutil.Cliente(t, db, "Acme")
	data := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetUltimaInteracaoTx(ctx, db, c.ID, &data))

	// The in-memory copy has a nil UltimaInteracao; saving it must not clear
	// the stored value.
	c.Nome = "Acme Ltda"
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", got.Nome)
	require.NotNil(t, got.UltimaInteracao)
	assert.True(t, got.UltimaInteracao.Equal(data))
}

func TestClienteDeleteTx_RemoveInteracoes(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewClienteRepository(db)
	c := testutil.Cliente(t, db, "Acme")
	testutil.Interacao(t, db, c, time.Now())

	require.NoError(t, repo.DeleteTx(context.Background(), db, c.ID))

	var n int64
	require.NoError(t, db.Model(&model.Interacao{}).Count(&n).Error)
	assert.Zero(t, n)
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMetaFindByPeriodo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewMetaRepository(db)
	m := testutil.Meta(t, db, "ana", model.MetaVendas, "10", 4, 2024)

	got, err := repo.FindByPeriodo(context.Background(), "ana", 4, 2024)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	_, err = repo.FindByPeriodo(context.Background(), "ana", 5, 2024)
	assert.Error(t, err)
}
