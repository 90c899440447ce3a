// Package testutil provides an in-memory SQLite database and record
// builders for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"erpvendas/internal/infra"
	"erpvendas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a fresh, migrated in-memory database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := infra.NewDatabase(infra.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func Str(s string) *string { return &s }

// Cliente inserts a client with a unique CNPJ and e-mail derived from its id.
func Cliente(t testing.TB, db *gorm.DB, nome string, opts ...func(*model.Cliente)) *model.Cliente {
	t.Helper()
	id := uuid.New()
	c := &model.Cliente{
		ID:    id,
		Nome:  nome,
		CNPJ:  id.String()[:18],
		Email: id.String()[:8] + "@teste.com.br",
	}
	for _, o := range opts {
		o(c)
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Produto(t testing.TB, db *gorm.DB, nome, codigo string, preco string) *model.Produto {
	t.Helper()
	p := &model.Produto{Nome: nome, Codigo: codigo, Preco: Dec(preco)}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Venda inserts a sale row directly with a flat 1% commission, bypassing client
// activity bookkeeping.
func Venda(t testing.TB, db *gorm.DB, c *model.Cliente, p *model.Produto, preco, fator string, data time.Time) *model.Venda {
	t.Helper()
	v := &model.Venda{
		ClienteID:         c.ID,
		ProdutoID:         p.ID,
		Preco:             Dec(preco),
		FatorVenda:        Dec(fator),
		CondicaoPagamento: "à vista",
		DataVenda:         data.UTC(),
		ComissaoCalculada: Dec(preco).Mul(Dec("0.01")).Round(2),
	}
	require.NoError(t, db.Omit("Cliente", "Produto").Create(v).Error)
	return v
}

// Interacao inserts an interaction row directly.
func Interacao(t testing.TB, db *gorm.DB, c *model.Cliente, data time.Time) *model.Interacao {
	t.Helper()
	i := &model.Interacao{ClienteID: c.ID, Data: data.UTC(), Descricao: "contato"}
	require.NoError(t, db.Omit("Cliente").Create(i).Error)
	return i
}

func Meta(t testing.TB, db *gorm.DB, vendedor, tipo, alvo string, mes, ano int) *model.Meta {
	t.Helper()
	m := &model.Meta{
		VendedorID:         vendedor,
		Tipo:               tipo,
		ValorAlvo:          Dec(alvo),
		FatorMedioDesejado: Dec("1.1"),
		Mes:                mes,
		Ano:                ano,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
