package service

import (
	"testing"

	"erpvendas/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxaComissao_Faixas(t *testing.T) {
	cases := []struct {
		fator string
		taxa  string
	}{
		{"1.25", "0.05"},
		{"1.2001", "0.05"},
		{"1.2", "0.03"},
		{"1.15", "0.03"},
		{"1.1001", "0.03"},
		{"1.1", "0.01"},
		{"1.0", "0.01"},
		{"0.5", "0.01"},
		{"-2", "0.01"},
	}
	for _, tc := range cases {
		t.Run(tc.fator, func(t *testing.T) {
			got := TaxaComissao(testutil.Dec(tc.fator))
			assert.True(t, testutil.Dec(tc.taxa).Equal(got), "fator %s: taxa %s", tc.fator, got)
		})
	}
}

func TestCalcularComissao_VendaDeMil(t *testing.T) {
	mil := testutil.Dec("1000")
	assert.Equal(t, "50.00", CalcularComissao(mil, testutil.Dec("1.25")).StringFixed(2))
	assert.Equal(t, "30.00", CalcularComissao(mil, testutil.Dec("1.15")).StringFixed(2))
	assert.Equal(t, "10.00", CalcularComissao(mil, testutil.Dec("1.0")).StringFixed(2))
}

func TestCalcularComissao_ArredondaCentavos(t *testing.T) {
	got := CalcularComissao(testutil.Dec("99.99"), testutil.Dec("1.3"))
	assert.Equal(t, "5.00", got.StringFixed(2))
}

func TestTaxaComissao_Monotonica(t *testing.T) {
	passo := decimal.RequireFromString("0.01")
	anterior := decimal.Zero
	for f := decimal.RequireFromString("-1"); f.LessThanOrEqual(decimal.NewFromInt(2)); f = f.Add(passo) {
		taxa := TaxaComissao(f)
		assert.True(t, taxa.GreaterThanOrEqual(anterior), "fator %s", f)
		anterior = taxa
	}
}
