package service

import "github.com/shopspring/decimal"

var (
	limiteFaixaAlta  = decimal.RequireFromString("1.2")
	limiteFaixaMedia = decimal.RequireFromString("1.1")

	taxaAlta   = decimal.RequireFromString("0.05")
	taxaMedia  = decimal.RequireFromString("0.03")
	taxaPadrao = decimal.RequireFromString("0.01")
)

// TaxaComissao returns the commission rate for a sale factor:
// 5% above 1.2, 3% above 1.1 up to 1.2, 1% otherwise. Zero and negative
// factors fall in the 1% tier.
func TaxaComissao(fator decimal.Decimal) decimal.Decimal {
	switch {
	case fator.GreaterThan(limiteFaixaAlta):
		return taxaAlta
	case fator.GreaterThan(limiteFaixaMedia):
		return taxaMedia
	default:
		return taxaPadrao
	}
}

// CalcularComissao returns preco × TaxaComissao(fator), rounded to cents.
func CalcularComissao(preco, fator decimal.Decimal) decimal.Decimal {
	return preco.Mul(TaxaComissao(fator)).Round(2)
}
