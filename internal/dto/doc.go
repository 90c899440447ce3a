// Package dto holds the JSON contract of the HTTP API: request bodies bound by
// the handlers and the response shapes produced by the services.
package dto

import "github.com/shopspring/decimal"

func init() {
	// Money and percentages travel as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
