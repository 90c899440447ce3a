package model

import "github.com/google/uuid"

// ensureID assigns a fresh UUID when the record has none yet. Ids are
// generated in the application so the same models run on PostgreSQL and
// SQLite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model, parents first.
func All() []interface{} {
	return []interface{}{&Cliente{}, &Produto{}, &Venda{}, &Interacao{}, &Meta{}}
}
