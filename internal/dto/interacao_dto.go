package dto

import "time"

type InteracaoRequest struct {
	ClienteID string  `json:"clienteId" label:"Cliente"   validate:"required,uuid"`
	Descricao string  `json:"descricao" label:"Descrição" validate:"required"`
	Data      *string `json:"data"      label:"Data"`
}

type InteracaoFilter struct {
	ID        string `form:"id"`
	ClienteID string `form:"clienteId"`
}

type InteracaoResponse struct {
	ID        string         `json:"id"`
	ClienteID string         `json:"clienteId"`
	Data      time.Time      `json:"data"`
	Descricao string         `json:"descricao"`
	Cliente   *ClienteResumo `json:"cliente,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
