package service

import (
	"erpvendas/internal/dto"
	"erpvendas/internal/model"
)

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:                            c.ID.String(),
		Nome:                          c.Nome,
		CNPJ:                          c.CNPJ,
		Email:                         c.Email,
		Telefone:                      c.Telefone,
		Setor:                         c.Setor,
		Regiao:                        c.Regiao,
		Latitude:                      c.Latitude,
		Longitude:                     c.Longitude,
		UltimaInteracao:               c.UltimaInteracao,
		DataUltimaCompra:              c.DataUltimaCompra,
		FatorVendaUltimaCompra:        c.FatorVendaUltimaCompra,
		CondicaoPagamentoUltimaCompra: c.CondicaoPagamentoUltimaCompra,
		CreatedAt:                     c.CreatedAt,
		UpdatedAt:                     c.UpdatedAt,
	}
}

func clienteResumo(c *model.Cliente) *dto.ClienteResumo {
	if c == nil {
		return nil
	}
	return &dto.ClienteResumo{ID: c.ID.String(), Nome: c.Nome}
}

func produtoToResponse(p *model.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:        p.ID.String(),
		Nome:      p.Nome,
		Codigo:    p.Codigo,
		Descricao: p.Descricao,
		Preco:     p.Preco,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func produtoResumo(p *model.Produto) *dto.ProdutoResumo {
	if p == nil {
		return nil
	}
	return &dto.ProdutoResumo{ID: p.ID.String(), Nome: p.Nome, Codigo: p.Codigo}
}

func vendaToResponse(v *model.Venda) dto.VendaResponse {
	return dto.VendaResponse{
		ID:                v.ID.String(),
		ClienteID:         v.ClienteID.String(),
		ProdutoID:         v.ProdutoID.String(),
		Preco:             v.Preco,
		DataVenda:         v.DataVenda,
		FatorVenda:        v.FatorVenda,
		CondicaoPagamento: v.CondicaoPagamento,
		ComissaoCalculada: v.ComissaoCalculada,
		Cliente:           clienteResumo(v.Cliente),
		Produto:           produtoResumo(v.Produto),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func interacaoToResponse(i *model.Interacao) dto.InteracaoResponse {
	return dto.InteracaoResponse{
		ID:        i.ID.String(),
		ClienteID: i.ClienteID.String(),
		Data:      i.Data,
		Descricao: i.Descricao,
		Cliente:   clienteResumo(i.Cliente),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func metaToResponse(m *model.Meta) dto.MetaResponse {
	return dto.MetaResponse{
		ID:                 m.ID.String(),
		VendedorID:         m.VendedorID,
		Tipo:               m.Tipo,
		Descricao:          m.Descricao,
		ValorAlvo:          m.ValorAlvo,
		FatorMedioDesejado: m.FatorMedioDesejado,
		Mes:                m.Mes,
		Ano:                m.Ano,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
