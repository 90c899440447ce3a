package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/model"
	"erpvendas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Dashboard metrics selectable through ?metric=.
const (
	MetricFaturamento          = "faturamento"
	MetricEvolucaoMensal       = "evolucao_mensal"
	MetricProdutosMaisVendidos = "produtos_mais_vendidos"
	MetricDesempenhoGrupo      = "desempenho_grupo"
	MetricMetasProgresso       = "metas_progresso"
	MetricFunil                = "funil"
)

const (
	setorNaoInformado   = "Não informado"
	regiaoNaoInformada  = "Não informada"
	clienteDesconhecido = "Cliente Desconhecido"

	topProdutos = 5
)

var cem = decimal.NewFromInt(100)

// DashboardService computes the read-only aggregations behind the dashboard.
// Every method either returns the complete result or an error.
type DashboardService interface {
	// Consultar returns the overview when q.Metric is empty, or the single
	// requested metric. vendedorID scopes goal progress.
	Consultar(ctx context.Context, q dto.DashboardQuery, vendedorID string) (any, error)
	Comissoes(ctx context.Context, q dto.ComissoesQuery) (*dto.ComissoesResponse, error)
	Interacoes(ctx context.Context, q dto.InteracoesQuery) (*dto.InteracoesResponse, error)
	Reativar(ctx context.Context) (*dto.ReativarResponse, error)
}

type dashboardService struct {
	vendas     repository.VendaRepository
	interacoes repository.InteracaoRepository
	clientes   repository.ClienteRepository
	produtos   repository.ProdutoRepository
	metas      repository.MetaRepository
	loc        *time.Location
	now        func() time.Time
}

func NewDashboardService(
	vendas repository.VendaRepository,
	interacoes repository.InteracaoRepository,
	clientes repository.ClienteRepository,
	produtos repository.ProdutoRepository,
	metas repository.MetaRepository,
	loc *time.Location,
) DashboardService {
	return &dashboardService{
		vendas:     vendas,
		interacoes: interacoes,
		clientes:   clientes,
		produtos:   produtos,
		metas:      metas,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *dashboardService) periodo(ano, mes int) (int, Periodo, error) {
	if ano == 0 {
		ano = s.now().In(s.loc).Year()
	}
	p, err := PeriodoAnoMes(ano, mes, s.loc)
	return ano, p, err
}

func (s *dashboardService) Consultar(ctx context.Context, q dto.DashboardQuery, vendedorID string) (any, error) {
	ano, p, err := s.periodo(q.Ano, q.Mes)
	if err != nil {
		return nil, err
	}
	per := p.Response()

	switch q.Metric {
	case "":
		return s.visaoGeral(ctx, ano, q.Mes, p, vendedorID)
	case MetricFaturamento:
		vendas, err := s.vendasNoPeriodo(ctx, p)
		if err != nil {
			return nil, err
		}
		return &dto.FaturamentoMetric{Periodo: per, FaturamentoResponse: s.faturamento(vendas, ano)}, nil
	case MetricEvolucaoMensal:
		vendas, err := s.vendasNoPeriodo(ctx, p)
		if err != nil {
			return nil, err
		}
		return &dto.EvolucaoMetric{Periodo: per, EvolucaoMensal: s.faturamento(vendas, ano).EvolucaoMensal}, nil
	case MetricProdutosMaisVendidos:
		top, err := s.produtosMaisVendidos(ctx, p)
		if err != nil {
			return nil, err
		}
		return &dto.ProdutosMetric{Periodo: per, ProdutosMaisVendidos: top}, nil
	case MetricDesempenhoGrupo:
		vendas, err := s.vendasNoPeriodo(ctx, p)
		if err != nil {
			return nil, err
		}
		d := desempenho(vendas)
		switch q.GroupBy {
		case "":
			return &dto.DesempenhoMetric{Periodo: per, DesempenhoResponse: d}, nil
		case "setor":
			return &dto.GrupoMetric{Periodo: per, GroupBy: q.GroupBy, Desempenho: d.PorSetor}, nil
		case "regiao":
			return &dto.GrupoMetric{Periodo: per, GroupBy: q.GroupBy, Desempenho: d.PorRegiao}, nil
		default:
			return nil, apierror.Validation("groupBy deve ser setor ou regiao")
		}
	case MetricMetasProgresso:
		vendas, err := s.vendasNoPeriodo(ctx, p)
		if err != nil {
			return nil, err
		}
		mp, err := s.metasProgresso(ctx, ano, q.Mes, p, vendedorID, vendas)
		if err != nil {
			return nil, err
		}
		return &dto.MetasMetric{Periodo: per, MetasProgressoResponse: *mp}, nil
	case MetricFunil:
		f, err := s.funil(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.FunilMetric{Periodo: per, Funil: *f}, nil
	default:
		return nil, apierror.Validation("Métrica desconhecida: " + q.Metric)
	}
}

// visaoGeral runs the independent reads concurrently; the first failure
// cancels the rest.
func (s *dashboardService) visaoGeral(ctx context.Context, ano, mes int, p Periodo, vendedorID string) (*dto.DashboardResponse, error) {
	var (
		vendas []model.Venda
		top    []dto.ProdutoVendido
		f      *dto.FunilResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vendas, err = s.vendasNoPeriodo(gctx, p)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.produtosMaisVendidos(gctx, p)
		return err
	})
	g.Go(func() (err error) {
		f, err = s.funil(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mp, err := s.metasProgresso(ctx, ano, mes, p, vendedorID, vendas)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Periodo:                p.Response(),
		FaturamentoResponse:    s.faturamento(vendas, ano),
		ProdutosMaisVendidos:   top,
		DesempenhoResponse:     desempenho(vendas),
		MetasProgressoResponse: *mp,
		Funil:                  *f,
	}, nil
}

func (s *dashboardService) vendasNoPeriodo(ctx context.Context, p Periodo) ([]model.Venda, error) {
	u := p.UTC()
	vendas, err := s.vendas.ListPeriodo(ctx, u.Inicio, u.Fim)
	if err != nil {
		return nil, fmt.Errorf("buscar vendas do período: %w", err)
	}
	return vendas, nil
}

// faturamento sums the range and splits it into 12 monthly buckets, counting
// only sales whose local year is ano.
func (s *dashboardService) faturamento(vendas []model.Venda, ano int) dto.FaturamentoResponse {
	total := decimal.Zero
	var meses [12]decimal.Decimal
	for _, v := range vendas {
		total = total.Add(v.Preco)
		d := v.DataVenda.In(s.loc)
		if d.Year() == ano {
			meses[d.Month()-1] = meses[d.Month()-1].Add(v.Preco)
		}
	}
	evolucao := make([]dto.MesValor, 12)
	for i := range meses {
		evolucao[i] = dto.MesValor{Mes: i + 1, Valor: meses[i]}
	}
	return dto.FaturamentoResponse{FaturamentoTotal: total, EvolucaoMensal: evolucao}
}

func (s *dashboardService) produtosMaisVendidos(ctx context.Context, p Periodo) ([]dto.ProdutoVendido, error) {
	u := p.UTC()
	rows, err := s.vendas.TopProdutos(ctx, u.Inicio, u.Fim, topProdutos)
	if err != nil {
		return nil, fmt.Errorf("agrupar vendas por produto: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProdutoID)
	}
	produtos, err := s.produtos.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("buscar produtos: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Produto, len(produtos))
	for i := range produtos {
		byID[produtos[i].ID] = &produtos[i]
	}

	out := make([]dto.ProdutoVendido, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProdutoVendido{
			Produto:      produtoResumo(byID[r.ProdutoID]),
			TotalVendido: r.Total,
			Quantidade:   r.Quantidade,
		})
	}
	return out, nil
}

func desempenho(vendas []model.Venda) dto.DesempenhoResponse {
	porSetor := map[string]decimal.Decimal{}
	porRegiao := map[string]decimal.Decimal{}
	for _, v := range vendas {
		setor, regiao := setorNaoInformado, regiaoNaoInformada
		if v.Cliente != nil {
			if v.Cliente.Setor != nil && *v.Cliente.Setor != "" {
				setor = *v.Cliente.Setor
			}
			if v.Cliente.Regiao != nil && *v.Cliente.Regiao != "" {
				regiao = *v.Cliente.Regiao
			}
		}
		porSetor[setor] = porSetor[setor].Add(v.Preco)
		porRegiao[regiao] = porRegiao[regiao].Add(v.Preco)
	}
	return dto.DesempenhoResponse{PorSetor: grupos(porSetor), PorRegiao: grupos(porRegiao)}
}

// grupos flattens a sum map ordered by value desc, then name.
func grupos(m map[string]decimal.Decimal) []dto.GrupoValor {
	out := make([]dto.GrupoValor, 0, len(m))
	for name, v := range m {
		out = append(out, dto.GrupoValor{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type atingidoMes struct {
	valor      decimal.Decimal
	somaFator  decimal.Decimal
	vendas     int64
	interacoes int64
}

func (s *dashboardService) metasProgresso(ctx context.Context, ano, mes int, p Periodo, vendedorID string, vendas []model.Venda) (*dto.MetasProgressoResponse, error) {
	metas, err := s.metas.List(ctx, dto.MetaFilter{VendedorID: vendedorID, Ano: ano, Mes: mes})
	if err != nil {
		return nil, fmt.Errorf("buscar metas: %w", err)
	}
	resp := &dto.MetasProgressoResponse{VendedorID: vendedorID, MetasVsAtingido: make([]dto.MetaProgresso, 0, len(metas))}
	if len(metas) == 0 {
		return resp, nil
	}

	var porMes [12]atingidoMes
	for _, v := range vendas {
		d := v.DataVenda.In(s.loc)
		if d.Year() != ano {
			continue
		}
		a := &porMes[d.Month()-1]
		a.valor = a.valor.Add(v.Preco)
		a.somaFator = a.somaFator.Add(v.FatorVenda)
		a.vendas++
	}
	u := p.UTC()
	interacoes, err := s.interacoes.ListPeriodo(ctx, u.Inicio, u.Fim)
	if err != nil {
		return nil, fmt.Errorf("buscar interações do período: %w", err)
	}
	for _, i := range interacoes {
		d := i.Data.In(s.loc)
		if d.Year() == ano {
			porMes[d.Month()-1].interacoes++
		}
	}

	sort.Slice(metas, func(i, j int) bool { return metas[i].Mes < metas[j].Mes })
	for _, m := range metas {
		if m.Mes < 1 || m.Mes > 12 {
			continue
		}
		a := porMes[m.Mes-1]
		fator := decimal.Zero
		if a.vendas > 0 {
			fator = a.somaFator.Div(decimal.NewFromInt(a.vendas)).Round(4)
		}

		var atingido decimal.Decimal
		switch m.Tipo {
		case model.MetaVendas:
			atingido = decimal.NewFromInt(a.vendas)
		case model.MetaInteracoes:
			atingido = decimal.NewFromInt(a.interacoes)
		default:
			atingido = a.valor
		}

		resp.MetasVsAtingido = append(resp.MetasVsAtingido, dto.MetaProgresso{
			MetaID:             m.ID.String(),
			Tipo:               m.Tipo,
			Mes:                m.Mes,
			Ano:                m.Ano,
			MetaValor:          m.ValorAlvo,
			MetaFator:          m.FatorMedioDesejado,
			AtingidoValor:      a.valor,
			AtingidoFator:      fator,
			AtingidoVendas:     a.vendas,
			AtingidoInteracoes: a.interacoes,
			Atingido:           atingido,
			Percentual:         percentual(atingido, m.ValorAlvo),
		})
	}
	return resp, nil
}

func (s *dashboardService) funil(ctx context.Context) (*dto.FunilResponse, error) {
	total, err := s.clientes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar clientes: %w", err)
	}
	comInteracao, err := s.interacoes.CountClientes(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar clientes com interação: %w", err)
	}
	comVenda, err := s.vendas.CountClientes(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar clientes com venda: %w", err)
	}
	t, i, v := decimal.NewFromInt(total), decimal.NewFromInt(comInteracao), decimal.NewFromInt(comVenda)
	return &dto.FunilResponse{
		TotalClientes:        total,
		ClientesComInteracao: comInteracao,
		ClientesComVenda:     comVenda,
		TaxaInteracao:        percentual(i, t),
		TaxaConversao:        percentual(v, i),
		TaxaGeral:            percentual(v, t),
	}, nil
}

// percentual is num/den × 100 rounded to one decimal place, or 0 when den is 0.
func percentual(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(cem).Round(1)
}

func (s *dashboardService) Comissoes(ctx context.Context, q dto.ComissoesQuery) (*dto.ComissoesResponse, error) {
	groupBy := q.GroupBy
	if groupBy == "" {
		groupBy = "venda"
	}
	if groupBy != "venda" && groupBy != "mes" {
		return nil, apierror.Validation("groupBy deve ser venda ou mes")
	}
	ano, p, err := s.periodo(q.Ano, q.Mes)
	if err != nil {
		return nil, err
	}
	vendas, err := s.vendasNoPeriodo(ctx, p)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, v := range vendas {
		total = total.Add(v.ComissaoCalculada)
	}
	resp := &dto.ComissoesResponse{Periodo: p.Response(), GroupBy: groupBy, TotalComissaoPeriodo: total}

	if groupBy == "mes" {
		var meses [12]dto.ComissaoMes
		for _, v := range vendas {
			d := v.DataVenda.In(s.loc)
			if d.Year() != ano {
				continue
			}
			m := &meses[d.Month()-1]
			m.TotalVendas = m.TotalVendas.Add(v.Preco)
			m.TotalComissao = m.TotalComissao.Add(v.ComissaoCalculada)
			m.CountVendas++
		}
		porMes := make([]dto.ComissaoMes, 0, 12)
		for i, m := range meses {
			if m.CountVendas == 0 {
				continue
			}
			m.Mes, m.Ano = i+1, ano
			porMes = append(porMes, m)
		}
		resp.Detalhes = porMes
		return resp, nil
	}

	porVenda := make([]dto.ComissaoVenda, 0, len(vendas))
	for _, v := range vendas {
		cv := dto.ComissaoVenda{
			IDVenda:    v.ID.String(),
			DataVenda:  v.DataVenda,
			ValorVenda: v.Preco,
			FatorVenda: v.FatorVenda,
			Comissao:   v.ComissaoCalculada,
		}
		if v.Cliente != nil {
			cv.Cliente = v.Cliente.Nome
		}
		if v.Produto != nil {
			cv.Produto = v.Produto.Nome
		}
		porVenda = append(porVenda, cv)
	}
	resp.Detalhes = porVenda
	return resp, nil
}

func (s *dashboardService) Interacoes(ctx context.Context, q dto.InteracoesQuery) (*dto.InteracoesResponse, error) {
	p, filtro := PeriodoRelativo(q.Periodo, s.now(), s.loc)
	u := p.UTC()
	interacoes, err := s.interacoes.ListPeriodo(ctx, u.Inicio, u.Fim)
	if err != nil {
		return nil, fmt.Errorf("buscar interações do período: %w", err)
	}

	counts := map[uuid.UUID]int{}
	dias := map[string]int{}
	for _, i := range interacoes {
		counts[i.ClienteID]++
		if filtro == PeriodoUltimos30Dias {
			dias[i.Data.In(s.loc).Format(time.DateOnly)]++
		}
	}

	ids := make([]uuid.UUID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	clientes, err := s.clientes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("buscar clientes: %w", err)
	}
	nomes := make(map[uuid.UUID]string, len(clientes))
	for _, c := range clientes {
		nomes[c.ID] = c.Nome
	}

	resumo := make([]dto.InteracoesCliente, 0, len(counts))
	for id, n := range counts {
		nome, ok := nomes[id]
		if !ok {
			nome = clienteDesconhecido
		}
		resumo = append(resumo, dto.InteracoesCliente{ClienteID: id.String(), NomeCliente: nome, Count: n})
	}
	sort.Slice(resumo, func(i, j int) bool {
		if resumo[i].Count != resumo[j].Count {
			return resumo[i].Count > resumo[j].Count
		}
		return resumo[i].NomeCliente < resumo[j].NomeCliente
	})

	freq := make([]dto.FrequenciaDia, 0, len(dias))
	for dia, n := range dias {
		freq = append(freq, dto.FrequenciaDia{Dia: dia, Count: n})
	}
	sort.Slice(freq, func(i, j int) bool { return freq[i].Dia < freq[j].Dia })

	return &dto.InteracoesResponse{
		Periodo:          p.Response(),
		Filtro:           filtro,
		TotalInteracoes:  len(interacoes),
		ResumoPorCliente: resumo,
		FrequenciaDiaria: freq,
	}, nil
}

func (s *dashboardService) Reativar(ctx context.Context) (*dto.ReativarResponse, error) {
	limite := s.now().UTC().AddDate(0, 0, -diasReativacao)
	clientes, err := s.clientes.ListReativar(ctx, limite)
	if err != nil {
		return nil, fmt.Errorf("buscar clientes para reativar: %w", err)
	}
	out := make([]dto.ClienteReativar, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, dto.ClienteReativar{
			ID:               c.ID.String(),
			Nome:             c.Nome,
			Email:            c.Email,
			Telefone:         c.Telefone,
			UltimaInteracao:  c.UltimaInteracao,
			DataUltimaCompra: c.DataUltimaCompra,
		})
	}
	return &dto.ReativarResponse{Limite: limite, Total: len(out), Clientes: out}, nil
}
