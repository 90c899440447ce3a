package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Queries ─────────────────────────────────────────────────────────────────

// DashboardQuery is bound from the query string of GET /v1/dashboard.
// Ano defaults to the current year; Mes = 0 means the whole year.
type DashboardQuery struct {
	Ano        int    `form:"ano"`
	Mes        int    `form:"mes"`
	Metric     string `form:"metric"`  // faturamento | evolucao_mensal | produtos_mais_vendidos | desempenho_grupo | metas_progresso | funil
	GroupBy    string `form:"groupBy"` // setor | regiao (desempenho_grupo only)
	VendedorID string `form:"vendedorId"`
}

// ComissoesQuery is bound from GET /v1/dashboard/comissoes.
type ComissoesQuery struct {
	Ano     int    `form:"ano"`
	Mes     int    `form:"mes"`
	GroupBy string `form:"groupBy"` // venda (default) | mes
}

// InteracoesQuery is bound from GET /v1/dashboard/interacoes.
type InteracoesQuery struct {
	Periodo string `form:"periodo"` // mes_atual (default) | ano_atual | ultimos_30_dias
}

// ─── Shared ──────────────────────────────────────────────────────────────────

type PeriodoResponse struct {
	Inicio time.Time `json:"inicio"`
	Fim    time.Time `json:"fim"`
}

type MesValor struct {
	Mes   int             `json:"mes"`
	Valor decimal.Decimal `json:"valor"`
}

type GrupoValor struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ─── Aggregations ────────────────────────────────────────────────────────────

type FaturamentoResponse struct {
	FaturamentoTotal decimal.Decimal `json:"faturamentoTotal"`
	EvolucaoMensal   []MesValor      `json:"evolucaoMensal"`
}

type ProdutoVendido struct {
	Produto      *ProdutoResumo  `json:"produto"`
	TotalVendido decimal.Decimal `json:"totalVendido"`
	Quantidade   int64           `json:"quantidade"`
}

type DesempenhoResponse struct {
	PorSetor  []GrupoValor `json:"desempenhoPorSetor"`
	PorRegiao []GrupoValor `json:"desempenhoPorRegiao"`
}

// MetaProgresso puts a goal next to what was achieved in its month.
// Atingido is the achieved figure matching the goal's Tipo.
type MetaProgresso struct {
	MetaID             string          `json:"metaId"`
	Tipo               string          `json:"tipo"`
	Mes                int             `json:"mes"`
	Ano                int             `json:"ano"`
	MetaValor          decimal.Decimal `json:"metaValor"`
	MetaFator          decimal.Decimal `json:"metaFator"`
	AtingidoValor      decimal.Decimal `json:"atingidoValor"`
	AtingidoFator      decimal.Decimal `json:"atingidoFator"`
	AtingidoVendas     int64           `json:"atingidoVendas"`
	AtingidoInteracoes int64           `json:"atingidoInteracoes"`
	Atingido           decimal.Decimal `json:"atingido"`
	Percentual         decimal.Decimal `json:"percentual"`
}

type MetasProgressoResponse struct {
	VendedorID      string          `json:"vendedorId"`
	MetasVsAtingido []MetaProgresso `json:"metasVsAtingido"`
}

type FunilResponse struct {
	TotalClientes        int64           `json:"totalClientes"`
	ClientesComInteracao int64           `json:"clientesComInteracao"`
	ClientesComVenda     int64           `json:"clientesComVenda"`
	TaxaInteracao        decimal.Decimal `json:"taxaInteracao"`
	TaxaConversao        decimal.Decimal `json:"taxaConversao"`
	TaxaGeral            decimal.Decimal `json:"taxaGeral"`
}

// DashboardResponse is the overview returned when no metric is requested.
type DashboardResponse struct {
	Periodo PeriodoResponse `json:"periodo"`
	FaturamentoResponse
	ProdutosMaisVendidos []ProdutoVendido `json:"produtosMaisVendidos"`
	DesempenhoResponse
	MetasProgressoResponse
	Funil FunilResponse `json:"funil"`
}

// ─── Single-metric responses ─────────────────────────────────────────────────

type FaturamentoMetric struct {
	Periodo PeriodoResponse `json:"periodo"`
	FaturamentoResponse
}

type EvolucaoMetric struct {
	Periodo        PeriodoResponse `json:"periodo"`
	EvolucaoMensal []MesValor      `json:"evolucaoMensal"`
}

type ProdutosMetric struct {
	Periodo              PeriodoResponse  `json:"periodo"`
	ProdutosMaisVendidos []ProdutoVendido `json:"produtosMaisVendidos"`
}

// DesempenhoMetric is returned for metric=desempenho_grupo without groupBy.
type DesempenhoMetric struct {
	Periodo PeriodoResponse `json:"periodo"`
	DesempenhoResponse
}

// GrupoMetric is returned for metric=desempenho_grupo with groupBy set.
type GrupoMetric struct {
	Periodo    PeriodoResponse `json:"periodo"`
	GroupBy    string          `json:"groupBy"`
	Desempenho []GrupoValor    `json:"desempenho"`
}

type MetasMetric struct {
	Periodo PeriodoResponse `json:"periodo"`
	MetasProgressoResponse
}

type FunilMetric struct {
	Periodo PeriodoResponse `json:"periodo"`
	Funil   FunilResponse   `json:"funil"`
}

// ─── Comissões ───────────────────────────────────────────────────────────────

type ComissaoVenda struct {
	IDVenda    string          `json:"idVenda"`
	DataVenda  time.Time       `json:"dataVenda"`
	Cliente    string          `json:"cliente"`
	Produto    string          `json:"produto"`
	ValorVenda decimal.Decimal `json:"valorVenda"`
	FatorVenda decimal.Decimal `json:"fatorVenda"`
	Comissao   decimal.Decimal `json:"comissao"`
}

type ComissaoMes struct {
	Mes           int             `json:"mes"`
	Ano           int             `json:"ano"`
	TotalVendas   decimal.Decimal `json:"totalVendas"`
	TotalComissao decimal.Decimal `json:"totalComissao"`
	CountVendas   int             `json:"countVendas"`
}

// ComissoesResponse carries []ComissaoVenda or []ComissaoMes in Detalhes,
// selected by GroupBy.
type ComissoesResponse struct {
	Periodo              PeriodoResponse `json:"periodo"`
	GroupBy              string          `json:"groupBy"`
	TotalComissaoPeriodo decimal.Decimal `json:"totalComissaoPeriodo"`
	Detalhes             any             `json:"detalhes"`
}

// ─── Interações ──────────────────────────────────────────────────────────────

type InteracoesCliente struct {
	ClienteID   string `json:"clienteId"`
	NomeCliente string `json:"nomeCliente"`
	Count       int    `json:"count"`
}

type FrequenciaDia struct {
	Dia   string `json:"dia"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type InteracoesResponse struct {
	Periodo          PeriodoResponse     `json:"periodo"`
	Filtro           string              `json:"filtro"`
	TotalInteracoes  int                 `json:"totalInteracoes"`
	ResumoPorCliente []InteracoesCliente `json:"resumoPorCliente"`
	FrequenciaDiaria []FrequenciaDia     `json:"frequenciaDiaria"`
}

// ─── Reativação ──────────────────────────────────────────────────────────────

type ClienteReativar struct {
	ID               string     `json:"id"`
	Nome             string     `json:"nome"`
	Email            string     `json:"email"`
	Telefone         *string    `json:"telefone"`
	UltimaInteracao  *time.Time `json:"ultimaInteracao"`
	DataUltimaCompra *time.Time `json:"dataUltimaCompra"`
}

type ReativarResponse struct {
	Limite   time.Time         `json:"limite"` // clients active after this instant are excluded
	Total    int               `json:"total"`
	Clientes []ClienteReativar `json:"clientes"`
}
