package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
	"erpvendas/internal/model"
	"erpvendas/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comSetor(setor, regiao string) func(*model.Cliente) {
	return func(c *model.Cliente) {
		if setor != "" {
			c.Setor = testutil.Str(setor)
		}
		if regiao != "" {
			c.Regiao = testutil.Str(regiao)
		}
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, testutil.Dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestDashboard_FaturamentoEvolucaoMensal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := testutil.Cliente(t, e.db, "Acme")
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	testutil.Venda(t, e.db, c, p, "1000", "1.0", dia(2024, 1, 10))
	testutil.Venda(t, e.db, c, p, "500", "1.0", dia(2024, 3, 5))
	testutil.Venda(t, e.db, c, p, "999", "1.0", time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC))

	out, err := e.dashboard.Consultar(ctx, dto.DashboardQuery{Ano: 2024, Metric: MetricFaturamento}, "ana")
	require.NoError(t, err)
	f, ok := out.(*dto.FaturamentoMetric)
	require.True(t, ok)
	assertDec(t, "1500", f.FaturamentoTotal)
	require.Len(t, f.EvolucaoMensal, 12)
	assertDec(t, "1000", f.EvolucaoMensal[0].Valor)
	assertDec(t, "0", f.EvolucaoMensal[1].Valor)
	assertDec(t, "500", f.EvolucaoMensal[2].Valor)
	assert.Equal(t, 12, f.EvolucaoMensal[11].Mes)

	out, err = e.dashboard.Consultar(ctx, dto.DashboardQuery{Ano: 2024, Mes: 3, Metric: MetricEvolucaoMensal}, "ana")
	require.NoError(t, err)
	ev := out.(*dto.EvolucaoMetric)
	assertDec(t, "0", ev.EvolucaoMensal[0].Valor)
	assertDec(t, "500", ev.EvolucaoMensal[2].Valor)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ev.Periodo.Inicio)
}

func TestDashboard_AnoPadraoEhOAtual(t *testing.T) {
	e := newEnv(t)
	out, err := e.dashboard.Consultar(context.Background(), dto.DashboardQuery{Metric: MetricFaturamento}, "ana")
	require.NoError(t, err)
	f := out.(*dto.FaturamentoMetric)
	assert.Equal(t, agora.Year(), f.Periodo.Inicio.Year())
	assertDec(t, "0", f.FaturamentoTotal)
}

func TestDashboard_ProdutosMaisVendidos(t *testing.T) {
	e := newEnv(t)
	c := testutil.Cliente(t, e.db, "Acme")
	for i := 1; i <= 6; i++ {
		p := testutil.Produto(t, e.db, fmt.Sprintf("Produto %d", i), fmt.Sprintf("P-%d", i), "1")
		for range i {
			testutil.Venda(t, e.db, c, p, "100", "1.0", dia(2024, 2, i))
		}
	}

	out, err := e.dashboard.Consultar(context.Background(), dto.DashboardQuery{Ano: 2024, Metric: MetricProdutosMaisVendidos}, "ana")
	require.NoError(t, err)
	top := out.(*dto.ProdutosMetric).ProdutosMaisVendidos
	require.Len(t, top, 5)
	assert.Equal(t, "Produto 6", top[0].Produto.Nome)
	assertDec(t, "600", top[0].TotalVendido)
	assert.EqualValues(t, 6, top[0].Quantidade)
	assert.Equal(t, "Produto 2", top[4].Produto.Nome)
}

func TestDashboard_DesempenhoPorGrupo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	ind := testutil.Cliente(t, e.db, "Indústria SA", comSetor("Indústria", "Sul"))
	sem := testutil.Cliente(t, e.db, "Sem Cadastro")
	testutil.Venda(t, e.db, ind, p, "300", "1.0", dia(2024, 4, 1))
	testutil.Venda(t, e.db, sem, p, "100", "1.0", dia(2024, 4, 2))

	out, err := e.dashboard.Consultar(ctx, dto.DashboardQuery{Ano: 2024, Metric: MetricDesempenhoGrupo}, "ana")
	require.NoError(t, err)
	d := out.(*dto.DesempenhoMetric)
	require.Len(t, d.PorSetor, 2)
	assert.Equal(t, "Indústria", d.PorSetor[0].Name)
	assert.Equal(t, "Não informado", d.PorSetor[1].Name)
	require.Len(t, d.PorRegiao, 2)
	assert.Equal(t, "Não informada", d.PorRegiao[1].Name)

	out, err = e.dashboard.Consultar(ctx, dto.DashboardQuery{Ano: 2024, Metric: MetricDesempenhoGrupo, GroupBy: "regiao"}, "ana")
	require.NoError(t, err)
	g := out.(*dto.GrupoMetric)
	assert.Equal(t, "regiao", g.GroupBy)
	assert.Equal(t, "Sul", g.Desempenho[0].Name)
	assertDec(t, "300", g.Desempenho[0].Value)

	_, err = e.dashboard.Consultar(ctx, dto.DashboardQuery{Metric: MetricDesempenhoGrupo, GroupBy: "cidade"}, "ana")
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestDashboard_MetasProgresso(t *testing.T) {
	e := newEnv(t)
	c := testutil.Cliente(t, e.db, "Acme")
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	testutil.Venda(t, e.db, c, p, "600", "1.2", dia(2024, 1, 10))
	testutil.Venda(t, e.db, c, p, "400", "1.0", dia(2024, 1, 20))
	testutil.Venda(t, e.db, c, p, "100", "1.0", dia(2024, 3, 1))
	testutil.Interacao(t, e.db, c, dia(2024, 3, 2))
	testutil.Interacao(t, e.db, c, dia(2024, 3, 3))

	testutil.Meta(t, e.db, "ana", model.MetaFaturamento, "2000", 1, 2024)
	testutil.Meta(t, e.db, "ana", model.MetaVendas, "4", 3, 2024)
	testutil.Meta(t, e.db, "ana", model.MetaInteracoes, "8", 2, 2024)
	testutil.Meta(t, e.db, "bruno", model.MetaFaturamento, "100", 1, 2024)

	out, err := e.dashboard.Consultar(context.Background(), dto.DashboardQuery{Ano: 2024, Metric: MetricMetasProgresso}, "ana")
	require.NoError(t, err)
	m := out.(*dto.MetasMetric)
	assert.Equal(t, "ana", m.VendedorID)
	require.Len(t, m.MetasVsAtingido, 3)

	jan := m.MetasVsAtingido[0]
	assert.Equal(t, 1, jan.Mes)
	assertDec(t, "1000", jan.AtingidoValor)
	assertDec(t, "1.1", jan.AtingidoFator)
	assert.EqualValues(t, 2, jan.AtingidoVendas)
	assertDec(t, "50", jan.Percentual)

	fev := m.MetasVsAtingido[1]
	assertDec(t, "0", fev.Atingido)
	assertDec(t, "0", fev.Percentual)

	mar := m.MetasVsAtingido[2]
	assert.Equal(t, model.MetaVendas, mar.Tipo)
	assertDec(t, "1", mar.Atingido)
	assert.EqualValues(t, 2, mar.AtingidoInteracoes)
	assertDec(t, "25", mar.Percentual)
}

func TestDashboard_Funil(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	out, err := e.dashboard.Consultar(ctx, dto.DashboardQuery{Metric: MetricFunil}, "ana")
	require.NoError(t, err)
	vazio := out.(*dto.FunilMetric).Funil
	assert.Zero(t, vazio.TotalClientes)
	assertDec(t, "0", vazio.TaxaInteracao)
	assertDec(t, "0", vazio.TaxaConversao)
	assertDec(t, "0", vazio.TaxaGeral)

	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	a := testutil.Cliente(t, e.db, "A")
	b := testutil.Cliente(t, e.db, "B")
	testutil.Cliente(t, e.db, "C")
	testutil.Interacao(t, e.db, a, dia(2024, 1, 1))
	testutil.Interacao(t, e.db, a, dia(2024, 1, 2))
	testutil.Interacao(t, e.db, b, dia(2024, 1, 3))
	testutil.Venda(t, e.db, a, p, "10", "1.0", dia(2024, 1, 4))

	out, err = e.dashboard.Consultar(ctx, dto.DashboardQuery{Metric: MetricFunil}, "ana")
	require.NoError(t, err)
	f := out.(*dto.FunilMetric).Funil
	assert.EqualValues(t, 3, f.TotalClientes)
	assert.EqualValues(t, 2, f.ClientesComInteracao)
	assert.EqualValues(t, 1, f.ClientesComVenda)
	assertDec(t, "66.7", f.TaxaInteracao)
	assertDec(t, "50", f.TaxaConversao)
	assertDec(t, "33.3", f.TaxaGeral)
}

func TestDashboard_VisaoGeral(t *testing.T) {
	e := newEnv(t)
	c := testutil.Cliente(t, e.db, "Acme")
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	testutil.Venda(t, e.db, c, p, "100", "1.0", dia(2024, 6, 1))

	out, err := e.dashboard.Consultar(context.Background(), dto.DashboardQuery{}, "ana")
	require.NoError(t, err)
	v, ok := out.(*dto.DashboardResponse)
	require.True(t, ok)
	assertDec(t, "100", v.FaturamentoTotal)
	assert.Len(t, v.ProdutosMaisVendidos, 1)
	assert.NotNil(t, v.MetasVsAtingido)
	assert.EqualValues(t, 1, v.Funil.ClientesComVenda)
}

func TestDashboard_MetricaDesconhecida(t *testing.T) {
	e := newEnv(t)
	_, err := e.dashboard.Consultar(context.Background(), dto.DashboardQuery{Metric: "lucro"}, "ana")
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	_, err = e.dashboard.Consultar(context.Background(), dto.DashboardQuery{Mes: 14}, "ana")
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestDashboard_Comissoes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := testutil.Cliente(t, e.db, "Acme")
	p := testutil.Produto(t, e.db, "Parafuso", "P-1", "10")
	for _, v := range []struct {
		preco, fator string
		data         time.Time
	}{
		{"1000", "1.25", dia(2024, 1, 10)},
		{"1000", "1.15", dia(2024, 1, 20)},
		{"1000", "1.0", dia(2024, 4, 1)},
	} {
		_, err := e.vendas.Registrar(ctx, vendaReq(c, p, v.preco, v.fator, "à vista", v.data.Format(time.RFC3339)))
		require.NoError(t, err)
	}

	r, err := e.dashboard.Comissoes(ctx, dto.ComissoesQuery{Ano: 2024})
	require.NoError(t, err)
	assert.Equal(t, "venda", r.GroupBy)
	assertDec(t, "90", r.TotalComissaoPeriodo)
	porVenda, ok := r.Detalhes.([]dto.ComissaoVenda)
	require.True(t, ok)
	require.Len(t, porVenda, 3)
	assert.Equal(t, "Acme", porVenda[0].Cliente)
	assert.Equal(t, "Parafuso", porVenda[0].Produto)
	assertDec(t, "10", porVenda[0].Comissao)

	r, err = e.dashboard.Comissoes(ctx, dto.ComissoesQuery{Ano: 2024, GroupBy: "mes"})
	require.NoError(t, err)
	porMes, ok := r.Detalhes.([]dto.ComissaoMes)
	require.True(t, ok)
	require.Len(t, porMes, 2)
	assert.Equal(t, 1, porMes[0].Mes)
	assertDec(t, "80", porMes[0].TotalComissao)
	assert.Equal(t, 2, porMes[0].CountVendas)
	assert.Equal(t, 4, porMes[1].Mes)

	r, err = e.dashboard.Comissoes(ctx, dto.ComissoesQuery{Ano: 2024, Mes: 4})
	require.NoError(t, err)
	assertDec(t, "10", r.TotalComissaoPeriodo)

	_, err = e.dashboard.Comissoes(ctx, dto.ComissoesQuery{GroupBy: "produto"})
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestDashboard_Interacoes(t *testing.T) {
	e := newEnv(t)
	a := testutil.Cliente(t, e.db, "Alfa")
	b := testutil.Cliente(t, e.db, "Beta")
	testutil.Interacao(t, e.db, a, dia(2024, 6, 10))
	testutil.Interacao(t, e.db, a, dia(2024, 6, 10))
	testutil.Interacao(t, e.db, b, dia(2024, 6, 1))
	testutil.Interacao(t, e.db, b, dia(2024, 5, 20))
	testutil.Interacao(t, e.db, b, dia(2024, 1, 5))

	r, err := e.dashboard.Interacoes(context.Background(), dto.InteracoesQuery{Periodo: PeriodoUltimos30Dias})
	require.NoError(t, err)
	assert.Equal(t, PeriodoUltimos30Dias, r.Filtro)
	assert.Equal(t, 4, r.TotalInteracoes)
	require.Len(t, r.ResumoPorCliente, 2)
	assert.Equal(t, "Alfa", r.ResumoPorCliente[0].NomeCliente)
	assert.Equal(t, 2, r.ResumoPorCliente[0].Count)
	assert.Equal(t, []dto.FrequenciaDia{
		{Dia: "2024-05-20", Count: 1},
		{Dia: "2024-06-01", Count: 1},
		{Dia: "2024-06-10", Count: 2},
	}, r.FrequenciaDiaria)

	r, err = e.dashboard.Interacoes(context.Background(), dto.InteracoesQuery{Periodo: "qualquer"})
	require.NoError(t, err)
	assert.Equal(t, PeriodoMesAtual, r.Filtro)
	assert.Equal(t, 3, r.TotalInteracoes)
	assert.Empty(t, r.FrequenciaDiaria)

	r, err = e.dashboard.Interacoes(context.Background(), dto.InteracoesQuery{Periodo: PeriodoAnoAtual})
	require.NoError(t, err)
	assert.Equal(t, 5, r.TotalInteracoes)
}

func TestDashboard_Reativar(t *testing.T) {
	e := newEnv(t)
	diasAtras := func(n int) *time.Time {
		d := agora.AddDate(0, 0, -n)
		return &d
	}
	set := func(c *model.Cliente, interacao, compra *time.Time) {
		require.NoError(t, e.db.Model(&model.Cliente{}).Where("id = ?", c.ID).
			UpdateColumns(map[string]interface{}{"ultima_interacao": interacao, "data_ultima_compra": compra}).Error)
	}

	testutil.Cliente(t, e.db, "Nunca")
	contatoAntigo := testutil.Cliente(t, e.db, "Contato Antigo")
	set(contatoAntigo, diasAtras(40), nil)
	contatoRecente := testutil.Cliente(t, e.db, "Contato Recente")
	set(contatoRecente, diasAtras(5), nil)
	compraRecente := testutil.Cliente(t, e.db, "Compra Recente")
	set(compraRecente, diasAtras(60), diasAtras(10))
	tudoAntigo := testutil.Cliente(t, e.db, "Tudo Antigo")
	set(tudoAntigo, diasAtras(45), diasAtras(50))
	soCompraAntiga := testutil.Cliente(t, e.db, "Só Compra Antiga")
	set(soCompraAntiga, nil, diasAtras(90))

	r, err := e.dashboard.Reativar(context.Background())
	require.NoError(t, err)
	assert.True(t, r.Limite.Equal(agora.AddDate(0, 0, -30)))

	nomes := make([]string, 0, len(r.Clientes))
	for _, c := range r.Clientes {
		nomes = append(nomes, c.Nome)
	}
	assert.Equal(t, []string{"Tudo Antigo", "Contato Antigo", "Só Compra Antiga", "Nunca"}, nomes)
	assert.Equal(t, 4, r.Total)
	assert.Nil(t, r.Clientes[3].UltimaInteracao)
}
