package service

import (
	"testing"
	"time"

	"erpvendas/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodoAnoMes(t *testing.T) {
	ano, err := PeriodoAnoMes(2024, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ano.Inicio)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 999_000_000, time.UTC), ano.Fim)

	fev, err := PeriodoAnoMes(2024, 2, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC), fev.Fim)

	_, err = PeriodoAnoMes(2024, 13, time.UTC)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
	_, err = PeriodoAnoMes(2024, -1, time.UTC)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestPeriodoAnoMes_FusoLocal(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	p, err := PeriodoAnoMes(2024, 3, brt)
	require.NoError(t, err)
	u := p.UTC()
	assert.Equal(t, time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC), u.Inicio)
	assert.Equal(t, time.Date(2024, 4, 1, 2, 59, 59, 999_000_000, time.UTC), u.Fim)
}

func TestPeriodoRelativo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	p, f := PeriodoRelativo(PeriodoUltimos30Dias, now, time.UTC)
	assert.Equal(t, PeriodoUltimos30Dias, f)
	assert.Equal(t, time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC), p.Inicio)
	assert.Equal(t, now, p.Fim)

	p, f = PeriodoRelativo(PeriodoAnoAtual, now, time.UTC)
	assert.Equal(t, PeriodoAnoAtual, f)
	assert.Equal(t, 1, int(p.Inicio.Month()))
	assert.Equal(t, 12, int(p.Fim.Month()))

	for _, filtro := range []string{"", PeriodoMesAtual, "semana"} {
		p, f = PeriodoRelativo(filtro, now, time.UTC)
		assert.Equal(t, PeriodoMesAtual, f)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), p.Inicio)
		assert.Equal(t, time.Date(2024, 6, 30, 23, 59, 59, 999_000_000, time.UTC), p.Fim)
	}
}
