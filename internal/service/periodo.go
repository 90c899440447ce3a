package service

import (
	"time"

	"erpvendas/internal/apierror"
	"erpvendas/internal/dto"
)

// Periodo is an inclusive [Inicio, Fim] range; Fim is the last millisecond
// of the range.
type Periodo struct {
	Inicio time.Time
	Fim    time.Time
}

// Filtros accepted by the interaction summary.
const (
	PeriodoMesAtual      = "mes_atual"
	PeriodoAnoAtual      = "ano_atual"
	PeriodoUltimos30Dias = "ultimos_30_dias"
)

const diasReativacao = 30

// PeriodoAnoMes returns the whole calendar year when mes is 0, or the given
// month otherwise, in loc.
func PeriodoAnoMes(ano, mes int, loc *time.Location) (Periodo, error) {
	if mes < 0 || mes > 12 {
		return Periodo{}, apierror.Validation("Mês deve estar entre 1 e 12")
	}
	if mes == 0 {
		inicio := time.Date(ano, time.January, 1, 0, 0, 0, 0, loc)
		return Periodo{Inicio: inicio, Fim: fimDe(inicio.AddDate(1, 0, 0))}, nil
	}
	inicio := time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, loc)
	return Periodo{Inicio: inicio, Fim: fimDe(inicio.AddDate(0, 1, 0))}, nil
}

// PeriodoRelativo resolves mes_atual, ano_atual and ultimos_30_dias against
// now. Unknown filters fall back to mes_atual; the resolved filter is
// returned with the range.
func PeriodoRelativo(filtro string, now time.Time, loc *time.Location) (Periodo, string) {
	now = now.In(loc)
	switch filtro {
	case PeriodoAnoAtual:
		p, _ := PeriodoAnoMes(now.Year(), 0, loc)
		return p, filtro
	case PeriodoUltimos30Dias:
		return Periodo{Inicio: now.AddDate(0, 0, -30), Fim: now}, filtro
	default:
		p, _ := PeriodoAnoMes(now.Year(), int(now.Month()), loc)
		return p, PeriodoMesAtual
	}
}

func fimDe(proximoInicio time.Time) time.Time {
	return proximoInicio.Add(-time.Millisecond)
}

// UTC returns the range in UTC, the form used in queries.
func (p Periodo) UTC() Periodo {
	return Periodo{Inicio: p.Inicio.UTC(), Fim: p.Fim.UTC()}
}

func (p Periodo) Response() dto.PeriodoResponse {
	return dto.PeriodoResponse{Inicio: p.Inicio, Fim: p.Fim}
}
