package report

import (
	"fmt"
	"time"

	"github.com/jhoicas/Lotes-api/internal/domain"
)

// Granularity granularidad del bucket de agregación.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity valida el parámetro de query. Vacío = mes.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter, GranularityYear:
		return Granularity(s), nil
	case "":
		return GranularityMonth, nil
	}
	return "", domain.ErrInvalidInput
}

// PeriodKey deriva la clave de período de una fecha. Las claves son de ancho
// fijo con ceros a la izquierda, así el orden lexicográfico coincide con el
// cronológico y las claves de granularidad fina comparten prefijo con las
// gruesas (2024-01-05 → 2024-01 → 2024).
//
//	day     → 2024-01-05 (fecha ISO)
//	week    → 2023-12-31 (domingo anterior o el mismo día si es domingo)
//	month   → 2024-01
//	quarter → 2024-Q1
//	year    → 2024
func PeriodKey(g Granularity, t time.Time) string {
	switch g {
	case GranularityDay:
		return t.Format("2006-01-02")
	case GranularityWeek:
		sunday := t.AddDate(0, 0, -int(t.Weekday()))
		return sunday.Format("2006-01-02")
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityQuarter:
		q := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", t.Year(), q)
	case GranularityYear:
		return t.Format("2006")
	}
	return t.Format("2006-01")
}
