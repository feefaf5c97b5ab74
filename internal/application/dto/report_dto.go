package dto

import "github.com/shopspring/decimal"

// ReportBucketDTO agregado de un período (día/semana/mes/trimestre/año).
// NetExpense = OutgoingValue - IncomingValue.
type ReportBucketDTO struct {
	PeriodKey        string          `json:"period_key"`
	IncomingQuantity decimal.Decimal `json:"incoming_quantity"`
	IncomingValue    decimal.Decimal `json:"incoming_value"`
	OutgoingQuantity decimal.Decimal `json:"outgoing_quantity"`
	OutgoingValue    decimal.Decimal `json:"outgoing_value"`
	NetExpense       decimal.Decimal `json:"net_expense"`
}

// TrendBucketDTO agregado semanal de salidas, con el gasto acumulado por
// nombre de ítem para el desglose top-N del cliente.
type TrendBucketDTO struct {
	PeriodKey     string                     `json:"period_key"` // domingo de la semana (YYYY-MM-DD)
	TotalExpense  decimal.Decimal            `json:"total_expense"`
	ExpenseByItem map[string]decimal.Decimal `json:"expense_by_item"`
}
