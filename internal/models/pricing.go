package models

import (
	"time"

	"github.com/google/uuid"
)

// PricingCalculation is a persisted snapshot of one pricing run: the six
// inputs plus the eight derived metrics, kept per user as history.
type PricingCalculation struct {
	ID                 uuid.UUID `db:"id"`
	ProductName        string    `db:"product_name"`
	ProductCost        float64   `db:"product_cost"`
	AdditionalCostsPct float64   `db:"additional_costs_pct"`
	Multiplier         float64   `db:"multiplier"`
	TaxPct             float64   `db:"tax_pct"`
	CommissionPct      float64   `db:"commission_pct"`
	DiscountPct        float64   `db:"discount_pct"`
	TotalCost          float64   `db:"total_cost"`
	SalePrice          float64   `db:"sale_price"`
	FinalPrice         float64   `db:"final_price"`
	UnitProfit         float64   `db:"unit_profit"`
	GrossMarkup        float64   `db:"gross_markup"`
	NetMarkup          float64   `db:"net_markup"`
	GrossMarginPct     float64   `db:"gross_margin_pct"`
	NetMarginPct       float64   `db:"net_margin_pct"`
	UserID             uuid.UUID `db:"user_id"`
	CreatedAt          time.Time `db:"created_at"`
}
