package dto

// PricingRequest holds the six calculator inputs. Fields are untyped so both
// JSON numbers and numeric strings are accepted; missing fields fall back to
// their defaults (0, multiplier 1). Coercion happens in the service, which
// can then name the offending field.
type PricingRequest struct {
	ProductCost        any `json:"product_cost"`
	AdditionalCostsPct any `json:"additional_costs_pct"`
	Multiplier         any `json:"multiplier"`
	TaxPct             any `json:"tax_pct"`
	CommissionPct      any `json:"commission_pct"`
	DiscountPct        any `json:"discount_pct"`
}

type PricingResult struct {
	TotalCost      float64 `json:"total_cost"`
	SalePrice      float64 `json:"sale_price"`
	FinalPrice     float64 `json:"final_price"`
	UnitProfit     float64 `json:"unit_profit"`
	GrossMarkup    float64 `json:"gross_markup"`
	NetMarkup      float64 `json:"net_markup"`
	GrossMarginPct float64 `json:"gross_margin_pct"`
	NetMarginPct   float64 `json:"net_margin_pct"`
}

type SavePricingRequest struct {
	ProductName string `json:"product_name"`
	PricingRequest
}

type PricingCalculationResponse struct {
	ID          string        `json:"id"`
	ProductName string        `json:"product_name"`
	Inputs      PricingInputs `json:"inputs"`
	Results     PricingResult `json:"results"`
	CreatedAt   string        `json:"created_at"`
}

type PricingInputs struct {
	ProductCost        float64 `json:"product_cost"`
	AdditionalCostsPct float64 `json:"additional_costs_pct"`
	Multiplier         float64 `json:"multiplier"`
	TaxPct             float64 `json:"tax_pct"`
	CommissionPct      float64 `json:"commission_pct"`
	DiscountPct        float64 `json:"discount_pct"`
}
