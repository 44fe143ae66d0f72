package service

import (
	"context"
	"time"

	"financeiro/internal/dto"
	"financeiro/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingStore interface {
	Insert(ctx context.Context, calc *models.PricingCalculation) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PricingCalculation, error)
}

const calculationHistoryLimit = 20

type PricingService struct {
	store  PricingStore
	logger *zap.Logger
}

func NewPricingService(store PricingStore, logger *zap.Logger) *PricingService {
	return &PricingService{
		store:  store,
		logger: logger,
	}
}

// Calculate derives the eight pricing metrics from the six inputs. Pure, no
// store access. Division-by-zero guards return 0: a zero cost base means
// zero markup and margin, never an error.
func (s *PricingService) Calculate(req *dto.PricingRequest) (*dto.PricingResult, error) {
	in, err := coerceInputs(req)
	if err != nil {
		return nil, err
	}
	return calculate(in), nil
}

func calculate(in *dto.PricingInputs) *dto.PricingResult {
	totalCost := in.ProductCost * (1 + in.AdditionalCostsPct/100)
	salePrice := totalCost * in.Multiplier
	finalPrice := salePrice * (1 - in.DiscountPct/100)
	charges := finalPrice * (in.TaxPct + in.CommissionPct) / 100
	unitProfit := finalPrice - charges - totalCost

	var grossMarkup, netMarkup, grossMarginPct, netMarginPct float64
	if totalCost > 0 {
		grossMarkup = salePrice / totalCost
		netMarkup = unitProfit / totalCost
	}
	if salePrice > 0 {
		grossMarginPct = (salePrice - totalCost) / salePrice * 100
	}
	if finalPrice > 0 {
		netMarginPct = (finalPrice - totalCost - charges) / finalPrice * 100
	}

	// Margin percentages round to one decimal, everything else to two.
	return &dto.PricingResult{
		TotalCost:      round2(totalCost),
		SalePrice:      round2(salePrice),
		FinalPrice:     round2(finalPrice),
		UnitProfit:     round2(unitProfit),
		GrossMarkup:    round2(grossMarkup),
		NetMarkup:      round2(netMarkup),
		GrossMarginPct: round1(grossMarginPct),
		NetMarginPct:   round1(netMarginPct),
	}
}

// SaveCalculation runs the calculator and persists inputs and results as a
// history entry for the user.
func (s *PricingService) SaveCalculation(ctx context.Context, userID uuid.UUID, req *dto.SavePricingRequest) (*dto.PricingCalculationResponse, error) {
	if req.ProductName == "" {
		return nil, validationErr("product_name", "required")
	}

	in, err := coerceInputs(&req.PricingRequest)
	if err != nil {
		return nil, err
	}
	result := calculate(in)

	calc := &models.PricingCalculation{
		ID:                 uuid.New(),
		ProductName:        req.ProductName,
		ProductCost:        in.ProductCost,
		AdditionalCostsPct: in.AdditionalCostsPct,
		Multiplier:         in.Multiplier,
		TaxPct:             in.TaxPct,
		CommissionPct:      in.CommissionPct,
		DiscountPct:        in.DiscountPct,
		TotalCost:          result.TotalCost,
		SalePrice:          result.SalePrice,
		FinalPrice:         result.FinalPrice,
		UnitProfit:         result.UnitProfit,
		GrossMarkup:        result.GrossMarkup,
		NetMarkup:          result.NetMarkup,
		GrossMarginPct:     result.GrossMarginPct,
		NetMarginPct:       result.NetMarginPct,
		UserID:             userID,
		CreatedAt:          time.Now(),
	}

	if err := s.store.Insert(ctx, calc); err != nil {
		s.logger.Error("Failed to save pricing calculation", zap.Error(err))
		return nil, err
	}

	return calculationToResponse(calc), nil
}

func (s *PricingService) ListCalculations(ctx context.Context, userID uuid.UUID) ([]dto.PricingCalculationResponse, error) {
	calcs, err := s.store.ListByUser(ctx, userID, calculationHistoryLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PricingCalculationResponse, 0, len(calcs))
	for i := range calcs {
		responses = append(responses, *calculationToResponse(&calcs[i]))
	}

	return responses, nil
}

func coerceInputs(req *dto.PricingRequest) (*dto.PricingInputs, error) {
	in := &dto.PricingInputs{}
	var err error

	if in.ProductCost, err = coerceFloat("product_cost", req.ProductCost, 0); err != nil {
		return nil, err
	}
	if in.AdditionalCostsPct, err = coerceFloat("additional_costs_pct", req.AdditionalCostsPct, 0); err != nil {
		return nil, err
	}
	if in.Multiplier, err = coerceFloat("multiplier", req.Multiplier, 1); err != nil {
		return nil, err
	}
	if in.TaxPct, err = coerceFloat("tax_pct", req.TaxPct, 0); err != nil {
		return nil, err
	}
	if in.CommissionPct, err = coerceFloat("commission_pct", req.CommissionPct, 0); err != nil {
		return nil, err
	}
	if in.DiscountPct, err = coerceFloat("discount_pct", req.DiscountPct, 0); err != nil {
		return nil, err
	}

	return in, nil
}

func calculationToResponse(calc *models.PricingCalculation) *dto.PricingCalculationResponse {
	return &dto.PricingCalculationResponse{
		ID:          calc.ID.String(),
		ProductName: calc.ProductName,
		Inputs: dto.PricingInputs{
			ProductCost:        calc.ProductCost,
			AdditionalCostsPct: calc.AdditionalCostsPct,
			Multiplier:         calc.Multiplier,
			TaxPct:             calc.TaxPct,
			CommissionPct:      calc.CommissionPct,
			DiscountPct:        calc.DiscountPct,
		},
		Results: dto.PricingResult{
			TotalCost:      calc.TotalCost,
			SalePrice:      calc.SalePrice,
			FinalPrice:     calc.FinalPrice,
			UnitProfit:     calc.UnitProfit,
			GrossMarkup:    calc.GrossMarkup,
			NetMarkup:      calc.NetMarkup,
			GrossMarginPct: calc.GrossMarginPct,
			NetMarginPct:   calc.NetMarginPct,
		},
		CreatedAt: calc.CreatedAt.Format(time.RFC3339),
	}
}
