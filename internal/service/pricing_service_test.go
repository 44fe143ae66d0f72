package service

import (
	"context"
	"errors"
	"testing"

	"financeiro/internal/dto"
	"financeiro/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newPricingService() *PricingService {
	return NewPricingService(nil, zap.NewNop())
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		req  dto.PricingRequest
		want dto.PricingResult
	}{
		{
			name: "baseline",
			req: dto.PricingRequest{
				ProductCost:   float64(100),
				Multiplier:    float64(2),
				TaxPct:        float64(10),
				CommissionPct: float64(5),
			},
			want: dto.PricingResult{
				TotalCost:      100.00,
				SalePrice:      200.00,
				FinalPrice:     200.00,
				UnitProfit:     70.00,
				GrossMarkup:    2.00,
				NetMarkup:      0.70,
				GrossMarginPct: 50.0,
				NetMarginPct:   35.0,
			},
		},
		{
			name: "additional costs and discount",
			req: dto.PricingRequest{
				ProductCost:        float64(50),
				AdditionalCostsPct: float64(10),
				Multiplier:         float64(3),
				DiscountPct:        float64(10),
			},
			want: dto.PricingResult{
				TotalCost:      55.00,
				SalePrice:      165.00,
				FinalPrice:     148.50,
				UnitProfit:     93.50,
				GrossMarkup:    3.00,
				NetMarkup:      1.70,
				GrossMarginPct: 66.7,
				NetMarginPct:   63.0,
			},
		},
		{
			name: "zero cost yields zero markups and margins",
			req: dto.PricingRequest{
				Multiplier: float64(2),
			},
			want: dto.PricingResult{},
		},
		{
			name: "numeric strings accepted",
			req: dto.PricingRequest{
				ProductCost: "100",
				Multiplier:  "2",
			},
			want: dto.PricingResult{
				TotalCost:      100.00,
				SalePrice:      200.00,
				FinalPrice:     200.00,
				UnitProfit:     100.00,
				GrossMarkup:    2.00,
				NetMarkup:      1.00,
				GrossMarginPct: 50.0,
				NetMarginPct:   50.0,
			},
		},
		{
			name: "multiplier defaults to one",
			req: dto.PricingRequest{
				ProductCost: float64(80),
			},
			want: dto.PricingResult{
				TotalCost:   80.00,
				SalePrice:   80.00,
				FinalPrice:  80.00,
				UnitProfit:  0.00,
				GrossMarkup: 1.00,
				NetMarkup:   0.00,
				// Margins are zero because price equals cost.
				GrossMarginPct: 0.0,
				NetMarginPct:   0.0,
			},
		},
	}

	svc := newPricingService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Calculate(&tt.req)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestCalculateGrossMarkupProperty(t *testing.T) {
	svc := newPricingService()

	costs := []float64{1, 12.5, 99.99, 400}
	multipliers := []float64{1, 1.5, 2.75, 10}

	for _, cost := range costs {
		for _, mult := range multipliers {
			got, err := svc.Calculate(&dto.PricingRequest{
				ProductCost: cost,
				Multiplier:  mult,
			})
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			want := round2(mult)
			if got.GrossMarkup != want {
				t.Errorf("cost=%v mult=%v: GrossMarkup = %v, want %v", cost, mult, got.GrossMarkup, want)
			}
		}
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.PricingRequest
		wantField string
	}{
		{"non-numeric product cost", dto.PricingRequest{ProductCost: "abc"}, "product_cost"},
		{"non-numeric multiplier", dto.PricingRequest{ProductCost: float64(10), Multiplier: "x2"}, "multiplier"},
		{"boolean tax", dto.PricingRequest{TaxPct: true}, "tax_pct"},
	}

	svc := newPricingService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Calculate(&tt.req)
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("Calculate() error = %v, want InvalidInputError", err)
			}
			if inputErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", inputErr.Field, tt.wantField)
			}
		})
	}
}

func TestSaveCalculationRequiresProductName(t *testing.T) {
	svc := newPricingService()

	_, err := svc.SaveCalculation(context.Background(), uuid.Nil, &dto.SavePricingRequest{})
	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("SaveCalculation() error = %v, want ValidationError", err)
	}
	if validationError.Field != "product_name" {
		t.Errorf("Field = %q, want %q", validationError.Field, "product_name")
	}
}

type fakePricingStore struct {
	inserted []*models.PricingCalculation
}

func (f *fakePricingStore) Insert(ctx context.Context, calc *models.PricingCalculation) error {
	f.inserted = append(f.inserted, calc)
	return nil
}

func (f *fakePricingStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PricingCalculation, error) {
	return nil, nil
}

func TestSaveCalculationPersistsDerivedResults(t *testing.T) {
	store := &fakePricingStore{}
	svc := NewPricingService(store, zap.NewNop())
	owner := uuid.New()

	resp, err := svc.SaveCalculation(context.Background(), owner, &dto.SavePricingRequest{
		ProductName: "Widget",
		PricingRequest: dto.PricingRequest{
			ProductCost:   "100",
			Multiplier:    float64(2),
			TaxPct:        float64(10),
			CommissionPct: float64(5),
		},
	})
	if err != nil {
		t.Fatalf("SaveCalculation() error = %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(store.inserted))
	}
	saved := store.inserted[0]
	if saved.UserID != owner {
		t.Errorf("UserID = %v, want %v", saved.UserID, owner)
	}
	// Coerced inputs and derived metrics land in the same row.
	if saved.ProductCost != 100 {
		t.Errorf("ProductCost = %v, want 100", saved.ProductCost)
	}
	if saved.UnitProfit != 70.00 {
		t.Errorf("UnitProfit = %v, want 70.00", saved.UnitProfit)
	}
	if resp.Results.NetMarginPct != 35.0 {
		t.Errorf("NetMarginPct = %v, want 35.0", resp.Results.NetMarginPct)
	}
}
