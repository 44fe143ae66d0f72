package repository

import (
	"context"

	"financeiro/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var pricingColumns = []string{
	"id", "product_name", "product_cost", "additional_costs_pct", "multiplier",
	"tax_pct", "commission_pct", "discount_pct", "total_cost", "sale_price",
	"final_price", "unit_profit", "gross_markup", "net_markup",
	"gross_margin_pct", "net_margin_pct", "user_id", "created_at",
}

type PricingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPricingRepository(db *pgxpool.Pool, logger *zap.Logger) *PricingRepository {
	return &PricingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PricingRepository) Insert(ctx context.Context, calc *models.PricingCalculation) error {
	query := squirrel.Insert("pricing_calculations").
		Columns(pricingColumns...).
		Values(
			calc.ID, calc.ProductName, calc.ProductCost, calc.AdditionalCostsPct, calc.Multiplier,
			calc.TaxPct, calc.CommissionPct, calc.DiscountPct, calc.TotalCost, calc.SalePrice,
			calc.FinalPrice, calc.UnitProfit, calc.GrossMarkup, calc.NetMarkup,
			calc.GrossMarginPct, calc.NetMarginPct, calc.UserID, calc.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PricingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PricingCalculation, error) {
	query := squirrel.Select(pricingColumns...).
		From("pricing_calculations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []models.PricingCalculation
	for rows.Next() {
		var c models.PricingCalculation
		if err := rows.Scan(
			&c.ID, &c.ProductName, &c.ProductCost, &c.AdditionalCostsPct, &c.Multiplier,
			&c.TaxPct, &c.CommissionPct, &c.DiscountPct, &c.TotalCost, &c.SalePrice,
			&c.FinalPrice, &c.UnitProfit, &c.GrossMarkup, &c.NetMarkup,
			&c.GrossMarginPct, &c.NetMarginPct, &c.UserID, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		calcs = append(calcs, c)
	}

	return calcs, rows.Err()
}
