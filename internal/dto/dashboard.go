package dto

import "financeiro/internal/models"

type DashboardStatsResponse struct {
	MonthExpenses float64                `json:"month_expenses"`
	MonthIncome   float64                `json:"month_income"`
	MonthBalance  float64                `json:"month_balance"`
	TopCategories []models.CategoryTotal `json:"top_categories"`
}
