package repository

import (
	"strings"
	"testing"
	"time"

	"financeiro/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

func whereSQL(t *testing.T, ownerID uuid.UUID, f TransactionFilter) (string, []any) {
	t.Helper()
	sql, args, err := squirrel.Select("id").
		From("transactions").
		Where(listWhere(ownerID, f)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}
	return sql, args
}

func TestListWhereAlwaysScopesOwnerAndKind(t *testing.T) {
	owner := uuid.New()
	sql, args := whereSQL(t, owner, TransactionFilter{Kind: models.KindExpense})

	if !strings.Contains(sql, "user_id = $1") {
		t.Errorf("missing owner predicate in %q", sql)
	}
	if !strings.Contains(sql, "kind = $2") {
		t.Errorf("missing kind predicate in %q", sql)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want owner and kind only", args)
	}
	if args[0] != owner {
		t.Errorf("args[0] = %v, want %v", args[0], owner)
	}
}

func TestListWhereSearchMatchesDescriptionOrSupplier(t *testing.T) {
	sql, args := whereSQL(t, uuid.New(), TransactionFilter{
		Kind:   models.KindExpense,
		Search: "realty",
	})

	if !strings.Contains(sql, "(description ILIKE $3 OR supplier ILIKE $4)") {
		t.Errorf("search must be a case-insensitive disjunction, got %q", sql)
	}
	for _, arg := range args[2:] {
		if arg != "%realty%" {
			t.Errorf("search arg = %v, want %%realty%%", arg)
		}
	}
}

func TestListWhereOptionalPredicates(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	sql, args := whereSQL(t, uuid.New(), TransactionFilter{
		Kind:     models.KindIncome,
		Category: "sales",
		Status:   "paid",
		DateFrom: &from,
		DateTo:   &to,
	})

	for _, fragment := range []string{
		"category = $3",
		"status = $4",
		"occurrence_date >= $5",
		"occurrence_date <= $6",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("missing %q in %q", fragment, sql)
		}
	}
	if len(args) != 6 {
		t.Errorf("args = %d, want 6", len(args))
	}
}
