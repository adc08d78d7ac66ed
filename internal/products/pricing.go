package product

import (
	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CostFromRecipe returns the unit cost a recipe yields. ok is false when the
// recipe has no positive yield and the cost cannot be derived.
func CostFromRecipe(recipe models.Recipe) (decimal.Decimal, bool) {
	if !recipe.Rendimento.IsPositive() {
		return decimal.Zero, false
	}
	return round2(recipe.CustoTotal.Div(recipe.Rendimento)), true
}

// Margins returns margem_bruta and margem_percentual for the given price and
// cost, both rounded to two places. The percentage is zero when the price is
// not positive.
func Margins(preco, custo decimal.Decimal) (bruta, percentual decimal.Decimal) {
	bruta = round2(preco.Sub(custo))
	if !preco.IsPositive() {
		return bruta, decimal.Zero
	}
	return bruta, round2(bruta.Div(preco).Mul(hundred))
}
