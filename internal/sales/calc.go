package sales

import "github.com/shopspring/decimal"

// Valores holds the monetary fields derived for a sale.
type Valores struct {
	ValorBruto         decimal.Decimal
	ValorFinal         decimal.Decimal
	CustoEstimadoTotal decimal.Decimal
	LucroEstimado      decimal.Decimal
}

// CalcularValores derives the sale totals from quantity, the product's unit
// price and unit cost, and the discount. Results are exact and unrounded.
func CalcularValores(quantidade int, precoUnitario, custoUnitario, desconto decimal.Decimal) Valores {
	q := decimal.NewFromInt(int64(quantidade))
	bruto := q.Mul(precoUnitario)
	final := bruto.Sub(desconto)
	custo := q.Mul(custoUnitario)
	return Valores{
		ValorBruto:         bruto,
		ValorFinal:         final,
		CustoEstimadoTotal: custo,
		LucroEstimado:      final.Sub(custo),
	}
}
