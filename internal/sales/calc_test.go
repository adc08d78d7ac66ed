package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCalcularValores(t *testing.T) {
	cases := []struct {
		name                       string
		q                          int
		preco, custo, desconto     string
		bruto, final, total, lucro string
	}{
		{"whole values", 5, "100", "60", "50", "500", "450", "300", "150"},
		{"fractional price", 3, "19.99", "7.333", "0.5", "59.97", "59.47", "21.999", "37.471"},
		{"zero cost", 1, "10", "0", "0", "10", "10", "0", "10"},
		{"discount above gross", 2, "5", "1", "15", "10", "-5", "2", "-7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalcularValores(tc.q, dec(tc.preco), dec(tc.custo), dec(tc.desconto))
			assert.True(t, got.ValorBruto.Equal(dec(tc.bruto)), "valor_bruto %s", got.ValorBruto)
			assert.True(t, got.ValorFinal.Equal(dec(tc.final)), "valor_final %s", got.ValorFinal)
			assert.True(t, got.CustoEstimadoTotal.Equal(dec(tc.total)), "custo_estimado_total %s", got.CustoEstimadoTotal)
			assert.True(t, got.LucroEstimado.Equal(dec(tc.lucro)), "lucro_estimado %s", got.LucroEstimado)
		})
	}
}

func TestCalcularValoresDeterministic(t *testing.T) {
	first := CalcularValores(7, dec("19.99"), dec("3.21"), dec("1.07"))
	for i := 0; i < 10; i++ {
		again := CalcularValores(7, dec("19.99"), dec("3.21"), dec("1.07"))
		assert.True(t, first.ValorBruto.Equal(again.ValorBruto))
		assert.True(t, first.ValorFinal.Equal(again.ValorFinal))
		assert.True(t, first.CustoEstimadoTotal.Equal(again.CustoEstimadoTotal))
		assert.True(t, first.LucroEstimado.Equal(again.LucroEstimado))
	}
	assert.Equal(t, "139.93", first.ValorBruto.String())
}
