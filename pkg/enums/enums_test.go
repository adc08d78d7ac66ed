package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"Pix", "Dinheiro", "Débito", "Crédito"} {
		pm, err := ParsePaymentMethod(raw)
		require.NoError(t, err)
		assert.True(t, pm.IsValid())
	}

	_, err := ParsePaymentMethod("Cheque")
	assert.Error(t, err)
	_, err = ParsePaymentMethod("pix")
	assert.Error(t, err)
	assert.False(t, PaymentMethod("Debito").IsValid())
}

func TestPermissionsFor(t *testing.T) {
	assert.ElementsMatch(t, allPermissions, PermissionsFor(RoleAdmin))
	assert.Contains(t, PermissionsFor(RoleVoluntario), PermissionVendasGerenciar)
	assert.NotContains(t, PermissionsFor(RoleVoluntario), PermissionProdutosGerenciar)
	assert.Empty(t, PermissionsFor(Role("visitante")))
	assert.Contains(t, PermissionStrings(RoleCoordenacao), "medicamentos.gerenciar")
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("coordenacao")
	require.NoError(t, err)
	assert.Equal(t, RoleCoordenacao, role)

	_, err = ParseRole("root")
	assert.Error(t, err)
}
