package enums

// Permission is a route-level permission tag carried in access tokens.
type Permission string

const (
	PermissionVendasLer             Permission = "vendas.ler"
	PermissionVendasGerenciar       Permission = "vendas.gerenciar"
	PermissionProdutosLer           Permission = "produtos.ler"
	PermissionProdutosGerenciar     Permission = "produtos.gerenciar"
	PermissionMedicamentosLer       Permission = "medicamentos.ler"
	PermissionMedicamentosGerenciar Permission = "medicamentos.gerenciar"
)

var allPermissions = []Permission{
	PermissionVendasLer,
	PermissionVendasGerenciar,
	PermissionProdutosLer,
	PermissionProdutosGerenciar,
	PermissionMedicamentosLer,
	PermissionMedicamentosGerenciar,
}

var permissionsByRole = map[Role][]Permission{
	RoleAdmin:       allPermissions,
	RoleCoordenacao: allPermissions,
	RoleVoluntario: {
		PermissionVendasLer,
		PermissionVendasGerenciar,
		PermissionProdutosLer,
		PermissionMedicamentosLer,
	},
}

// String implements fmt.Stringer.
func (p Permission) String() string {
	return string(p)
}

// PermissionsFor returns the permission tags granted to role. Unknown roles get none.
func PermissionsFor(role Role) []Permission {
	return append([]Permission(nil), permissionsByRole[role]...)
}

// PermissionStrings flattens role permissions for token claims.
func PermissionStrings(role Role) []string {
	perms := permissionsByRole[role]
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
