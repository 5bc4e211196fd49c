package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestDashboardVisibleToEveryRole(t *testing.T) {
	for _, role := range AllRoles {
		require.True(t, CheckPermission(role, ModuleDashboard, ActionView),
			"role %s should view dashboard", role)
	}
}

func TestCheckPermission(t *testing.T) {
	cases := []struct {
		name   string
		role   Role
		module Module
		action Action
		want   bool
	}{
		{"no role", "", ModuleDashboard, ActionView, false},
		{"unknown role", "practicante", ModuleDashboard, ActionView, false},

		{"admin delete anywhere", RoleAdmin, ModuleMultas, ActionDelete, true},
		{"director edit anywhere", RoleDirector, ModuleImpuestos, ActionEdit, true},
		{"gerente create anywhere", RoleGerente, ModuleUsuarios, ActionCreate, true},

		{"supervisor outside scope", RoleSupervisor, ModuleUsuarios, ActionView, false},
		{"supervisor inside scope", RoleSupervisor, ModuleMultas, ActionDelete, true},

		{"comercial ordenes view", RoleComercial, ModuleOrdenes, ActionView, true},
		{"comercial ordenes edit", RoleComercial, ModuleOrdenes, ActionEdit, false},
		{"comercial vehiculos edit", RoleComercial, ModuleVehiculos, ActionEdit, true},
		{"atencion_cliente ordenes create", RoleAtencionCliente, ModuleOrdenes, ActionCreate, false},
		{"atencion_cliente multas edit", RoleAtencionCliente, ModuleMultas, ActionEdit, true},

		{"conductor ordenes view", RoleConductor, ModuleOrdenes, ActionView, true},
		{"conductor ordenes edit", RoleConductor, ModuleOrdenes, ActionEdit, false},
		{"conductor outside scope", RoleConductor, ModuleSeguros, ActionView, false},

		{"rrhh multas delete", RoleRecursosHumanos, ModuleMultas, ActionDelete, false},
		{"rrhh multas edit", RoleRecursosHumanos, ModuleMultas, ActionEdit, true},
		{"administrativo multas delete", RoleAdministrativo, ModuleMultas, ActionDelete, false},
		{"administrativo seguros delete", RoleAdministrativo, ModuleSeguros, ActionDelete, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CheckPermission(tc.role, tc.module, tc.action))
		})
	}
}

func TestConductorNeverDeletes(t *testing.T) {
	for _, m := range AllModules {
		require.False(t, CheckPermission(RoleConductor, m, ActionDelete),
			"conductor should never delete in %s", m)
	}
}

func TestGetVisibleModules(t *testing.T) {
	require.Equal(t, []Module{ModuleDashboard}, GetVisibleModules(""))
	require.Equal(t, []Module{ModuleDashboard}, GetVisibleModules("desconocido"))
	require.Equal(t, AllModules, GetVisibleModules(RoleAdmin))

	got := GetVisibleModules(RoleContabilidad)
	require.Equal(t, []Module{
		ModuleDashboard, ModuleMultas, ModuleSeguros, ModuleImpuestos, ModuleReportes,
	}, got)
}

func TestRoleName(t *testing.T) {
	require.Equal(t, "Recursos Humanos", RoleName(RoleRecursosHumanos))
	require.Equal(t, "Atención al Cliente", RoleName(RoleAtencionCliente))
	require.Equal(t, "otro", RoleName(Role("otro")))
}
