// internal/permissions/permissions.go
package permissions

import (
	"fmt"
)

type Role string
type Module string
type Action string

const (
	RoleAdmin           Role = "admin"
	RoleDirector        Role = "director"
	RoleGerente         Role = "gerente"
	RoleSupervisor      Role = "supervisor"
	RoleContabilidad    Role = "contabilidad"
	RoleMantenimiento   Role = "mantenimiento"
	RoleComercial       Role = "comercial"
	RoleAtencionCliente Role = "atencion_cliente"
	RoleConductor       Role = "conductor"
	RoleRecursosHumanos Role = "recursos_humanos"
	RoleAdministrativo  Role = "administrativo"

	ModuleDashboard   Module = "dashboard"
	ModuleVehiculos   Module = "vehiculos"
	ModuleConductores Module = "conductores"
	ModuleOrdenes     Module = "ordenes"
	ModuleMultas      Module = "multas"
	ModuleSeguros     Module = "seguros"
	ModuleImpuestos   Module = "impuestos"
	ModuleTalleres    Module = "talleres"
	ModuleUsuarios    Module = "usuarios"
	ModuleReportes    Module = "reportes"

	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// AllRoles lists every role the system recognizes.
var AllRoles = []Role{
	RoleAdmin, RoleDirector, RoleGerente, RoleSupervisor, RoleContabilidad,
	RoleMantenimiento, RoleComercial, RoleAtencionCliente, RoleConductor,
	RoleRecursosHumanos, RoleAdministrativo,
}

// AllModules lists every functional module permissions are granted against.
var AllModules = []Module{
	ModuleDashboard, ModuleVehiculos, ModuleConductores, ModuleOrdenes,
	ModuleMultas, ModuleSeguros, ModuleImpuestos, ModuleTalleres,
	ModuleUsuarios, ModuleReportes,
}

// override narrows what a role may do inside an allowed module. A nil Allow
// set with Deny entries blocks just those actions; a non-nil Allow set
// permits only those actions.
type override struct {
	Allow []Action
	Deny  []Action
}

// grant is the declarative permission entry for one role.
type grant struct {
	FullAccess bool
	Modules    []Module
	// ViewOnly caps every module at read access regardless of overrides.
	ViewOnly  bool
	Overrides map[Module]override
}

var roleGrants = map[Role]grant{
	RoleAdmin:    {FullAccess: true},
	RoleDirector: {FullAccess: true},
	RoleGerente:  {FullAccess: true},

	RoleSupervisor: {
		Modules: []Module{
			ModuleDashboard, ModuleVehiculos, ModuleConductores, ModuleOrdenes,
			ModuleMultas, ModuleTalleres, ModuleReportes,
		},
	},
	RoleContabilidad: {
		Modules: []Module{
			ModuleDashboard, ModuleMultas, ModuleSeguros, ModuleImpuestos,
			ModuleReportes,
		},
	},
	RoleMantenimiento: {
		Modules: []Module{ModuleDashboard, ModuleVehiculos, ModuleTalleres},
	},
	RoleComercial: {
		Modules: []Module{
			ModuleDashboard, ModuleOrdenes, ModuleVehiculos, ModuleConductores,
		},
		Overrides: map[Module]override{
			ModuleOrdenes: {Allow: []Action{ActionView}},
		},
	},
	RoleAtencionCliente: {
		Modules: []Module{ModuleDashboard, ModuleOrdenes, ModuleMultas},
		Overrides: map[Module]override{
			ModuleOrdenes: {Allow: []Action{ActionView}},
		},
	},
	RoleConductor: {
		Modules:  []Module{ModuleDashboard, ModuleOrdenes, ModuleMultas, ModuleVehiculos},
		ViewOnly: true,
	},
	RoleRecursosHumanos: {
		Modules: []Module{
			ModuleDashboard, ModuleConductores, ModuleMultas, ModuleUsuarios,
		},
		Overrides: map[Module]override{
			ModuleMultas: {Deny: []Action{ActionDelete}},
		},
	},
	RoleAdministrativo: {
		Modules: []Module{
			ModuleDashboard, ModuleVehiculos, ModuleConductores, ModuleOrdenes,
			ModuleMultas, ModuleSeguros, ModuleImpuestos,
		},
		Overrides: map[Module]override{
			ModuleMultas: {Deny: []Action{ActionDelete}},
		},
	},
}

var roleNames = map[Role]string{
	RoleAdmin:           "Administrador",
	RoleDirector:        "Director",
	RoleGerente:         "Gerente",
	RoleSupervisor:      "Supervisor",
	RoleContabilidad:    "Contabilidad",
	RoleMantenimiento:   "Mantenimiento",
	RoleComercial:       "Comercial",
	RoleAtencionCliente: "Atención al Cliente",
	RoleConductor:       "Conductor",
	RoleRecursosHumanos: "Recursos Humanos",
	RoleAdministrativo:  "Administrativo",
}

// Validate checks the grant table for completeness: every role has an entry,
// every module a grant or override references exists. Run once at startup.
func Validate() error {
	known := make(map[Module]bool, len(AllModules))
	for _, m := range AllModules {
		known[m] = true
	}

	for _, role := range AllRoles {
		g, ok := roleGrants[role]
		if !ok {
			return fmt.Errorf("permissions: role %q has no grant entry", role)
		}
		if _, ok := roleNames[role]; !ok {
			return fmt.Errorf("permissions: role %q has no display name", role)
		}
		allowed := make(map[Module]bool, len(g.Modules))
		for _, m := range g.Modules {
			if !known[m] {
				return fmt.Errorf("permissions: role %q grants unknown module %q", role, m)
			}
			allowed[m] = true
		}
		for m := range g.Overrides {
			if !known[m] {
				return fmt.Errorf("permissions: role %q overrides unknown module %q", role, m)
			}
			if !g.FullAccess && !allowed[m] {
				return fmt.Errorf("permissions: role %q overrides module %q it cannot access", role, m)
			}
		}
	}
	return nil
}

// CheckPermission reports whether role may perform action on module.
// It is a pure function of its inputs.
func CheckPermission(role Role, module Module, action Action) bool {
	if role == "" {
		return false
	}
	g, ok := roleGrants[role]
	if !ok {
		return false
	}
	if g.FullAccess {
		return true
	}

	allowed := false
	for _, m := range g.Modules {
		if m == module {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	if g.ViewOnly && action != ActionView {
		return false
	}

	ov, ok := g.Overrides[module]
	if !ok {
		return true
	}
	if ov.Allow != nil {
		for _, a := range ov.Allow {
			if a == action {
				return true
			}
		}
		return false
	}
	for _, a := range ov.Deny {
		if a == action {
			return false
		}
	}
	return true
}

// GetVisibleModules returns the modules a role may see. An unset or unknown
// role only sees the dashboard.
func GetVisibleModules(role Role) []Module {
	if role == "" {
		return []Module{ModuleDashboard}
	}
	g, ok := roleGrants[role]
	if !ok {
		return []Module{ModuleDashboard}
	}
	if g.FullAccess {
		out := make([]Module, len(AllModules))
		copy(out, AllModules)
		return out
	}
	out := make([]Module, len(g.Modules))
	copy(out, g.Modules)
	return out
}

// RoleName returns the display label for a role, or the raw identifier when
// no label is registered.
func RoleName(role Role) string {
	if name, ok := roleNames[role]; ok {
		return name
	}
	return string(role)
}

// IsValidRole reports whether the identifier is one of the defined roles.
func IsValidRole(role Role) bool {
	_, ok := roleGrants[role]
	return ok
}
