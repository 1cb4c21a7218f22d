package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleTecnico  = "tecnico"
	RoleConsulta = "consulta"
)

// Permisos sobre el inventario.
const (
	PermInventoryView   = "inventory.view"
	PermInventoryCreate = "inventory.create"
	PermInventoryUpdate = "inventory.update"
	PermInventoryDelete = "inventory.delete"
)

// rolePermissions asigna permisos por rol. "*" concede todo.
var rolePermissions = map[string][]string{
	RoleAdmin:    {"*"},
	RoleTecnico:  {PermInventoryView, PermInventoryCreate, PermInventoryUpdate},
	RoleConsulta: {PermInventoryView},
}

// ValidRole informa si role es un rol conocido.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// RoleGrants informa si el rol concede el permiso (soporta comodín "*").
func RoleGrants(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == "*" || p == permission {
			return true
		}
	}
	return false
}

// User usuario del sistema; pertenece a un Team.
type User struct {
	ID           string
	TeamID       string
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	FullName     string
	Role         string // admin, tecnico, consulta
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
