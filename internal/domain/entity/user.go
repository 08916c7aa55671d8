package entity

// Roles válidos en el token.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User proyección de solo lectura del usuario que firma un cambio de precio.
type User struct {
	ID        string
	CompanyID string
	Name      string
}
