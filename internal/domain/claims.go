package domain

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

// Claims identifica o operador que chama a API administrativa
type Claims struct {
	Operator string `json:"operator"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
