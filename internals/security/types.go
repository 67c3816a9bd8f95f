package security

import "github.com/golang-jwt/jwt/v5"

// RequestClaims carries the owner's phone as subject and the token record
// id as jti.
type RequestClaims struct {
	jwt.RegisteredClaims
}

func (c *RequestClaims) Phone() string {
	return c.Subject
}

func (c *RequestClaims) TokenID() string {
	return c.ID
}
