package models

import "github.com/golang-jwt/jwt/v5"

// Token wraps a parsed JWT together with the user id extracted from its
// subject claim.
type Token struct {
	*jwt.Token
	jwt.RegisteredClaims

	UserID       int64
	SignedString string
}
