package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Email    string
	IsVendor bool
	IsBuyer  bool
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients. The vendor
// and buyer capability bits travel with the token so role gates do not need
// a user lookup per request.
type AccessTokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	IsVendor bool      `json:"is_vendor"`
	IsBuyer  bool      `json:"is_buyer"`
	jwt.RegisteredClaims
}
