package jwttoken

import (
	"ssto/internal/platform/middleware"
)

// JWTServiceAdapter adapts JWTService to middleware.JWTValidator.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.OperatorClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.OperatorClaims{
		Operator: claims.Subject,
		Name:     claims.Name,
	}, nil
}
