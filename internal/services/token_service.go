package services

import (
	"fmt"
	"time"

	"registration-service/internal/models"
	"registration-service/utils"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "registration-service"

type TokenService struct {
	JWTSecret string
	TokenTTL  time.Duration
	now       func() time.Time
}

func NewTokenService(jwtSecret string, tokenTTL time.Duration) *TokenService {
	return &TokenService{
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// GenerateSessionToken signs an HS256 token for sessionID and returns it with
// its expiry.
func (s *TokenService) GenerateSessionToken(sessionID string) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.TokenTTL)
	claim := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    tokenIssuer,
			Subject:   sessionID,
		},
		Id:        "C-" + utils.GenerateRandomStringWithLength(6),
		SessionID: sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	tokenString, err := token.SignedString([]byte(s.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error generate token string: %w", err)
	}
	return tokenString, expiresAt, nil
}

func (s *TokenService) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.SessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(s.JWTSecret), nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
