package services

import (
	"fmt"
	"time"

	"streamhub-backend/internal/config"
	"streamhub-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Custom claim URIs for the active profile, set after profile selection.
const (
	ClaimProfileID   = "https://streamhub.dev/claims/active-profile-id"
	ClaimProfileName = "https://streamhub.dev/claims/active-profile-name"
)

// TokenClaims is the decoded identity a request carries.
type TokenClaims struct {
	AccountID   uint
	Name        string
	Email       string
	Role        string
	ProfileID   uint
	ProfileName string
}

// TokenService issues and validates HS256 access tokens.
type TokenService struct {
	cfg config.JWTConfig
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// Generate signs an access token for the account. When profile is non-nil
// the token also carries the active-profile claims.
func (s *TokenService) Generate(account *models.Account, profile *models.Profile) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(s.cfg.AccessTTL)

	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", account.ID),
		"name":  account.Name,
		"email": account.Email,
		"role":  account.Role,
		"iss":   s.cfg.Issuer,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	if profile != nil {
		claims[ClaimProfileID] = fmt.Sprintf("%d", profile.ID)
		claims[ClaimProfileName] = profile.Name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse validates the token signature and expiry and extracts the claims.
func (s *TokenService) Parse(raw string) (*TokenClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims format")
	}

	claims := &TokenClaims{
		Name:  stringClaim(mapClaims, "name"),
		Email: stringClaim(mapClaims, "email"),
		Role:  stringClaim(mapClaims, "role"),
	}
	if _, err := fmt.Sscanf(stringClaim(mapClaims, "sub"), "%d", &claims.AccountID); err != nil {
		return nil, fmt.Errorf("invalid subject claim")
	}
	if raw := stringClaim(mapClaims, ClaimProfileID); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &claims.ProfileID); err != nil {
			return nil, fmt.Errorf("invalid profile claim")
		}
		claims.ProfileName = stringClaim(mapClaims, ClaimProfileName)
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
