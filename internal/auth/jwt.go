package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidRole  = errors.New("token carries no known role")
)

// Claims are the bearer token claims issued by the identity service
type Claims struct {
	Name  string   `json:"name,omitempty"`
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTValidator validates HS256 bearer tokens signed with the shared secret
type JWTValidator struct {
	secret []byte
	issuer string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
	}
}

// ValidateToken validates a JWT token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: bearer tokens are not configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a UUID", ErrInvalidToken)
	}

	roles := ExtractRoles(claims)
	if len(roles) == 0 {
		return nil, ErrInvalidRole
	}

	return &UserContext{
		UserID:      userID,
		DisplayName: claims.Name,
		Roles:       roles,
	}, nil
}

// ExtractRoles returns the known roles named by the role and roles claims
func ExtractRoles(claims *Claims) []domain.Role {
	roles := []domain.Role{}
	seen := map[domain.Role]bool{}

	names := append([]string{claims.Role}, claims.Roles...)
	for _, name := range names {
		role := domain.Role(name)
		if !role.IsValid() || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	return roles
}

// IssueToken signs an HS256 token for the given user. Used by tooling and tests.
func IssueToken(secret, issuer string, userID uuid.UUID, name string, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: name,
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
