package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Actor kinds carried in token claims. Employee and customer tokens are two
// separate classes; a customer token never grants back-office access.
const (
	KindEmployee = "employee"
	KindCustomer = "customer"
)

const (
	employeeTokenTTL = 24 * time.Hour
	customerTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for malformed, expired or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity extracted from a bearer token.
type Claims struct {
	UserID int64
	Kind   string
	Role   string // employee tokens only
	Email  string // customer tokens only
}

// IsAdmin reports whether the claims belong to an admin employee.
func (c *Claims) IsAdmin() bool {
	return c.Kind == KindEmployee && c.Role == "admin"
}

type tokenClaims struct {
	UserID int64  `json:"uid"`
	Kind   string `json:"kind"`
	Role   string `json:"role,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HMAC-SHA256 bearer tokens.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a token issuer with the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// IssueEmployee signs a 24-hour employee token carrying the role.
func (t *TokenIssuer) IssueEmployee(id int64, role string) (string, error) {
	return t.sign(tokenClaims{
		UserID: id,
		Kind:   KindEmployee,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(employeeTokenTTL)),
		},
	})
}

// IssueCustomer signs a 7-day customer token.
func (t *TokenIssuer) IssueCustomer(id int64, email string) (string, error) {
	return t.sign(tokenClaims{
		UserID: id,
		Kind:   KindCustomer,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(customerTokenTTL)),
		},
	})
}

func (t *TokenIssuer) sign(claims tokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a bearer token and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Kind != KindEmployee && claims.Kind != KindCustomer {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID: claims.UserID,
		Kind:   claims.Kind,
		Role:   claims.Role,
		Email:  claims.Email,
	}, nil
}
