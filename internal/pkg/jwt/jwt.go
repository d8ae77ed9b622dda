package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"
)

// Claims is the identity carried by a token. EmployeeID is empty for users
// that are not linked to an employee.
type Claims struct {
	UserID     string
	EmployeeID string
	Role       string
	Level      int
}

type Service interface {
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	GenerateSSEToken(claims Claims) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessExpiration time.Duration
	sseExpiration    time.Duration
	tokenAuth        *jwtauth.JWTAuth
	now              func() time.Time
}

func NewJWTService(secretKey, accessExpiration, sseExpiration string) (*JWTService, error) {
	access, err := time.ParseDuration(accessExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessExpiration, err)
	}
	sse, err := time.ParseDuration(sseExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid sse token expiration %q: %w", sseExpiration, err)
	}
	return &JWTService{
		accessExpiration: access,
		sseExpiration:    sse,
		tokenAuth:        jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:              time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessExpiration).Unix()
	token, err = j.encode(claims, TokenTypeAccess, expiresAt)
	return token, expiresAt, err
}

// GenerateSSEToken issues a short-lived token meant for the query string of
// an EventSource connection, which cannot send headers.
func (j *JWTService) GenerateSSEToken(claims Claims) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(j.sseExpiration).Unix()
	token, err = j.encode(claims, TokenTypeSSE, expiresAt)
	if err != nil {
		return "", 0, err
	}
	return token, int(j.sseExpiration.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (Claims, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return Claims{}, err
	}
	if tokenType, ok := token.Get("type"); !ok || tokenType != TokenTypeSSE {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	c, ok := ClaimsFromMap(token.PrivateClaims())
	if !ok {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	return c, nil
}

func (j *JWTService) encode(c Claims, tokenType string, expiresAt int64) (string, error) {
	m := map[string]interface{}{
		"user_id": c.UserID,
		"role":    c.Role,
		"level":   c.Level,
		"type":    tokenType,
		"exp":     expiresAt,
	}
	if c.EmployeeID != "" {
		m["employee_id"] = c.EmployeeID
	}
	_, tokenString, err := j.tokenAuth.Encode(m)
	return tokenString, err
}

// ClaimsFromMap reads the private claims of a decoded token. Numeric claims
// arrive as float64 after JSON decoding.
func ClaimsFromMap(m map[string]interface{}) (Claims, bool) {
	userID, ok := m["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, false
	}
	c := Claims{UserID: userID}
	c.EmployeeID, _ = m["employee_id"].(string)
	c.Role, _ = m["role"].(string)
	switch v := m["level"].(type) {
	case float64:
		c.Level = int(v)
	case int:
		c.Level = v
	case int64:
		c.Level = int(v)
	}
	return c, true
}
