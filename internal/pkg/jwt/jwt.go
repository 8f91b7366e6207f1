package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
)

// Claims are the custom claims carried by an access token.
type Claims struct {
	AccountID    string
	EmployeeID   string
	Role         user.Role
	IsFirstLogin bool
}

func (c Claims) Actor() user.Actor {
	return user.Actor{
		AccountID:  c.AccountID,
		EmployeeID: c.EmployeeID,
		Role:       c.Role,
	}
}

type Service interface {
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(c Claims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"account_id":     c.AccountID,
		"employee_id":    c.EmployeeID,
		"role":           int(c.Role),
		"is_first_login": c.IsFirstLogin,
		"type":           "access",
		"exp":            expiresAt,
	})
	return tokenString, expiresAt, err
}

// ClaimsFromMap reads the custom claims of a verified access token.
func ClaimsFromMap(m map[string]interface{}) (Claims, error) {
	if t, _ := m["type"].(string); t != "access" {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	accountID, _ := m["account_id"].(string)
	employeeID, _ := m["employee_id"].(string)
	if accountID == "" || employeeID == "" {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	role, err := roleClaim(m["role"])
	if err != nil {
		return Claims{}, err
	}

	isFirstLogin, _ := m["is_first_login"].(bool)
	return Claims{
		AccountID:    accountID,
		EmployeeID:   employeeID,
		Role:         role,
		IsFirstLogin: isFirstLogin,
	}, nil
}

// roleClaim accepts the numeric forms a JSON decoder may produce.
func roleClaim(v interface{}) (user.Role, error) {
	var role user.Role
	switch n := v.(type) {
	case float64:
		role = user.Role(int(n))
	case int:
		role = user.Role(n)
	case int64:
		role = user.Role(n)
	default:
		return 0, fmt.Errorf("role claim has unexpected type %T: %w", v, jwt.ErrInvalidJWT())
	}
	if !role.IsValid() {
		return 0, fmt.Errorf("%w: %d", user.ErrInvalidRole, int(role))
	}
	return role, nil
}
