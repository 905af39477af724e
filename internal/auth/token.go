package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims names the subject per role the way clients already expect:
// customer_id, chef_id, driver_id or is_admin.
type Claims struct {
	Role       Role `json:"role"`
	CustomerID uint `json:"customer_id,omitempty"`
	ChefID     uint `json:"chef_id,omitempty"`
	DriverID   uint `json:"driver_id,omitempty"`
	IsAdmin    bool `json:"is_admin,omitempty"`
	AdminID    uint `json:"admin_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() (Principal, error) {
	switch c.Role {
	case RoleCustomer:
		if c.CustomerID != 0 {
			return Principal{Role: RoleCustomer, SubjectID: c.CustomerID}, nil
		}
	case RoleChef:
		if c.ChefID != 0 {
			return Principal{Role: RoleChef, SubjectID: c.ChefID}, nil
		}
	case RoleCourier:
		if c.DriverID != 0 {
			return Principal{Role: RoleCourier, SubjectID: c.DriverID}, nil
		}
	case RoleAdmin:
		if c.IsAdmin {
			return Principal{Role: RoleAdmin, SubjectID: c.AdminID}, nil
		}
	}
	return Principal{}, ErrInvalidToken
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *Issuer) Issue(p Principal) (string, error) {
	if !p.Role.Valid() {
		return "", ErrInvalidToken
	}

	now := i.now()
	claims := Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	switch p.Role {
	case RoleCustomer:
		claims.CustomerID = p.SubjectID
	case RoleChef:
		claims.ChefID = p.SubjectID
	case RoleCourier:
		claims.DriverID = p.SubjectID
	case RoleAdmin:
		claims.IsAdmin = true
		claims.AdminID = p.SubjectID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) Verify(raw string) (Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	return claims.Principal()
}
