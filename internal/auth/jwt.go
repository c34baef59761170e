package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwt secret is empty")

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // admin | staff
}

type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Issuer struct {
	Secret []byte
	TTL    time.Duration
}

// Login is mocked: any username is accepted and becomes an admin.
func (i *Issuer) Login(username string) (User, string, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		name = "Admin User"
	}
	u := User{ID: "1", Name: name, Role: "admin"}
	tok, err := i.GenerateToken(u)
	return u, tok, err
}

func (i *Issuer) GenerateToken(u User) (string, error) {
	if len(i.Secret) == 0 {
		return "", ErrEmptySecret
	}
	ttl := i.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	now := time.Now()
	claims := Claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
}

func (i *Issuer) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
