package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"erpvendas/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	VendedorKey = "vendedor_id"
)

// SellerClaims identify the seller a request acts for.
type SellerClaims struct {
	VendedorID string `json:"vendedor_id"`
	jwt.RegisteredClaims
}

// SellerAuth resolves the request's seller. With an empty secret every
// request runs as defaultSeller; otherwise a valid HS256 bearer token is
// required and its vendedor_id claim (or subject) is used.
func SellerAuth(secret, defaultSeller string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Set(VendedorKey, defaultSeller)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticação requerida"))
			return
		}

		claims, err := ParseSellerToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido ou expirado"))
			return
		}

		c.Set(VendedorKey, claims.VendedorID)
		c.Next()
	}
}

// ParseSellerToken validates tokenStr and returns its claims with VendedorID
// always populated.
func ParseSellerToken(secret, tokenStr string) (*SellerClaims, error) {
	claims := &SellerClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.VendedorID == "" {
		claims.VendedorID = claims.Subject
	}
	if claims.VendedorID == "" {
		return nil, errors.New("token sem vendedor_id")
	}
	return claims, nil
}

// NewSellerToken signs an HS256 token for vendedorID valid for ttl.
func NewSellerToken(secret, vendedorID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SellerClaims{
		VendedorID: vendedorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   vendedorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GetVendedorID returns the seller resolved by SellerAuth, or "".
func GetVendedorID(c *gin.Context) string {
	return c.GetString(VendedorKey)
}
