package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"notification-service/pkg/response"
)

type contextKey string

const (
	ContextTenantID   contextKey = "tenant_id"
	ContextMemberID   contextKey = "member_id"
	ContextCustomerID contextKey = "customer_id"
)

// Claims is the token shape issued by the platform's auth layer. Either
// MemberID or CustomerID is set, matching the recipient union.
type Claims struct {
	TenantID   string `json:"tenant_id,omitempty"`
	MemberID   string `json:"member_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// RequireAuth validates the Bearer JWT and injects actor identity into context.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				response.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if claims.MemberID == "" && claims.CustomerID == "" {
				response.Error(w, http.StatusUnauthorized, "token carries no actor")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, ContextTenantID, claims.TenantID)
			ctx = context.WithValue(ctx, ContextMemberID, claims.MemberID)
			ctx = context.WithValue(ctx, ContextCustomerID, claims.CustomerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TenantID(ctx context.Context) string {
	v, _ := ctx.Value(ContextTenantID).(string)
	return v
}

func MemberID(ctx context.Context) string {
	v, _ := ctx.Value(ContextMemberID).(string)
	return v
}

func CustomerID(ctx context.Context) string {
	v, _ := ctx.Value(ContextCustomerID).(string)
	return v
}
