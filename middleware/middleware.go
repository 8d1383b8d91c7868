package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"roamio/globals"
)

// Claims carried by a tenant token. Tenants are namespaces, not
// accounts; there is no password behind this.
type Claims struct {
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// CreateToken issues a long-lived tenant token at onboarding.
func CreateToken(tenantID, name string) (string, error) {
	claims := &Claims{
		TenantID: tenantID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(365 * 24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}

func ValidateJWT(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Authenticate requires a tenant token. Websocket upgrades carry it as a
// query parameter since browsers cannot set headers on sockets.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" && websocket.IsWebSocketUpgrade(r) {
			tokenString = r.URL.Query().Get("token")
		}
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.TenantIDKey, claims.TenantID)
		ctx = context.WithValue(ctx, globals.TenantNameKey, claims.Name)
		next(w, r.WithContext(ctx), ps)
	}
}

// TenantID extracts the authenticated tenant from the request context.
func TenantID(r *http.Request) string {
	id, _ := r.Context().Value(globals.TenantIDKey).(string)
	return id
}

// Chain applies middlewares right-to-left around handler.
func Chain(middlewares ...func(httprouter.Handle) httprouter.Handle) func(httprouter.Handle) httprouter.Handle {
	return func(handler httprouter.Handle) httprouter.Handle {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}
