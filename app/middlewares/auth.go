package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID string
	Role   string
}

type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// JWTVerifier verifies and issues HS256 tokens.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// Issue signs a token for the user. A zero ttl issues a token without
// expiry; a negative ttl yields one that is already expired.
func (v *JWTVerifier) Issue(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt: now.Unix(),
			Subject:  userID,
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = now.Add(ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's id and role in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				renderer.Error(w, apperror.Unauthorized("missing bearer token"))
				return
			}
			identity, err := verifier.Verify(token)
			if err != nil {
				renderer.Error(w, apperror.Unauthorized("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, identity.UserID)
			ctx = context.WithValue(ctx, helpers.ContextKeyRole, identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if helpers.RoleFromContext(r.Context()) != role {
				renderer.Error(w, apperror.Forbidden("access denied, "+role+" role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
