package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

type contextKey string

const (
	ContextKeyIdentity = contextKey("identity")

	// Cookie name follows the __Host- prefix rule (no Domain attribute allowed)
	AccessTokenCookieName = "__Host-accessToken"
)

// Identity is the caller the auth layer vouches for. The ledger trusts these
// fields verbatim; contractor bids snapshot Name and CompanyName from here.
type Identity struct {
	ID          uuid.UUID
	Role        models.UserRoleType
	Name        string
	CompanyName string
}

// AuthMiddleware – for protected endpoints. If the token is missing or
// invalid, returns 401.
//   - Browser clients carry the JWT in the AccessTokenCookieName cookie
//   - API clients carry it in Authorization: Bearer ...
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil || !tok.Valid {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid claims", nil, nil,
				)
				return
			}
			ident, idErr := identityFromClaims(claims)
			if idErr != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, idErr.Error(), nil, idErr,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated caller placed in the request
// context by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(ContextKeyIdentity).(Identity)
	return ident, ok
}

// helper: read the token from the Authorization header, falling back to the
// access-token cookie for browser clients.
func extractAccessToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		if !strings.HasPrefix(h, "Bearer ") {
			return "", errors.New("malformed Authorization header")
		}
		return strings.TrimPrefix(h, "Bearer "), nil
	}

	c, err := r.Cookie(AccessTokenCookieName)
	if err != nil || c.Value == "" {
		return "", errors.New("missing access token")
	}
	return c.Value, nil
}

func identityFromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, errors.New("missing subject claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, errors.New("subject claim is not a UUID")
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return Identity{}, errors.New("missing role claim")
	}
	role, err := models.ParseUserRole(roleStr)
	if err != nil {
		return Identity{}, err
	}

	// Name and company are optional display fields; absent claims leave
	// them empty rather than failing auth.
	name, _ := claims["name"].(string)
	company, _ := claims["company"].(string)

	return Identity{
		ID:          id,
		Role:        role,
		Name:        name,
		CompanyName: company,
	}, nil
}
