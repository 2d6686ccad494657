package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-record-guardian/internal/ports/auth"
)

// DebugUserHeader identifica al dueño cuando no hay verifier configurado.
const DebugUserHeader = "X-Debug-User-ID"

type userKey struct{}

// AuthContext resuelve el dueño del request y lo deja en el contexto.
// Nunca corta el request: sin usuario, cada handler responde 401.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if uid := resolveUser(r, verifier); uid != "" {
				r = r.WithContext(context.WithValue(r.Context(), userKey{}, uid))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveUser usa el header de debug solo sin verifier; con verifier exige
// un Bearer válido.
func resolveUser(r *http.Request, verifier auth.AuthVerifier) string {
	if verifier == nil {
		return strings.TrimSpace(r.Header.Get(DebugUserHeader))
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return ""
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(claims.UserID)
}

// UserID devuelve el dueño autenticado del request, si lo hay.
func UserID(ctx context.Context) (string, bool) {
	uid, _ := ctx.Value(userKey{}).(string)
	return uid, uid != ""
}
