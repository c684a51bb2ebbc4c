package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"ssto/pkg/platform/httputil"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/requestcontext"
)

// JWTValidator validates operator bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*OperatorClaims, error)
}

// OperatorClaims identifies the authenticated operator.
type OperatorClaims struct {
	Operator string
	Name     string
}

// RequireOperator rejects requests without a valid bearer token and puts
// the operator id into the request context as the acting identity.
func RequireOperator(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			ctx = requestcontext.WithActor(ctx, claims.Operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
