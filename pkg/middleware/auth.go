package middleware

import (
	"net/http"
	"strings"

	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SharerUserHeader carries the id of the acting user.
const SharerUserHeader = "X-Sharer-User-Id"

// SharerUser puts the acting user id from SharerUserHeader into the request context.
// Whether the user exists is left to the services.
func SharerUser(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(SharerUserHeader))
			if raw == "" {
				utils.ResponseUnauthorized(w, "Missing "+SharerUserHeader+" header")
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil || userID == uuid.Nil {
				logger.Warn("Invalid actor header",
					zap.String("value", raw),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid "+SharerUserHeader+" header")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
