package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sebuszqo/HouseholdBudget/internal/user"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *service) JWTAccessTokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			userID, role, err := s.jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if _, err := s.userService.GetUserByID(userID); err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, user.ErrUserNotFound.Error())
					return
				}
				writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}

			ctx := context.WithValue(r.Context(), "userID", userID)
			ctx = context.WithValue(ctx, "userRole", role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards user management routes; the role comes from the
// validated token, not from the request body.
func (s *service) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value("userRole").(string)
		if !ok || role != user.TipoAdmin {
			writeJSONError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
	})
}
