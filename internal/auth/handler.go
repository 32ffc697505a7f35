package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sebuszqo/HouseholdBudget/internal/user"
)

type Handler struct {
	authService Service
}

func NewHandler(authService Service) *Handler {
	return &Handler{
		authService: authService,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmailOrMatricula string `json:"email_or_matricula"`
		Senha            string `json:"senha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, usuario, err := h.authService.Login(req.EmailOrMatricula, req.Senha)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, user.ErrUserNotActive):
			writeJSONError(w, http.StatusForbidden, err.Error())
		default:
			writeJSONError(w, http.StatusInternalServerError, "Could not log in")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"access_token": token,
			"user": map[string]interface{}{
				"id":        usuario.ID,
				"nome":      usuario.Nome,
				"email":     usuario.Email,
				"matricula": usuario.Matricula,
				"tipo":      usuario.Tipo,
			},
		},
	})
}
