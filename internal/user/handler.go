package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		slog.Error("JSON encoding error", "error", err)
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nome      string `json:"nome"`
		Email     string `json:"email"`
		Matricula string `json:"matricula"`
		Senha     string `json:"senha"`
		Tipo      string `json:"tipo"`
		CursoID   int    `json:"curso_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	usuario, err := h.userService.Register(req.Nome, req.Email, req.Matricula, req.Senha, req.Tipo, req.CursoID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrMatriculaAlreadyExists):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrCursoNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrNomeLength),
			errors.Is(err, ErrMatriculaLength), errors.Is(err, ErrSenhaLength),
			errors.Is(err, ErrInvalidTipo):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Could not register user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"user_id":   usuario.ID,
			"email":     usuario.Email,
			"matricula": usuario.Matricula,
		},
	})
}

func (h *Handler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.VerifyRegistrationCode(req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrInvalidVerificationCode):
			respondError(w, http.StatusUnauthorized, "Invalid verification code")
		case errors.Is(err, ErrVerificationCodeExpired):
			respondError(w, http.StatusGone, "Verification code expired")
		case errors.Is(err, ErrUserAlreadyVerified):
			respondError(w, http.StatusConflict, "User already verified")
		case errors.Is(err, ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			respondError(w, http.StatusInternalServerError, "Could not verify email")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *Handler) HandleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.RequestPasswordReset(req.Email); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not request password reset")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Reset code sent",
	})
}

func (h *Handler) HandleConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		NewSenha string `json:"new_senha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.ConfirmPasswordReset(req.Email, req.Code, req.NewSenha); err != nil {
		switch {
		case errors.Is(err, ErrInvalidVerificationCode):
			respondError(w, http.StatusUnauthorized, "Invalid verification code")
		case errors.Is(err, ErrVerificationCodeExpired):
			respondError(w, http.StatusGone, "Verification code expired")
		case errors.Is(err, ErrSenhaLength):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			respondError(w, http.StatusInternalServerError, "Could not reset password")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Password reset successfully",
	})
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	usuario, err := h.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not fetch user data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   usuario,
	})
}

func (h *Handler) HandleUpdateUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req struct {
		Nome    string `json:"nome"`
		Email   string `json:"email"`
		CursoID int    `json:"curso_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	usuario, err := h.userService.UpdateUsuario(id, req.Nome, req.Email, req.CursoID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrCursoNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrNomeLength):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Could not update user")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   usuario,
	})
}

func (h *Handler) HandleDeleteUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.DeleteUsuario(id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not delete user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]int{"id": id},
	})
}
