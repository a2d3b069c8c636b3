package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"lingualink/infrastructure"
	"lingualink/internal/user"
)

const sessionCookieName = "token"

type JSONHandler struct {
	authUseCase  UseCase
	userService  *user.Service
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewJSONAuthHandler(authUseCase UseCase, userService *user.Service, cookieTTL time.Duration, cookieSecure bool) *JSONHandler {
	return &JSONHandler{
		authUseCase:  authUseCase,
		userService:  userService,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

type sessionResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *user.User `json:"user"`
	Token   string     `json:"token"`
}

func (h *JSONHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request body"))
		return
	}

	created, sessionToken, err := h.authUseCase.Signup(r.Context(), user.CreateUserInput{
		Email:           req.Email,
		FullName:        req.FullName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	h.setSessionCookie(w, sessionToken)
	infrastructure.RespondJSON(w, http.StatusCreated, sessionResponse{
		Success: true,
		Message: "User created successfully",
		User:    created,
		Token:   sessionToken,
	})
}

func (h *JSONHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request body"))
		return
	}

	found, sessionToken, err := h.authUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	h.setSessionCookie(w, sessionToken)
	infrastructure.RespondJSON(w, http.StatusOK, sessionResponse{
		Success: true,
		Message: "Login successful",
		User:    found,
		Token:   sessionToken,
	})
}

// Logout is stateless: clearing the cookie is all the server does. A
// captured token stays valid until its natural expiry.
func (h *JSONHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *JSONHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	var req OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request body"))
		return
	}

	updated, err := h.userService.Onboard(r.Context(), userID, user.OnboardInput{
		FullName:         req.FullName,
		Bio:              req.Bio,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Location:         req.Location,
	})
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User updated successfully",
		"user":    updated,
	})
}

func (h *JSONHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	found, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    found,
	})
}

func (h *JSONHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request body"))
		return
	}

	if err := h.authUseCase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password reset email sent",
	})
}

func (h *JSONHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request body"))
		return
	}

	if err := h.authUseCase.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password has been reset",
	})
}

func (h *JSONHandler) setSessionCookie(w http.ResponseWriter, sessionToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *JSONHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// SetupJSONAuthRoutes mounts the /auth routes.
func SetupJSONAuthRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/auth/signup", h.Signup).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	r.HandleFunc("/auth/onboard", h.Middleware(h.Onboard)).Methods("POST")
	r.HandleFunc("/auth/me", h.Middleware(h.Me)).Methods("GET")
	r.HandleFunc("/auth/forgot-password", h.ForgotPassword).Methods("POST")
	r.HandleFunc("/auth/reset-password", h.ResetPassword).Methods("POST")
}
