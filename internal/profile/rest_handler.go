package profile

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lingualink/infrastructure"
	"lingualink/internal/auth"
	"lingualink/internal/user"
)

type JSONHandler struct {
	users *user.Service
}

func NewJSONProfileHandler(users *user.Service) *JSONHandler {
	return &JSONHandler{users: users}
}

// UpdateProfileRequest mirrors the allow-list in user.UpdateProfileParams;
// any other field in the body is ignored.
type UpdateProfileRequest struct {
	FullName         *string `json:"fullName"`
	Bio              *string `json:"bio"`
	NativeLanguage   *string `json:"nativeLanguage"`
	LearningLanguage *string `json:"learningLanguage"`
	Location         *string `json:"location"`
	ProfilePic       *string `json:"profilePic"`
}

func (h *JSONHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request body"))
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), userID, user.UpdateProfileParams{
		FullName:         req.FullName,
		Bio:              req.Bio,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Location:         req.Location,
		ProfilePic:       req.ProfilePic,
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

// SetupJSONProfileRoutes mounts the profile routes.
func SetupJSONProfileRoutes(r *mux.Router, h *JSONHandler, authMW func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/users/me", authMW(h.UpdateProfile)).Methods("PUT")
}
