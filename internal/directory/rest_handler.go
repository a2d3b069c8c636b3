package directory

import (
	"net/http"

	"github.com/gorilla/mux"

	"lingualink/infrastructure"
	"lingualink/internal/auth"
)

type JSONHandler struct {
	service *Service
}

func NewJSONDirectoryHandler(service *Service) *JSONHandler {
	return &JSONHandler{service: service}
}

func (h *JSONHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	recommended, err := h.service.Recommend(r.Context(), userID)
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"recommendedUsers": recommended,
	})
}

func (h *JSONHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	results, err := h.service.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   results,
	})
}

// SetupJSONDirectoryRoutes mounts the recommendation and search routes.
func SetupJSONDirectoryRoutes(r *mux.Router, h *JSONHandler, authMW func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/users", authMW(h.Recommend)).Methods("GET")
	r.HandleFunc("/users/search", authMW(h.Search)).Methods("GET")
}
