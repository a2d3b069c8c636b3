package friends

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"lingualink/infrastructure"
	"lingualink/internal/auth"
)

type JSONHandler struct {
	service *Service
}

func NewJSONFriendsHandler(service *Service) *JSONHandler {
	return &JSONHandler{service: service}
}

func (h *JSONHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	recipientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid user id"))
		return
	}

	request, err := h.service.Send(r.Context(), userID, recipientID)
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":       true,
		"friendRequest": request,
	})
}

func (h *JSONHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request id"))
		return
	}

	if err := h.service.Accept(r.Context(), requestID, userID); err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Friend request accepted",
	})
}

func (h *JSONHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.RespondError(w, infrastructure.NewError(infrastructure.ErrValidation, "Invalid request id"))
		return
	}

	if err := h.service.Decline(r.Context(), requestID, userID); err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Friend request declined",
	})
}

func (h *JSONHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	friendsList, err := h.service.Friends(r.Context(), userID)
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"friends": friendsList,
	})
}

func (h *JSONHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	incoming, err := h.service.Incoming(r.Context(), userID)
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"friendRequests": incoming,
	})
}

func (h *JSONHandler) ListOutgoing(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		infrastructure.RespondError(w, infrastructure.ErrMissingToken)
		return
	}

	outgoing, err := h.service.Outgoing(r.Context(), userID)
	if err != nil {
		infrastructure.RespondError(w, err)
		return
	}

	infrastructure.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"friendRequests": outgoing,
	})
}

// SetupJSONFriendsRoutes mounts the friend-graph routes under /users.
func SetupJSONFriendsRoutes(r *mux.Router, h *JSONHandler, authMW func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/users/friends", authMW(h.ListFriends)).Methods("GET")
	r.HandleFunc("/users/friend-request/{id}", authMW(h.SendRequest)).Methods("POST")
	r.HandleFunc("/users/friend-request/{id}/accept", authMW(h.AcceptRequest)).Methods("PUT")
	r.HandleFunc("/users/friend-request/{id}/decline", authMW(h.DeclineRequest)).Methods("PUT")
	r.HandleFunc("/users/friend-requests", authMW(h.ListIncoming)).Methods("GET")
	r.HandleFunc("/users/outgoing-friend-requests", authMW(h.ListOutgoing)).Methods("GET")
}
