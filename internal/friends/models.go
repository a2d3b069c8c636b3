package friends

import (
	"time"

	"github.com/google/uuid"

	"lingualink/internal/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// FriendRequest is the directed edge between two users. Friendship is the
// derived symmetric relation implied by an accepted edge.
type FriendRequest struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RequestWithUser carries a request together with the counterpart profile
// the listing endpoints embed.
type RequestWithUser struct {
	FriendRequest
	Sender    *user.User `json:"sender,omitempty"`
	Recipient *user.User `json:"recipient,omitempty"`
}
