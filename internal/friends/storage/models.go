package storage

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequest is the row shape of the friend_requests table.
type FriendRequest struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
