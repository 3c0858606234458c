package domain

import "time"

// Room is a private conversation between a client and a consultant
type Room struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ClientID     string    `json:"client_id" gorm:"index;not null"`
	ConsultantID string    `json:"consultant_id" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Participants returns both members of the room
func (r *Room) Participants() []string {
	return []string{r.ClientID, r.ConsultantID}
}

// HasParticipant reports whether the user belongs to the room
func (r *Room) HasParticipant(userID string) bool {
	return r.ClientID == userID || r.ConsultantID == userID
}

// Message is one chat message in a room
type Message struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	RoomID        string    `json:"room_id" gorm:"index;not null"`
	SenderID      string    `json:"sender_id" gorm:"index;not null"`
	Content       string    `json:"content"`
	HasAttachment bool      `json:"has_attachment" gorm:"default:false"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RoomRead marks how far a participant has read in a room
type RoomRead struct {
	RoomID     string    `json:"room_id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"primaryKey"`
	LastReadAt time.Time `json:"last_read_at"`
}
