package notification

import "time"

// MessageEvent is one inbound chat message as seen by the alerting
// pipeline. Ephemeral: consumed once, never stored here.
type MessageEvent struct {
	RoomID        string    `json:"room_id"`
	SenderID      string    `json:"sender_id"`
	Content       string    `json:"content"`
	HasAttachment bool      `json:"has_attachment"`
	SentAt        time.Time `json:"sent_at"`
}

// ViewerContext is the viewer's identity and current location, passed
// in explicitly so the decision stays pure and testable.
type ViewerContext struct {
	UserID     string
	OpenRoomID string
}

// Decision says whether to raise a user-visible alert. Unread counters
// and room lists are refreshed regardless of the decision.
type Decision struct {
	Alert   bool
	Preview string
}

const previewLimit = 50

// attachmentPreview stands in for content when a message only carries a file
const attachmentPreview = "\U0001F4CE Attachment"

// Decide applies the suppression rule: no alert for the viewer's own
// messages, and none for the room the viewer currently has open.
// Pure and idempotent, so duplicate delivery of an event is harmless.
func Decide(event MessageEvent, viewer ViewerContext) Decision {
	if event.SenderID == viewer.UserID {
		return Decision{}
	}
	if event.RoomID == viewer.OpenRoomID {
		return Decision{}
	}

	preview := event.Content
	if event.HasAttachment && preview == "" {
		preview = attachmentPreview
	}
	if runes := []rune(preview); len(runes) > previewLimit {
		preview = string(runes[:previewLimit]) + "..."
	}

	return Decision{Alert: true, Preview: preview}
}
