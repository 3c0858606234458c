package meeting

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service issues video meeting room links for confirmed appointments.
// The meeting provider only needs a unique room name, so link issuance
// is local; the provider creates the room lazily on first join.
type Service struct {
	baseURL string
}

func NewService(baseURL string) *Service {
	return &Service{baseURL: strings.TrimRight(baseURL, "/")}
}

// NewRoomLink returns a join URL for a fresh, unguessable room
func (s *Service) NewRoomLink() string {
	return fmt.Sprintf("%s/carelink-%s", s.baseURL, uuid.New().String())
}
