package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	authrepo "carelink-backend/internal/auth/repository"
	"carelink-backend/pkg/fcm"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// placeholderSender is shown when the sender profile cannot be resolved
const placeholderSender = "Someone"

// EventSink delivers named events to a user's open connections.
// Satisfied by the SSE manager.
type EventSink interface {
	SendToUser(userID, name string, data interface{})
}

// RoomDirectory resolves the participants of a chat room
type RoomDirectory interface {
	Participants(roomID string) ([]string, error)
}

// PresenceTracker reports which room a user currently has open, if any
type PresenceTracker interface {
	OpenRoomID(userID string) string
}

// DevicePusher sends a push notification to a set of device tokens,
// returning the tokens that failed. Satisfied by the FCM client.
type DevicePusher interface {
	SendToDevices(ctx context.Context, tokens []string, notification fcm.NotificationData) ([]string, error)
}

// Service runs the alerting pipeline over inbound message events: it
// refreshes each participant's unread and room-list views, applies the
// suppression rule, and delivers alerts over SSE and FCM.
type Service struct {
	sink      EventSink
	userRepo  authrepo.UserRepository
	fcmRepo   authrepo.FCMTokenRepository
	pusher    DevicePusher
	directory RoomDirectory
	presence  PresenceTracker

	// Optional bridge to the legacy chat module
	pubsubClient *pubsub.Client
	topicName    string
	subName      string
}

func NewService(sink EventSink, userRepo authrepo.UserRepository, fcmRepo authrepo.FCMTokenRepository, fcmClient *fcm.Client, directory RoomDirectory, presence PresenceTracker) *Service {
	s := &Service{
		sink:      sink,
		userRepo:  userRepo,
		fcmRepo:   fcmRepo,
		directory: directory,
		presence:  presence,
	}
	if fcmClient != nil {
		s.pusher = fcmClient
	}
	return s
}

// HandleMessage processes one inbound event for every room participant.
// The two invalidation signals fire unconditionally; the alert only
// when the suppression rule allows it.
func (s *Service) HandleMessage(ctx context.Context, event MessageEvent) {
	participants, err := s.directory.Participants(event.RoomID)
	if err != nil {
		log.Printf("[Notify] Error resolving participants for room %s: %v", event.RoomID, err)
		return
	}

	for _, userID := range participants {
		s.sink.SendToUser(userID, "unread_update", map[string]interface{}{
			"room_id": event.RoomID,
		})
		s.sink.SendToUser(userID, "room_update", map[string]interface{}{
			"room_id": event.RoomID,
		})

		viewer := ViewerContext{
			UserID:     userID,
			OpenRoomID: s.presence.OpenRoomID(userID),
		}
		decision := Decide(event, viewer)
		if !decision.Alert {
			continue
		}

		senderName := s.resolveSenderName(event.SenderID)

		s.sink.SendToUser(userID, "chat_message", map[string]interface{}{
			"room_id":     event.RoomID,
			"sender_name": senderName,
			"preview":     decision.Preview,
			"sent_at":     event.SentAt,
		})

		if s.pusher != nil && s.fcmRepo != nil {
			go s.pushToDevices(userID, senderName, decision.Preview, event.RoomID)
		}
	}
}

// resolveSenderName looks up the sender's display name, falling back to
// a placeholder so a failed lookup never breaks the notification path
func (s *Service) resolveSenderName(senderID string) string {
	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		log.Printf("[Notify] Sender lookup failed for %s: %v", senderID, err)
		return placeholderSender
	}
	if sender == nil || sender.Name == "" {
		return placeholderSender
	}
	return sender.Name
}

// pushToDevices runs detached from the triggering event. The request
// context is cancelled as soon as the message handler responds, so the
// send uses its own context.
func (s *Service) pushToDevices(userID, senderName, preview, roomID string) {
	tokens, err := s.fcmRepo.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("[Notify] Error getting FCM tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var tokenStrings []string
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failedTokens, err := s.pusher.SendToDevices(context.Background(), tokenStrings, fcm.NotificationData{
		Title: senderName,
		Body:  preview,
		Data: map[string]string{
			"type":         "chat_message",
			"room_id":      roomID,
			"click_action": "/chat/" + roomID,
		},
	})
	if err != nil {
		log.Printf("[Notify] Error sending push for room %s: %v", roomID, err)
		return
	}

	// Cleanup failed tokens
	for _, token := range failedTokens {
		s.fcmRepo.DeleteToken(token)
	}
}

// ConnectBridge attaches the Pub/Sub client the legacy chat module
// publishes its message events to
func (s *Service) ConnectBridge(projectID, topicName, credentialsFile string) error {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return fmt.Errorf("failed to create pubsub client: %w", err)
	}

	s.pubsubClient = client
	s.topicName = topicName
	s.subName = topicName + "-sub" // Convention: topic-sub
	return nil
}

// StartBridge consumes legacy-module events until the context is
// cancelled. Events run through the same pipeline as native ones, and
// the suppression rule is idempotent, so at-least-once delivery and
// duplicates are tolerated.
func (s *Service) StartBridge(ctx context.Context) {
	if s.pubsubClient == nil {
		log.Println("[Notify] No Pub/Sub bridge configured, skipping")
		return
	}

	log.Printf("[Notify] Starting bridge on topic: %s, subscription: %s", s.topicName, s.subName)

	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[Notify] Error checking subscription existence: %v", err)
		return
	}

	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		topicExists, err := topic.Exists(ctx)
		if err != nil {
			log.Printf("[Notify] Error checking topic existence: %v", err)
			return
		}
		if !topicExists {
			log.Printf("[Notify] Topic does not exist, cannot create subscription")
			return
		}

		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			log.Printf("[Notify] Failed to create subscription: %v", err)
			return
		}
		log.Printf("[Notify] Created subscription: %s", s.subName)
	}

	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		var event MessageEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Printf("[Notify] Failed to unmarshal bridge event: %v", err)
			msg.Ack()
			return
		}
		s.HandleMessage(ctx, event)
		msg.Ack()
	})
	if err != nil {
		log.Printf("[Notify] Bridge receive stopped: %v", err)
	}
}
