package usecase

import (
	"context"
	"testing"

	"carelink-backend/internal/chat/domain"
	"carelink-backend/internal/chat/repository"
	"carelink-backend/internal/notification"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	events []notification.MessageEvent
}

func (r *recordingNotifier) HandleMessage(_ context.Context, event notification.MessageEvent) {
	r.events = append(r.events, event)
}

func newTestChatUsecase(t *testing.T) (*chatUsecase, *recordingNotifier) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Room{}, &domain.Message{}, &domain.RoomRead{}))

	notifier := &recordingNotifier{}
	uc := NewChatUsecase(repository.NewGormChatRepository(db)).(*chatUsecase)
	uc.SetNotifier(notifier)
	return uc, notifier
}

func TestOpenRoomWithIsIdempotent(t *testing.T) {
	t.Parallel()

	uc, _ := newTestChatUsecase(t)

	first, err := uc.OpenRoomWith("client-1", "consultant-1")
	require.NoError(t, err)

	second, err := uc.OpenRoomWith("client-1", "consultant-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = uc.OpenRoomWith("client-1", "client-1")
	assert.ErrorIs(t, err, ErrSelfRoom)
}

func TestSendMessageNotifiesAndCountsUnread(t *testing.T) {
	t.Parallel()

	uc, notifier := newTestChatUsecase(t)

	room, err := uc.OpenRoomWith("client-1", "consultant-1")
	require.NoError(t, err)

	msg, err := uc.SendMessage(context.Background(), "client-1", room.ID, "hello there", "")
	require.NoError(t, err)
	assert.Equal(t, "client-1", msg.SenderID)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, room.ID, notifier.events[0].RoomID)
	assert.Equal(t, "hello there", notifier.events[0].Content)

	// Consultant has one unread; the sender has none
	rooms, err := uc.ListRooms("consultant-1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.EqualValues(t, 1, rooms[0].UnreadCount)

	rooms, err = uc.ListRooms("client-1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.EqualValues(t, 0, rooms[0].UnreadCount)
}

func TestEnterRoomResetsUnreadAndTracksPresence(t *testing.T) {
	t.Parallel()

	uc, _ := newTestChatUsecase(t)

	room, err := uc.OpenRoomWith("client-1", "consultant-1")
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "client-1", room.ID, "first", "")
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), "client-1", room.ID, "second", "")
	require.NoError(t, err)

	require.NoError(t, uc.EnterRoom("consultant-1", room.ID))
	assert.Equal(t, room.ID, uc.OpenRoomID("consultant-1"))

	rooms, err := uc.ListRooms("consultant-1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.EqualValues(t, 0, rooms[0].UnreadCount)

	uc.LeaveRoom("consultant-1")
	assert.Equal(t, "", uc.OpenRoomID("consultant-1"))
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	t.Parallel()

	uc, notifier := newTestChatUsecase(t)

	room, err := uc.OpenRoomWith("client-1", "consultant-1")
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "stranger", room.ID, "let me in", "")
	assert.ErrorIs(t, err, ErrNotInRoom)
	assert.Empty(t, notifier.events)

	_, err = uc.SendMessage(context.Background(), "client-1", room.ID, "", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestParticipantsResolvesRoomMembers(t *testing.T) {
	t.Parallel()

	uc, _ := newTestChatUsecase(t)

	room, err := uc.OpenRoomWith("client-1", "consultant-1")
	require.NoError(t, err)

	participants, err := uc.Participants(room.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"client-1", "consultant-1"}, participants)

	_, err = uc.Participants("missing-room")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
