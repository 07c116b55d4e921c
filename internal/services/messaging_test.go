package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendMessage_Validation(t *testing.T) {
	SetupTestDB()

	_, err := SendMessage("", "msg_a", "msg_b", time.Now())
	assert.Error(t, err)

	_, err = SendMessage("hello", "", "msg_b", time.Now())
	assert.Error(t, err)

	_, err = SendMessage("hello", "msg_a", "msg_b", time.Time{})
	assert.Error(t, err)

	id, err := SendMessage("hello", "msg_a", "msg_b", time.Now())
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestGetMessages_SymmetricAndSorted(t *testing.T) {
	SetupTestDB()

	base := time.Now().Add(-time.Hour)
	SendMessage("first", "sym_a", "sym_b", base)
	SendMessage("second", "sym_b", "sym_a", base.Add(time.Minute))
	SendMessage("third", "sym_a", "sym_b", base.Add(2*time.Minute))
	SendMessage("unrelated", "sym_a", "sym_c", base.Add(3*time.Minute))

	ab, err := GetMessages("sym_a", "sym_b", 50, 0)
	assert.NoError(t, err)
	ba, err := GetMessages("sym_b", "sym_a", 50, 0)
	assert.NoError(t, err)

	assert.Len(t, ab, 3)
	assert.Len(t, ba, 3)
	for i := range ab {
		assert.Equal(t, ab[i].ID, ba[i].ID)
	}

	// Descending by created_at
	assert.Equal(t, "third", ab[0].Text)
	assert.Equal(t, "second", ab[1].Text)
	assert.Equal(t, "first", ab[2].Text)
}

func TestGetMessages_PaginatesAfterMerge(t *testing.T) {
	SetupTestDB()

	// Skew: many messages one way, one message the other way, with the lone
	// reply in the middle of the timeline. Per-branch pagination would lose it.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 6; i++ {
		SendMessage("out", "skew_a", "skew_b", base.Add(time.Duration(i)*time.Minute))
	}
	SendMessage("reply", "skew_b", "skew_a", base.Add(150*time.Second)) // between out#2 and out#3

	page, err := GetMessages("skew_a", "skew_b", 3, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 3)

	// Full merged order: out5 out4 out3 reply out2 out1 out0 → offset 2, limit 3
	assert.Equal(t, "out", page[0].Text)
	assert.Equal(t, "reply", page[1].Text)
	assert.Equal(t, "out", page[2].Text)

	// Window never exceeds limit
	short, err := GetMessages("skew_a", "skew_b", 3, 6)
	assert.NoError(t, err)
	assert.Len(t, short, 1)

	empty, err := GetMessages("skew_a", "skew_b", 3, 50)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetChatsForUser_OnePerCounterpart(t *testing.T) {
	SetupTestDB()

	base := time.Now().Add(-time.Hour)
	SendMessage("to b 1", "chat_a", "chat_b", base)
	SendMessage("from b", "chat_b", "chat_a", base.Add(time.Minute))
	SendMessage("to b 2", "chat_a", "chat_b", base.Add(2*time.Minute))
	SendMessage("to c", "chat_a", "chat_c", base.Add(30*time.Second))

	chats, err := GetChatsForUser("chat_a")
	assert.NoError(t, err)
	assert.Len(t, chats, 2)

	// Sorted by latest activity, counterpart b first
	assert.Equal(t, "chat_b", chats[0].ChatID)
	assert.Equal(t, "to b 2", chats[0].LatestMessage)
	assert.WithinDuration(t, base.Add(2*time.Minute), chats[0].LatestMessageTime, time.Second)

	assert.Equal(t, "chat_c", chats[1].ChatID)
	assert.Equal(t, "to c", chats[1].LatestMessage)
}

func TestGetChatsForUser_TieKeepsFirstSeen(t *testing.T) {
	SetupTestDB()

	ts := time.Now().Truncate(time.Second)
	SendMessage("seen first", "tie_a", "tie_b", ts)
	SendMessage("seen second", "tie_a", "tie_b", ts)

	chats, err := GetChatsForUser("tie_a")
	assert.NoError(t, err)
	assert.Len(t, chats, 1)
	assert.Equal(t, "seen first", chats[0].LatestMessage)
}

func TestMessageEditAndDelete(t *testing.T) {
	SetupTestDB()

	id, _ := SendMessage("original", "edit_a", "edit_b", time.Now())

	assert.NoError(t, UpdateMessage(id, "edited"))
	msg, err := GetMessageByID(id)
	assert.NoError(t, err)
	assert.Equal(t, "edited", msg.Text)

	assert.Error(t, UpdateMessage(id, " "))
	assert.ErrorIs(t, UpdateMessage("missing-message", "x"), ErrMessageNotFound)

	assert.NoError(t, DeleteMessage(id))
	_, err = GetMessageByID(id)
	assert.ErrorIs(t, err, ErrMessageNotFound)
	assert.ErrorIs(t, DeleteMessage(id), ErrMessageNotFound)
}
