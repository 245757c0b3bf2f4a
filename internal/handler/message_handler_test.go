package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"warbler/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDirectMessage_Success(t *testing.T) {
	ts := setupTestServer(t)
	sender := ts.user(t, "sender")
	receiver := ts.user(t, "receiver")
	stream := ts.hub.Subscribe(receiver.ID, 1)

	w := ts.do(t, http.MethodPost, "/messages/send", url.Values{
		"receiver_id": {idPath("", receiver.ID)},
		"content":     {"hi"},
	}, sender.ID)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": "Message sent!", "message": "hi"}`, w.Body.String())
	assert.Len(t, stream, 1, "receiver stream gets the new message")

	w = ts.do(t, http.MethodGet, idPath("/messages/", receiver.ID), nil, sender.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<p>hi</p>")
}

func TestSendDirectMessage_InvalidInput(t *testing.T) {
	ts := setupTestServer(t)
	sender := ts.user(t, "sender")
	receiver := ts.user(t, "receiver")
	rid := idPath("", receiver.ID)

	cases := []struct {
		name string
		form url.Values
	}{
		{"missing receiver_id", url.Values{"content": {"hi"}}},
		{"missing content", url.Values{"receiver_id": {rid}}},
		{"empty content", url.Values{"receiver_id": {rid}, "content": {""}}},
		{"non-numeric receiver", url.Values{"receiver_id": {"abc"}, "content": {"hi"}}},
		{"zero receiver", url.Values{"receiver_id": {"0"}, "content": {"hi"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/messages/send", tc.form, sender.ID)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error": "Invalid input."}`, w.Body.String())
		})
	}

	var n int64
	require.NoError(t, ts.db.Model(&models.DirectMessage{}).Count(&n).Error)
	assert.Zero(t, n, "no direct message is created on invalid input")
}

func TestSendDirectMessage_WhitespaceContentIsSent(t *testing.T) {
	ts := setupTestServer(t)
	sender := ts.user(t, "sender")
	receiver := ts.user(t, "receiver")

	w := ts.do(t, http.MethodPost, "/messages/send", url.Values{
		"receiver_id": {idPath("", receiver.ID)},
		"content":     {"   "},
	}, sender.ID)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": "Message sent!", "message": "   "}`, w.Body.String())
}

func TestDeletedUserSessionIsRejected(t *testing.T) {
	ts := setupTestServer(t)
	receiver := ts.user(t, "receiver")
	const ghostID = 999

	w := ts.do(t, http.MethodPost, "/messages/send", url.Values{
		"receiver_id": {idPath("", receiver.ID)},
		"content":     {"hi"},
	}, ghostID)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.True(t, hasCookie(w, "session"), "stale session is cleared")

	var n int64
	require.NoError(t, ts.db.Model(&models.DirectMessage{}).Count(&n).Error)
	assert.Zero(t, n, "no direct message without a sender")

	w = ts.do(t, http.MethodGet, idPath("/messages/", receiver.ID), nil, ghostID)
	assert.Equal(t, http.StatusFound, w.Code, "thread page does not render for a missing user")
}

func TestSendDirectMessage_UnknownReceiver(t *testing.T) {
	ts := setupTestServer(t)
	sender := ts.user(t, "sender")

	w := ts.do(t, http.MethodPost, "/messages/send", url.Values{
		"receiver_id": {"999"},
		"content":     {"hi"},
	}, sender.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Receiver not found."}`, w.Body.String())
}

func TestSendDirectMessage_RequiresLogin(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(t, http.MethodPost, "/messages/send", url.Values{"receiver_id": {"1"}, "content": {"hi"}}, 0)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestShowThread(t *testing.T) {
	ts := setupTestServer(t)
	a := ts.user(t, "a")
	b := ts.user(t, "b")
	c := ts.user(t, "c")

	for _, m := range []struct {
		from, to uint
		content  string
	}{
		{a.ID, b.ID, "first"},
		{b.ID, a.ID, "second"},
		{c.ID, a.ID, "from-c"},
		{a.ID, b.ID, "third"},
	} {
		w := ts.do(t, http.MethodPost, "/messages/send", url.Values{
			"receiver_id": {idPath("", m.to)},
			"content":     {m.content},
		}, m.from)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := ts.do(t, http.MethodGet, idPath("/messages/", b.ID), nil, a.ID)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	first, second, third := strings.Index(body, "first"), strings.Index(body, "second"), strings.Index(body, "third")
	assert.True(t, first < second && second < third, "oldest message first")
	assert.NotContains(t, body, "from-c")

	t.Run("unknown user", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/messages/999", nil, a.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPostMessageAndToggleLike(t *testing.T) {
	ts := setupTestServer(t)
	author := ts.user(t, "author")
	fan := ts.user(t, "fan")

	w := ts.do(t, http.MethodPost, "/messages", url.Values{"content": {"hello feed"}}, author.ID)
	require.Equal(t, http.StatusFound, w.Code)

	w = ts.do(t, http.MethodGet, "/", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello feed")

	var msg models.Message
	require.NoError(t, ts.db.First(&msg).Error)
	likePath := idPath("/messages/", msg.ID) + "/like"

	w = ts.do(t, http.MethodPost, likePath, url.Values{}, fan.ID)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, idPath("/users/", author.ID), w.Header().Get("Location"))

	liked, err := ts.store.HasLiked(context.Background(), fan.ID, msg.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	ts.do(t, http.MethodPost, likePath, url.Values{}, fan.ID)
	liked, err = ts.store.HasLiked(context.Background(), fan.ID, msg.ID)
	require.NoError(t, err)
	assert.False(t, liked, "second post removes the like")
}

func TestToggleLike_HiddenMessage(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	author := ts.user(t, "author")
	stranger := ts.user(t, "stranger")

	msg, err := ts.store.PostMessage(ctx, author.ID, "followers only")
	require.NoError(t, err)
	_, err = ts.store.TogglePrivacy(ctx, author.ID)
	require.NoError(t, err)

	w := ts.do(t, http.MethodPost, idPath("/messages/", msg.ID)+"/like", url.Values{}, stranger.ID)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, []Flash{{Category: FlashDanger, Message: "This account is private."}}, flashes(t, w))

	liked, err := ts.store.HasLiked(ctx, stranger.ID, msg.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	w = ts.do(t, http.MethodPost, idPath("/messages/", msg.ID)+"/like", url.Values{}, author.ID)
	require.Equal(t, http.StatusFound, w.Code)
	liked, err = ts.store.HasLiked(ctx, author.ID, msg.ID)
	require.NoError(t, err)
	assert.True(t, liked, "owner can like own private message")
}
