package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottok123/getUpdates", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "42", r.Form.Get("offset"))
		assert.Equal(t, "30", r.Form.Get("timeout"))
		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":42,"message":{"message_id":1,"chat":{"id":7},"text":"سلام"}},
			{"update_id":43,"message":{"message_id":2,"chat":{"id":7},"text":"/help"}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("tok123", srv.URL)
	updates, err := c.GetUpdates(context.Background(), 42, 30)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, int64(42), updates[0].UpdateID)
	assert.Equal(t, int64(7), updates[0].Message.Chat.ID)
	assert.Equal(t, "سلام", updates[0].Message.Text)
}

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottok/sendMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "9", r.Form.Get("chat_id"))
		assert.Equal(t, "done", r.Form.Get("text"))
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", srv.URL)
	require.NoError(t, c.SendMessage(context.Background(), 9, "done"))
}

func TestSendPhotoMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottok/sendPhoto", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "5", r.FormValue("chat_id"))
		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "card_1.jpg", header.Filename)
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", srv.URL)
	require.NoError(t, c.SendPhoto(context.Background(), 5, "card_1.jpg", []byte{0xFF, 0xD8}))
}

func TestAPIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	c := NewClient("bad", srv.URL)
	err := c.SendMessage(context.Background(), 1, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}
