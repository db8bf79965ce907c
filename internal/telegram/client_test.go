package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token", 2*time.Second, WithBaseURL(srv.URL))
}

func TestGetUpdates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getUpdates", r.URL.Path)

		var params map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.EqualValues(t, 5, params["offset"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"result": []map[string]interface{}{
				{
					"update_id": 5,
					"message": map[string]interface{}{
						"message_id": 1,
						"from":       map[string]interface{}{"id": 42},
						"chat":       map[string]interface{}{"id": 42, "type": "private"},
						"text":       "/start",
					},
				},
			},
		})
	})

	updates, err := client.GetUpdates(context.Background(), 5, 0)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.EqualValues(t, 5, updates[0].UpdateID)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, "/start", updates[0].Message.Text)
}

func TestSendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)

		var params SendMessageParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.EqualValues(t, 42, params.ChatID)
		assert.Equal(t, "привет", params.Text)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	})

	err := client.SendMessage(context.Background(), SendMessageParams{ChatID: 42, Text: "привет"})

	assert.NoError(t, err)
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":          false,
			"description": "Bad Request: chat not found",
		})
	})

	err := client.SendMessage(context.Background(), SendMessageParams{ChatID: 1, Text: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}
