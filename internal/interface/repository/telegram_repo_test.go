package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func telegramConfig(baseURL string) *config.Config {
	return &config.Config{
		TelegramBotToken: "bot-token",
		TelegramBaseURL:  baseURL,
		TelegramChatID:   "-100123",
	}
}

func newTestTelegramRepo(baseURL string) *TelegramRepository {
	repo := NewTelegramRepository(telegramConfig(baseURL), logger.NewLogger())
	repo.sendPause = 0
	repo.backoff = utils.Backoff{Base: time.Millisecond, Cap: 10 * time.Millisecond, MaxAttempts: 3}
	return repo
}

func TestTelegram_SendMessage(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botbot-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"ok": true, "result": {"message_id": 42}}`))
	}))
	defer server.Close()

	repo := newTestTelegramRepo(server.URL)
	messageID, err := repo.SendMessage(context.Background(), "7", "<b>hello</b>")
	require.NoError(t, err)
	assert.Equal(t, int64(42), messageID)

	assert.Equal(t, "-100123", received["chat_id"])
	assert.Equal(t, "<b>hello</b>", received["text"])
	assert.Equal(t, "HTML", received["parse_mode"])
	assert.Equal(t, "7", received["message_thread_id"])
}

func TestTelegram_GeneralTopicOmitsThreadID(t *testing.T) {
	for _, topicID := range []string{"", "1"} {
		var received map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{"ok": true, "result": {"message_id": 1}}`))
		}))

		repo := newTestTelegramRepo(server.URL)
		_, err := repo.SendMessage(context.Background(), topicID, "hi")
		require.NoError(t, err)
		assert.NotContains(t, received, "message_thread_id")
		server.Close()
	}
}

func TestTelegram_EditMessage(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botbot-token/editMessageText", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"ok": true, "result": {"message_id": 42}}`))
	}))
	defer server.Close()

	repo := newTestTelegramRepo(server.URL)
	err := repo.EditMessage(context.Background(), "7", 42, "updated")
	require.NoError(t, err)
	assert.Equal(t, float64(42), received["message_id"])
	assert.Equal(t, "updated", received["text"])
}

func TestTelegram_RateLimitRetriesWithRetryAfter(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"ok": false, "description": "Too Many Requests", "parameters": {"retry_after": 0.001}}`))
			return
		}
		w.Write([]byte(`{"ok": true, "result": {"message_id": 7}}`))
	}))
	defer server.Close()

	repo := newTestTelegramRepo(server.URL)
	messageID, err := repo.SendMessage(context.Background(), "7", "hi")
	require.NoError(t, err)
	assert.Equal(t, int64(7), messageID)
	assert.Equal(t, 3, attempts)
}

func TestTelegram_RateLimitExhaustsAttempts(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"ok": false, "description": "Too Many Requests"}`))
	}))
	defer server.Close()

	repo := newTestTelegramRepo(server.URL)
	_, err := repo.SendMessage(context.Background(), "7", "hi")
	require.Error(t, err)

	var deliveryErr *entity.DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, "7", deliveryErr.Topic)
	assert.Equal(t, 3, attempts)
}

func TestTelegram_NonRateLimitErrorFailsImmediately(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "description": "Bad Request: chat not found"}`))
	}))
	defer server.Close()

	repo := newTestTelegramRepo(server.URL)
	_, err := repo.SendMessage(context.Background(), "7", "hi")
	require.Error(t, err)

	var deliveryErr *entity.DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, 1, attempts)
}
