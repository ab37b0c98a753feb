package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/utils"
)

// TelegramRepository posts messages to the configured Telegram chat.
// Rate-limit responses (429) are retried with the retry_after hint from the
// Bot API when present, falling back to exponential backoff.
type TelegramRepository struct {
	logger  logger.Logger
	baseURL string
	token   string
	chatID  string
	client  *http.Client
	backoff utils.Backoff
	// pause after each successful call, keeps under the Bot API rate limit
	sendPause time.Duration
}

// NewTelegramRepository creates a new Telegram repository
func NewTelegramRepository(cfg *config.Config, logger logger.Logger) *TelegramRepository {
	return &TelegramRepository{
		logger:  logger,
		baseURL: cfg.TelegramBaseURL,
		token:   cfg.TelegramBotToken,
		chatID:  cfg.TelegramChatID,
		client:  &http.Client{Timeout: 30 * time.Second},
		backoff: utils.Backoff{
			Base:        1 * time.Second,
			Cap:         60 * time.Second,
			MaxAttempts: 5,
		},
		sendPause: 1 * time.Second,
	}
}

type telegramResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
	Description string `json:"description"`
	Parameters  *struct {
		RetryAfter float64 `json:"retry_after"`
	} `json:"parameters"`
}

// SendMessage posts an HTML message to a topic and returns its message ID
func (r *TelegramRepository) SendMessage(ctx context.Context, topicID, text string) (int64, error) {
	body := map[string]interface{}{
		"chat_id":                  r.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	// "1" is the general topic, the Bot API rejects it as a thread id
	if topicID != "" && topicID != "1" {
		body["message_thread_id"] = topicID
	}

	response, err := r.callWithRetry(ctx, topicID, "sendMessage", body)
	if err != nil {
		return 0, err
	}
	return response.Result.MessageID, nil
}

// EditMessage replaces the text of a previously sent message
func (r *TelegramRepository) EditMessage(ctx context.Context, topicID string, messageID int64, text string) error {
	body := map[string]interface{}{
		"chat_id":                  r.chatID,
		"message_id":               messageID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	if topicID != "" && topicID != "1" {
		body["message_thread_id"] = topicID
	}

	_, err := r.callWithRetry(ctx, topicID, "editMessageText", body)
	return err
}

// callWithRetry posts to a Bot API method, retrying rate-limited calls until
// the attempt budget is spent
func (r *TelegramRepository) callWithRetry(ctx context.Context, topicID, method string, body map[string]interface{}) (*telegramResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/%s", r.baseURL, r.token, method)

	for attempt := 0; ; attempt++ {
		response, retryable, err := r.call(ctx, apiURL, jsonData)
		if err == nil {
			utils.Wait(ctx, r.sendPause)
			return response, nil
		}

		if !retryable {
			return nil, &entity.DeliveryError{Topic: topicID, Err: err}
		}
		if r.backoff.Exhausted(attempt + 1) {
			return nil, &entity.DeliveryError{
				Topic: topicID,
				Err:   fmt.Errorf("exceeded %d attempts: %w", r.backoff.MaxAttempts, err),
			}
		}

		delay := r.backoff.Delay(attempt + 1)
		if response != nil && response.Parameters != nil && response.Parameters.RetryAfter > 0 {
			delay = time.Duration(response.Parameters.RetryAfter * float64(time.Second))
		}

		r.logger.Warn("Telegram rate limited, retrying",
			"method", method,
			"attempt", attempt+1,
			"delay", delay.String())

		if err := utils.Wait(ctx, delay); err != nil {
			return nil, &entity.DeliveryError{Topic: topicID, Err: err}
		}
	}
}

// call performs one Bot API request. The second return value tells the caller
// whether the failure was a rate limit worth retrying.
func (r *TelegramRepository) call(ctx context.Context, apiURL string, jsonData []byte) (*telegramResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response: %w", err)
	}

	var response telegramResponse
	if decodeErr := json.Unmarshal(respBody, &response); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return nil, false, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &response, true, fmt.Errorf("rate limited: %s", response.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return &response, false, nil
}
