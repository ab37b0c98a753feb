package repository

import "context"

// TelegramRepository defines the interface for posting messages to the
// configured Telegram chat. Messages are routed to forum topics by topicID;
// an empty topicID (or "1") targets the general chat.
type TelegramRepository interface {
	SendMessage(ctx context.Context, topicID, text string) (int64, error)
	EditMessage(ctx context.Context, topicID string, messageID int64, text string) error
}
