package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const telegramAPI = "https://api.telegram.org"

// TelegramTransport sends messages to one chat via the Telegram Bot API.
type TelegramTransport struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Client   *http.Client
}

// NewTelegramTransport creates a transport for the given bot and chat.
func NewTelegramTransport(botToken, chatID string, client *http.Client) *TelegramTransport {
	return &TelegramTransport{
		BaseURL:  telegramAPI,
		BotToken: botToken,
		ChatID:   chatID,
		Client:   client,
	}
}

func (t *TelegramTransport) Name() string { return "telegram" }

// Send sends a plain-text message to the configured chat.
func (t *TelegramTransport) Send(ctx context.Context, text string) (string, error) {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.BotToken)
	payload := map[string]string{
		"chat_id": t.ChatID,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
		Result      struct {
			MessageID int `json:"message_id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode telegram response: %w", err)
	}
	if !result.OK {
		return "", fmt.Errorf("telegram API error: %s", result.Description)
	}
	return fmt.Sprintf("delivered (message_id=%d)", result.Result.MessageID), nil
}
