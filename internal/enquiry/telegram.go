package enquiry

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier posts enquiries to a staff chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, e Enquiry) error {
	text := fmt.Sprintf("New website enquiry\n\nName: %s\nEmail: %s", e.Name, e.Email)
	if e.Phone != "" {
		text += fmt.Sprintf("\nPhone: %s", e.Phone)
	}
	if e.Treatment != "" {
		text += fmt.Sprintf("\nTreatment: %s", e.Treatment)
	}
	text += fmt.Sprintf("\n\n%s", e.Message)

	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("failed to send enquiry notification: %w", err)
	}
	return nil
}
