package telegram

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func EscapeMessage(message string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return r.Replace(message)
}

// Notifier relays ops events (user feedback, provider exhaustion alerts)
// to the admin chats. Disabled when no bot token is configured.
type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
}

func NewNotifier() *Notifier {
	token := os.Getenv("TG_TOKEN")
	if token == "" {
		log.Println("TG_TOKEN not set, admin notifications disabled")
		return &Notifier{}
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Println("Error tg bot init", err)
		return &Notifier{}
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	// comma separated chat ids from env
	var chatIDs []int64
	for _, raw := range strings.Split(os.Getenv("TG_ADMIN_CHAT_IDS"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("Skipping invalid admin chat id %q", raw)
			continue
		}
		chatIDs = append(chatIDs, id)
	}
	return &Notifier{bot: bot, chatIDs: chatIDs}
}

// Notify is best effort, a Telegram outage must never fail a request.
func (n *Notifier) Notify(message string) {
	if n == nil || n.bot == nil || len(n.chatIDs) == 0 {
		fmt.Println("Admin notification skipped:", message)
		return
	}
	for _, chatID := range n.chatIDs {
		msg := tgbotapi.NewMessage(chatID, EscapeMessage(message))
		msg.ParseMode = "markdown"
		if _, err := n.bot.Send(msg); err != nil {
			log.Printf("Failed to notify admin chat %v: %v", chatID, err)
		}
	}
}
