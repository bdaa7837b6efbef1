// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/artemmak/showreel/config"
)

const defaultTelegramAPIBaseURL = "https://api.telegram.org"

// ErrTelegramNotConfigured is returned when the bot token or chat id is missing
var ErrTelegramNotConfigured = errors.New("telegram not configured")

// NotificationKind selects the message template
type NotificationKind string

const (
	NotificationContactForm       NotificationKind = "contact_form"
	NotificationCalculatorRequest NotificationKind = "calculator_request"
)

// ProjectNotification is the payload relayed to the studio chat for a new request
type ProjectNotification struct {
	Kind            NotificationKind
	Name            string
	Telegram        string
	Email           string
	Description     string
	Attachments     []string
	Budget          int64
	DurationSeconds int
	Pace            string
	HasScenario     bool
	NDA             string
	Deadline        string
	Revisions       string
}

// NotificationService relays new project requests to the studio
type NotificationService interface {
	NotifyProjectRequest(ctx context.Context, n ProjectNotification) error
}

// TelegramNotifier posts HTML messages through the Telegram Bot API
type TelegramNotifier struct {
	cfg    config.TelegramConfig
	client *http.Client
}

// NewTelegramNotifier creates a notifier; a missing token or chat id makes every send return ErrTelegramNotConfigured
func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultTelegramAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TelegramNotifier{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type telegramSendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (t *TelegramNotifier) NotifyProjectRequest(ctx context.Context, n ProjectNotification) error {
	if t.cfg.BotToken == "" || t.cfg.ChatID == "" {
		return ErrTelegramNotConfigured
	}

	payload, err := json.Marshal(telegramSendMessageRequest{
		ChatID:    t.cfg.ChatID,
		Text:      FormatProjectNotification(n),
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	endpoint := strings.TrimRight(t.cfg.APIBaseURL, "/") + "/bot" + t.cfg.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", t.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", t.redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram http status: %d: %s", resp.StatusCode, string(body))
	}

	var tr telegramResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if !tr.OK {
		return fmt.Errorf("telegram rejected message: %s", tr.Description)
	}
	return nil
}

// redact strips the bot token from errors that embed the request URL
func (t *TelegramNotifier) redact(err error) error {
	var ue *neturl.Error
	if errors.As(err, &ue) {
		return &neturl.Error{
			Op:  ue.Op,
			URL: strings.ReplaceAll(ue.URL, t.cfg.BotToken, "<redacted>"),
			Err: ue.Err,
		}
	}
	if strings.Contains(err.Error(), t.cfg.BotToken) {
		return errors.New(strings.ReplaceAll(err.Error(), t.cfg.BotToken, "<redacted>"))
	}
	return err
}

// FormatProjectNotification renders the Russian HTML message posted to the studio chat.
// User-supplied values are HTML-escaped.
func FormatProjectNotification(n ProjectNotification) string {
	var b strings.Builder
	esc := html.EscapeString

	switch n.Kind {
	case NotificationContactForm:
		b.WriteString("🔔 <b>Новая заявка с формы</b>\n\n")
		b.WriteString("👤 <b>Имя:</b> " + esc(n.Name) + "\n")
		if n.Telegram != "" {
			b.WriteString("📱 <b>Telegram:</b> " + esc(n.Telegram) + "\n")
		}
		if n.Email != "" {
			b.WriteString("📧 <b>Email:</b> " + esc(n.Email) + "\n")
		}
		if n.Description != "" {
			b.WriteString("\n📝 <b>Описание:</b>\n" + esc(n.Description) + "\n")
		}
		if len(n.Attachments) > 0 {
			fmt.Fprintf(&b, "\n📎 <b>Вложения:</b> %d файл(ов)\n", len(n.Attachments))
			for i, url := range n.Attachments {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, esc(url))
			}
		}
	case NotificationCalculatorRequest:
		b.WriteString("🧮 <b>Заявка из калькулятора</b>\n\n")
		if n.Name != "" {
			b.WriteString("👤 <b>Имя:</b> " + esc(n.Name) + "\n")
		}
		if n.Telegram != "" {
			b.WriteString("📱 <b>Telegram:</b> " + esc(n.Telegram) + "\n")
		}
		if n.Email != "" {
			b.WriteString("📧 <b>Email:</b> " + esc(n.Email) + "\n")
		}
		if n.Budget != 0 {
			b.WriteString("💰 <b>Бюджет:</b> " + FormatRubles(n.Budget) + " ₽\n")
		}
		if n.DurationSeconds != 0 {
			b.WriteString("⏱ <b>Длительность:</b> " + FormatDuration(n.DurationSeconds) + "\n")
		}
		if n.Pace != "" {
			b.WriteString("🎬 <b>Темп:</b> " + esc(n.Pace) + "\n")
		}
		if n.HasScenario {
			b.WriteString("✍️ <b>Сценарий:</b> нужен\n")
		}
		if n.NDA != "" {
			b.WriteString("🔒 <b>NDA:</b> " + esc(n.NDA) + "\n")
		}
		if n.Deadline != "" {
			b.WriteString("📅 <b>Срок:</b> " + esc(n.Deadline) + " дней\n")
		}
		if n.Revisions != "" {
			b.WriteString("🔄 <b>Правки:</b> " + esc(n.Revisions) + " кругов\n")
		}
		if n.Description != "" {
			b.WriteString("\n📝 <b>Описание:</b>\n" + esc(n.Description) + "\n")
		}
	}

	return b.String()
}

// FormatRubles groups digits in threes with a no-break space, as ru-RU locales do
func FormatRubles(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune('\u00a0')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatDuration renders seconds as "N мин M сек", dropping zero parts
func FormatDuration(seconds int) string {
	mins, secs := seconds/60, seconds%60
	switch {
	case mins == 0:
		return fmt.Sprintf("%d сек", secs)
	case secs == 0:
		return fmt.Sprintf("%d мин", mins)
	default:
		return fmt.Sprintf("%d мин %d сек", mins, secs)
	}
}

// MockNotificationService records notifications in memory
type MockNotificationService struct {
	mu   sync.Mutex
	sent []ProjectNotification
	Err  error
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) NotifyProjectRequest(ctx context.Context, n ProjectNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return m.Err
}

// Sent returns a copy of the recorded notifications
func (m *MockNotificationService) Sent() []ProjectNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProjectNotification, len(m.sent))
	copy(out, m.sent)
	return out
}
