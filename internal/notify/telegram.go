package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type TelegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode"`
}

// apiBase 测试中替换为本地服务
var apiBase = "https://api.telegram.org"

var httpClient = &http.Client{Timeout: 10 * time.Second}

func init() {
	_ = godotenv.Load() // 自动加载 .env 文件
}

func SendTelegramMessage(chatID string, content string) error {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		return fmt.Errorf("missing TELEGRAM_BOT_TOKEN in env")
	}

	msg := TelegramMessage{
		ChatID: chatID,
		Text:   content,
		Parse:  "MarkdownV2",
	}
	body, _ := json.Marshal(msg)
	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, botToken)
	resp, err := httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

// Notify 发送告警；chatID 为空时只记日志
func Notify(chatID, level, title, text string, async bool) {
	content := fmt.Sprintf("%s *%s*\n%s", levelIcon(level), escapeMarkdown(title), text)
	if chatID == "" {
		logrus.WithFields(logrus.Fields{"level": level, "title": title}).Debug("[NOTIFY] chat id not configured, skip")
		return
	}
	send := func() {
		if err := SendTelegramMessage(chatID, content); err != nil {
			logrus.WithError(err).WithField("title", title).Warn("[NOTIFY] telegram send failed")
		}
	}
	if async {
		go send()
		return
	}
	send()
}

func levelIcon(level string) string {
	switch level {
	case "critical":
		return "🚨"
	case "warn":
		return "⚠️"
	default:
		return "ℹ️"
	}
}
