package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CommissionAlert 分佣相关告警内容
type CommissionAlert struct {
	Level     string
	Title     string
	OrderID   string
	EventType string
	Message   string
	Data      interface{}
}

// FormatCommissionAlert 组装 Markdown V2 正文（订单、事件、说明 + 单行 JSON 附加数据）
func FormatCommissionAlert(a CommissionAlert, at time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*订单号:* %s\n", escapeMarkdown(a.OrderID)))
	if a.EventType != "" {
		sb.WriteString(fmt.Sprintf("*事件:* %s\n", escapeMarkdown(a.EventType)))
	}
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", escapeMarkdown(at.Format("2006-01-02 15:04:05"))))
	if a.Message != "" {
		sb.WriteString(fmt.Sprintf("*说明:* %s\n", escapeMarkdown(a.Message)))
	}
	if a.Data != nil {
		raw, err := json.Marshal(a.Data)
		if s := strings.TrimSpace(string(raw)); err == nil && s != "" && s != "{}" && s != "null" {
			sb.WriteString("\n*附加数据:*\n")
			sb.WriteString(fmt.Sprintf("`%s`\n", escapeMarkdown(s)))
		}
	}
	return sb.String()
}

// NotifyCommissionAlert 异步推送分佣告警
func NotifyCommissionAlert(chatID string, a CommissionAlert) {
	Notify(chatID, a.Level, a.Title, FormatCommissionAlert(a, time.Now()), true)
}

// escapeMarkdown 转义 Telegram Markdown V2 特殊字符
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(s)
}
