package mailer

import "embed"

const (
	FromName                   = "BizDir"
	maxRetires                 = 3
	ReviewNotificationTemplate = "review_notification.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
