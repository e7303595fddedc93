package templates

import (
	"strings"
	"time"
	"unicode/utf8"
)

const excerptRunes = 140

// Brand identifies the deployment in outgoing mail.
type Brand struct {
	AppName string
	BaseURL string
}

// Option pattern
type Option func(*EmailData)

func WithActor(email string) Option { return func(d *EmailData) { d.ActorEmail = email } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithBlog(id, title string) Option {
	return func(d *EmailData) {
		d.BlogID = id
		d.BlogTitle = title
		if d.AppBaseURL != "" {
			d.BlogURL = strings.TrimRight(d.AppBaseURL, "/") + "/blogs/" + id
		}
	}
}

func WithExcerpt(text string) Option {
	return func(d *EmailData) { d.Excerpt = Excerpt(text) }
}

// Excerpt shortens text to a single-line preview.
func Excerpt(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s
	}
	r := []rune(s)
	return string(r[:excerptRunes]) + "…"
}

func NewBaseEmailData(b Brand, typ, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Type:           typ,
		RecipientEmail: recipient,
		AppName:        b.AppName,
		AppBaseURL:     b.BaseURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(b Brand, recipient string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, Welcome, recipient, opts...))
}

func NewCommentData(b Brand, recipient, actor, blogID, blogTitle, content string, opts ...Option) map[string]any {
	opts = append([]Option{WithActor(actor), WithBlog(blogID, blogTitle), WithExcerpt(content)}, opts...)
	return ToMap(NewBaseEmailData(b, NewComment, recipient, opts...))
}

func NewReplyData(b Brand, recipient, actor, blogID, content string, opts ...Option) map[string]any {
	opts = append([]Option{WithActor(actor), WithBlog(blogID, ""), WithExcerpt(content)}, opts...)
	return ToMap(NewBaseEmailData(b, NewReply, recipient, opts...))
}
