package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

// Notifier queues notification email. A nil Notifier or one without a
// Publisher does nothing, and publish failures never fail the caller.
type Notifier struct {
	Pub    Publisher
	Brand  mailtpl.Brand
	Logger *logrus.Logger
}

func NewNotifier(pub Publisher, brand mailtpl.Brand, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Brand: brand, Logger: logger}
}

// Enabled reports whether jobs are actually published.
func (n *Notifier) Enabled() bool {
	return n != nil && n.Pub != nil
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if !n.Enabled() {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.Brand, u.Email, mailtpl.WithTime(u.CreatedAt)),
	})
}

// NewComment tells the blog author about a comment written by someone else.
func (n *Notifier) NewComment(ctx context.Context, blog *entity.Blog, c *entity.Comment, actor *entity.User) {
	if !n.Enabled() || blog.Author == nil || blog.AuthorID == c.AuthorID {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       blog.Author.Email,
		Template: mailtpl.NewComment,
		Data: mailtpl.NewCommentData(n.Brand, blog.Author.Email, emailOf(actor), blog.ID, blog.Title, c.Content,
			mailtpl.WithTime(c.CreatedAt)),
	})
}

// NewReply tells the comment author about a reply written by someone else.
func (n *Notifier) NewReply(ctx context.Context, c *entity.Comment, r entity.Reply, actor *entity.User) {
	if !n.Enabled() || c.Author == nil || c.AuthorID == r.AuthorID {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       c.Author.Email,
		Template: mailtpl.NewReply,
		Data: mailtpl.NewReplyData(n.Brand, c.Author.Email, emailOf(actor), c.BlogID, r.Content,
			mailtpl.WithTime(r.CreatedAt)),
	})
}

func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := n.Pub.PublishJSON(c, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("template", job.Template).Warn("publish notification failed")
	}
}

func emailOf(u *entity.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}
