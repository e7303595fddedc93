package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

// ErrBadJob marks jobs that can never be delivered and must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Prepare resolves the subject and bodies of job, rendering its template
// when one is named.
func Prepare(job *EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template == "" {
		if job.Text == "" && job.HTML == "" {
			return "", "", "", fmt.Errorf("%w: empty body", ErrBadJob)
		}
		return job.Subject, job.Text, job.HTML, nil
	}

	name := strings.ToLower(job.Template)
	if !mailtpl.Known(name) {
		return "", "", "", fmt.Errorf("%w: unknown template %q", ErrBadJob, job.Template)
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
	subject, text, html, err = mailtpl.Render(name, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %w", ErrBadJob, err)
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}

// Deliver prepares and sends job with s.
func Deliver(ctx context.Context, s Sender, job *EmailJob) error {
	subject, text, html, err := Prepare(job)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}
