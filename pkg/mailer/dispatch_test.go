package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

type sentMail struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func TestDeliverRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	job := &EmailJob{
		To:       "alice@x.com",
		Template: mailtpl.NewComment,
		Data:     mailtpl.NewCommentData(mailtpl.Brand{AppName: "Blogly"}, "", "bob@x.com", "b1", "Hi", "nice"),
	}

	require.NoError(t, Deliver(context.Background(), s, job))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "alice@x.com", s.sent[0].to)
	assert.Equal(t, `bob@x.com commented on "Hi"`, s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "Hi alice@x.com", "recipient is filled from To")
}

func TestPreparePlainJob(t *testing.T) {
	subject, text, html, err := Prepare(&EmailJob{To: "a@x.com", Subject: "s", Text: "t"})
	require.NoError(t, err)
	assert.Equal(t, "s", subject)
	assert.Equal(t, "t", text)
	assert.Empty(t, html)
}

func TestPrepareRejectsBadJobs(t *testing.T) {
	for name, job := range map[string]*EmailJob{
		"no recipient":     {Text: "x"},
		"empty body":       {To: "a@x.com"},
		"unknown template": {To: "a@x.com", Template: "login_otp"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := Prepare(job)
			assert.ErrorIs(t, err, ErrBadJob)
		})
	}
}

func TestDeliverPassesSendError(t *testing.T) {
	boom := errors.New("mailgun down")
	err := Deliver(context.Background(), &fakeSender{err: boom}, &EmailJob{To: "a@x.com", Text: "x"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrBadJob)
}
