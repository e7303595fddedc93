package queue

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/pkg/mailer"
)

// Acknowledger is the part of amqp.Delivery the worker settles messages with.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Outcome of handling one message.
type Outcome int

const (
	Acked Outcome = iota
	Dropped
	Requeued
)

// HandleEmail decodes one job and delivers it. Jobs that can never succeed
// are dropped; send failures are requeued.
func HandleEmail(ctx context.Context, s mailer.Sender, body []byte, ack Acknowledger, logger *logrus.Logger) Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Warn("bad message")
		_ = ack.Nack(false, false)
		return Dropped
	}

	err := mailer.Deliver(ctx, s, &job)
	switch {
	case err == nil:
		_ = ack.Ack(false)
		logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
		return Acked
	case errors.Is(err, mailer.ErrBadJob):
		logger.WithError(err).WithField("template", job.Template).Warn("dropping email job")
		_ = ack.Nack(false, false)
		return Dropped
	default:
		logger.WithError(err).WithField("to", job.To).Error("send failed")
		_ = ack.Nack(false, true)
		return Requeued
	}
}

var _ Acknowledger = amqp.Delivery{}
