package listeners

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageReader fetches without committing so an event is only acknowledged
// once it has been applied or rejected for good.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const defaultRetryDelay = time.Second

type DiscountApplier interface {
	ApplyEvent(ctx context.Context, ev services.DiscountEvent) (*services.DiscountSyncReport, error)
}

// NewKafkaReader builds a consumer-group reader for the admin discount topic.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}

// DiscountListener keeps product and bundle admin pricing in sync with
// discounts published by the admin service.
type DiscountListener struct {
	reader     MessageReader
	discounts  DiscountApplier
	log        logrus.FieldLogger
	retryDelay time.Duration
}

func NewDiscountListener(reader MessageReader, discounts DiscountApplier, log logrus.FieldLogger) *DiscountListener {
	return &DiscountListener{reader: reader, discounts: discounts, log: log, retryDelay: defaultRetryDelay}
}

func (l *DiscountListener) Start(ctx context.Context) {
	l.log.Info("starting discount listener")
	defer func() {
		if err := l.reader.Close(); err != nil {
			l.log.WithError(err).Warn("failed to close kafka reader")
		}
	}()
	for {
		select {
		case <-ctx.Done():
			l.log.Info("stopping discount listener")
			return
		default:
			msg, err := l.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.log.WithError(err).Error("failed to fetch kafka message")
				time.Sleep(l.retryDelay)
				continue
			}
			for l.processMessage(ctx, msg) {
				select {
				case <-ctx.Done():
					l.log.Info("stopping discount listener")
					return
				case <-time.After(l.retryDelay):
				}
			}
			if err := l.reader.CommitMessages(ctx, msg); err != nil {
				l.log.WithError(err).WithField("offset", msg.Offset).Error("failed to commit kafka message")
			}
		}
	}
}

// processMessage reports whether the event should be retried. Only internal
// failures are retried; bad payloads and rejected events are logged and
// skipped so one poison message cannot stall the partition.
func (l *DiscountListener) processMessage(ctx context.Context, msg kafka.Message) bool {
	entry := l.log.WithFields(logrus.Fields{"topic": msg.Topic, "partition": msg.Partition, "offset": msg.Offset})

	var ev services.DiscountEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		entry.WithError(err).Error("failed to unmarshal discount event")
		return false
	}

	report, err := l.discounts.ApplyEvent(ctx, ev)
	if err != nil {
		retry := apperror.Is(err, apperror.CategoryInternal)
		entry.WithError(err).WithFields(logrus.Fields{
			"discount_id": ev.DiscountID,
			"retry":       retry,
		}).Error("failed to apply discount event")
		return retry
	}
	if len(report.Missing) > 0 {
		entry.WithFields(logrus.Fields{
			"discount_id": ev.DiscountID,
			"missing":     report.Missing,
		}).Warn("discount references unknown products or bundles")
	}
	return false
}
