package consumer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go-attendance/internal/bootstrap"
	"go-attendance/internal/events"
	"go-attendance/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	fetchRetryBase = 200 * time.Millisecond
	fetchRetryMax  = 5 * time.Second
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLifecycleEvents writes every employee, attendance and leave event to
// the audit log. Offsets are committed only after the entry is written.
func ConsumeLifecycleEvents(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle_audit")
	log.Info("lifecycle audit consumer started")

	backoff := fetchRetryBase
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle audit consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err), zap.Duration("retry_in", backoff))
			select {
			case <-ctx.Done():
				log.Info("lifecycle audit consumer stopped")
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, fetchRetryMax)
			continue
		}
		backoff = fetchRetryBase

		handleMessage(ctx, msg, audit, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, audit bootstrap.AuditLogger, log *zap.Logger) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil || env.EventType == "" {
		// poison message: logged and skipped
		log.Error("decode lifecycle event failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}

	var payload map[string]any
	_ = json.Unmarshal(msg.Value, &payload)

	if env.RequestID != "" {
		ctx = contextutil.WithLogger(ctx, log.With(zap.String("request_id", env.RequestID)))
	}

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  strings.ToUpper(env.EventType),
		Message: "lifecycle event consumed",
		Meta: map[string]any{
			"topic":       msg.Topic,
			"partition":   msg.Partition,
			"offset":      msg.Offset,
			"employee_id": env.EmployeeID,
			"occurred_at": env.OccurredAt,
			"payload":     payload,
		},
	})
}
