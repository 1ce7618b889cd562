package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"course-go-avito-dispatch/internal/logx"
	"course-go-avito-dispatch/internal/service/events"
)

// HandleFunc processes a single events.Event from Kafka
type HandleFunc func(context.Context, events.Event) error

// Consumer wraps a Sarama consumer group and dispatches delivery events to a handler
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID, topic string, h HandleFunc, logger logx.Logger) (*Consumer, error) {
	// не стартую если у кафки нет настроек
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger,
	}, nil
}

// Run starts the consumer
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Any("err", err))
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.group == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var dto EventDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			h.c.logger.Warn("kafka bad json", logx.Any("err", err))
			sess.MarkMessage(msg, "")
			continue
		}
		ev := ToDomain(dto)
		if ev.DeliveryID <= 0 {
			h.c.logger.Warn("kafka empty delivery_id")
			sess.MarkMessage(msg, "")
			continue
		}

		if err := h.c.handler(sess.Context(), ev); err != nil {
			var perm PermanentError
			if errors.As(err, &perm) {
				// ретраить бессмысленно, пропускаем сообщение
				h.c.logger.Warn("kafka permanent handle error, skip",
					logx.Int64("delivery_id", ev.DeliveryID),
					logx.Any("err", err),
				)
				sess.MarkMessage(msg, "")
				continue
			}
			h.c.logger.Error("kafka handle failed, retry",
				logx.Int64("delivery_id", ev.DeliveryID),
				logx.String("status", ev.Status),
				logx.Any("err", err),
			)
			return err
		}

		sess.MarkMessage(msg, "")
	}
	return nil
}
