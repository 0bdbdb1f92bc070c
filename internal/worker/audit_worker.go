package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/St1cky1/employee-tracker/internal/entity"
	"github.com/St1cky1/employee-tracker/internal/infrastructure/client"
	"github.com/St1cky1/employee-tracker/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	consumerTag    = "audit_worker"
	reconnectDelay = 5 * time.Second
	storeTimeout   = 5 * time.Second
)

// AuditWorker persists task audit messages from RabbitMQ.
type AuditWorker struct {
	url       string
	queue     string
	auditRepo repository.ITaskAuditRepository
	logger    *slog.Logger
}

func NewAuditWorker(url, queue string, auditRepo repository.ITaskAuditRepository, logger *slog.Logger) *AuditWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditWorker{
		url:       url,
		queue:     queue,
		auditRepo: auditRepo,
		logger:    logger.With("component", "audit_worker"),
	}
}

// Start consumes until ctx is cancelled, reconnecting after broker failures.
func (w *AuditWorker) Start(ctx context.Context) {
	for {
		err := w.run(ctx)
		if ctx.Err() != nil {
			w.logger.Info("audit worker stopped")
			return
		}
		w.logger.Error("audit worker failed, reconnecting", "error", err, "delay", reconnectDelay)

		select {
		case <-ctx.Done():
			w.logger.Info("audit worker stopped")
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *AuditWorker) run(ctx context.Context) error {
	// отдельное соединение для consumer'а
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer channel.Close()

	if _, err := client.DeclareAuditQueue(channel, w.queue); err != nil {
		return err
	}

	msgs, err := channel.Consume(
		w.queue,     // queue
		consumerTag, // consumer tag
		false,       // auto-ack (подтверждаем вручную)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", w.queue, err)
	}

	w.logger.Info("audit worker consuming", "queue", w.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *AuditWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	// 1. Парсим сообщение
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		w.logger.Error("drop malformed audit message", "error", err, "body", string(msg.Body))
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}
	if auditMsg.ID == "" {
		auditMsg.ID = msg.MessageId
	}

	// 2. Конвертируем в TaskAudit
	taskAudit, err := convertToTaskAudit(&auditMsg)
	if err != nil {
		w.logger.Error("drop unconvertible audit message", "error", err, "message_id", auditMsg.ID)
		msg.Nack(false, false)
		return
	}

	// 3. Сохраняем в БД
	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := w.auditRepo.Create(storeCtx, taskAudit); err != nil {
		w.logger.Error("store task audit", "error", err, "message_id", auditMsg.ID)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	// 4. Подтверждаем обработку
	msg.Ack(false)
	w.logger.Debug("task audit stored", "action", taskAudit.Action, "task_id", taskAudit.EntityID)
}

func marshalValues(values map[string]any) (*string, error) {
	if values == nil {
		return nil, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func convertToTaskAudit(msg *entity.AuditMessage) (*entity.TaskAudit, error) {
	if msg.ID == "" {
		return nil, fmt.Errorf("audit message without id")
	}

	oldValues, err := marshalValues(msg.OldValues)
	if err != nil {
		return nil, err
	}
	newValues, err := marshalValues(msg.NewValues)
	if err != nil {
		return nil, err
	}
	changes, err := marshalValues(msg.Changes)
	if err != nil {
		return nil, err
	}

	changedAt := msg.Timestamp
	if changedAt.IsZero() {
		changedAt = time.Now().UTC()
	}

	return &entity.TaskAudit{
		MessageID:  msg.ID,
		Action:     msg.Action,
		EntityType: "task",
		EntityID:   msg.EntityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Changes:    changes,
		ChangedAt:  changedAt,
	}, nil
}
