// Package messaging publica los eventos de ventas e inventario en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/pkg/config"
)

// HeaderEventType header con el tipo de evento (venta.creada, stock.ajustado).
const HeaderEventType = "tipo"

// MessageWriter lo implementa *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter crea el writer del tópico configurado.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{}, // misma key -> misma partición
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireOne,
	}
}

var _ ports.EventPublisher = (*KafkaEventPublisher)(nil)

// KafkaEventPublisher implementa ports.EventPublisher.
// Las ventas usan el ID de venta como key; los ajustes de stock el ID de producto,
// así los cambios de un mismo producto quedan ordenados en una partición.
type KafkaEventPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaEventPublisher construye el publicador. timeout acota cada escritura (0 = sin límite propio).
func NewKafkaEventPublisher(writer MessageWriter, timeout time.Duration) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer, timeout: timeout}
}

type envelope struct {
	Type string `json:"tipo"`
	Data any    `json:"datos"`
}

// PublishSaleCreated publica venta.creada.
func (p *KafkaEventPublisher) PublishSaleCreated(ctx context.Context, event ports.SaleCreatedEvent) error {
	msg, err := newMessage(ports.EventSaleCreated, event.SaleID, event)
	if err != nil {
		return err
	}
	return p.write(ctx, msg)
}

// PublishStockAdjusted publica un stock.ajustado por movimiento, en un solo lote.
func (p *KafkaEventPublisher) PublishStockAdjusted(ctx context.Context, events ...ports.StockAdjustedEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := newMessage(ports.EventStockAdjusted, e.ProductID, e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.write(ctx, msgs...)
}

// Close cierra el writer.
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaEventPublisher) write(ctx context.Context, msgs ...kafka.Message) error {
	// Se publica después del commit: la cancelación del request no debe descartar el evento.
	ctx = context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka: escribir %d mensaje(s): %w", len(msgs), err)
	}
	return nil
}

func newMessage(eventType, key string, data any) (kafka.Message, error) {
	value, err := json.Marshal(envelope{Type: eventType, Data: data})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: serializar %s: %w", eventType, err)
	}
	return kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte(eventType)}},
	}, nil
}
