package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"presyo/internal"
	"presyo/internal/config"
	"presyo/internal/pipeline"
)

const reconnectDelay = 5 * time.Second

// Worker consumes scrape requests from the request queue and publishes the
// parsed bulletin payload to the result queue. Messages are acked only after
// the result has been published, so a crash mid-bulletin redelivers the
// request.
type Worker struct {
	cfg config.Config
	svc *pipeline.ProcessingService
}

func NewWorker(cfg config.Config, svc *pipeline.ProcessingService) *Worker {
	return &Worker{cfg: cfg, svc: svc}
}

// Run keeps a consumer session alive until ctx is cancelled, reconnecting
// after broker failures.
func (w *Worker) Run(ctx context.Context) error {
	if w.cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is not configured")
	}

	for {
		if err := w.runSession(ctx); err != nil {
			fmt.Printf("worker session error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *Worker) runSession(ctx context.Context) error {
	conn, err := amqp.Dial(w.cfg.AMQPURL)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	for _, name := range []string{w.cfg.AMQPRequestQueue, w.cfg.AMQPResultQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}
	}

	// One unacked message at a time: a scrape takes seconds and redelivery
	// must not pile up duplicates.
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(w.cfg.AMQPRequestQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	fmt.Printf("worker consuming queue=%s\n", w.cfg.AMQPRequestQueue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := w.handleDelivery(ctx, ch, delivery); err != nil {
				fmt.Printf("worker request failed: %v\n", err)
				_ = delivery.Nack(false, false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, ch *amqp.Channel, delivery amqp.Delivery) error {
	var req internal.ScrapeRequest
	if err := json.Unmarshal(delivery.Body, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	pageURL := req.TargetURL
	if pageURL == "" {
		pageURL = w.cfg.DATargetURL
	}

	result, err := w.svc.ScrapeLatest(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("scrape %s: %w", pageURL, err)
	}

	if err := w.publishResult(ctx, ch, result.Payload); err != nil {
		return err
	}

	fmt.Printf("worker done bulletin=%d records=%d markets=%d\n",
		result.BulletinID, len(result.Payload.PriceData), len(result.Payload.CoveredMarkets))
	return nil
}

func (w *Worker) publishResult(ctx context.Context, ch *amqp.Channel, payload internal.ScrapePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", w.cfg.AMQPResultQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish result: %w", err)
	}
	return nil
}
