package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shareit/internal/events"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultQueueKey      = "notifications:queue"
	defaultDeadLetterKey = "notifications:deadletter"
)

// Notification tells one user about a booking event.
type Notification struct {
	Event       string    `json:"event"`
	BookingID   int64     `json:"booking_id"`
	ItemID      int64     `json:"item_id"`
	RecipientID int64     `json:"recipient_id"`
	Status      string    `json:"status"`
	Attempt     int       `json:"attempt"`
	CreatedAt   time.Time `json:"created_at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier delivers notifications to the service log.
type LogNotifier struct {
	logger *zerolog.Logger
}

func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, note Notification) error {
	n.logger.Info().
		Str("event", note.Event).
		Int64("booking_id", note.BookingID).
		Int64("recipient_id", note.RecipientID).
		Str("status", note.Status).
		Msg("Booking notification")
	return nil
}

// NotificationWorker turns booking events into notifications. Tasks go
// through Redis when available and an in-memory queue otherwise.
type NotificationWorker struct {
	notifier      Notifier
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan Notification
	redisQueueKey string
	deadLetterKey string
	pollTimeout   time.Duration
	logger        *zerolog.Logger
}

func NewNotificationWorker(notifier Notifier, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *NotificationWorker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &NotificationWorker{
		notifier:      notifier,
		redis:         redisClient,
		retryPolicy:   retry.withDefaults(),
		queue:         make(chan Notification, 128),
		redisQueueKey: defaultQueueKey,
		deadLetterKey: defaultDeadLetterKey,
		pollTimeout:   time.Second,
		logger:        logger,
	}
}

// Subscribe registers the worker for booking lifecycle events.
func (w *NotificationWorker) Subscribe(bus *events.EventBus) {
	for _, t := range []string{events.EventBookingCreated, events.EventBookingApproved, events.EventBookingRejected} {
		bus.Subscribe(t, w.HandleEvent)
	}
}

// HandleEvent notifies the owner of a new booking and the booker of a
// decision.
func (w *NotificationWorker) HandleEvent(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := event.Decode(&payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}

	recipient := payload.BookerID
	if event.Type == events.EventBookingCreated {
		recipient = payload.OwnerID
	}

	return w.Enqueue(context.Background(), Notification{
		Event:       event.Type,
		BookingID:   payload.BookingID,
		ItemID:      payload.ItemID,
		RecipientID: recipient,
		Status:      payload.Status,
		CreatedAt:   event.CreatedAt,
	})
}

var errQueueFull = errors.New("notification queue is full")

func (w *NotificationWorker) Enqueue(ctx context.Context, n Notification) error {
	if n.RecipientID == 0 {
		return errors.New("recipient is required")
	}

	if w.redis != nil {
		if err := w.push(ctx, w.redisQueueKey, n); err != nil {
			w.logger.Warn().Err(err).Msg("Redis push failed, falling back to memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- n:
		return nil
	default:
		return errQueueFull
	}
}

// Start drains the queues until ctx is done.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("Notification worker started")
	defer w.logger.Info().Msg("Notification worker stopped")

	for {
		if ctx.Err() != nil {
			return
		}

		if n, ok := w.tryLocalQueue(); ok {
			w.process(ctx, &n)
			continue
		}

		if n, ok := w.tryRedis(ctx); ok {
			w.process(ctx, &n)
			continue
		}

		if w.redis == nil {
			select {
			case <-ctx.Done():
				return
			case n := <-w.queue:
				w.process(ctx, &n)
			}
		}
	}
}

func (w *NotificationWorker) tryLocalQueue() (Notification, bool) {
	select {
	case n := <-w.queue:
		return n, true
	default:
		return Notification{}, false
	}
}

func (w *NotificationWorker) tryRedis(ctx context.Context) (Notification, bool) {
	if w.redis == nil {
		return Notification{}, false
	}
	res, err := w.redis.BRPop(ctx, w.pollTimeout, w.redisQueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			w.logger.Error().Err(err).Msg("Redis BRPOP failed")
			time.Sleep(w.pollTimeout)
		}
		return Notification{}, false
	}
	if len(res) != 2 {
		return Notification{}, false
	}
	var n Notification
	if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
		w.logger.Error().Err(err).Msg("Failed to decode queued notification")
		return Notification{}, false
	}
	return n, true
}

func (w *NotificationWorker) process(ctx context.Context, n *Notification) {
	if err := w.notifier.Notify(ctx, *n); err != nil {
		w.retryOrFail(ctx, n, err)
	}
}

// retryOrFail re-enqueues n after the backoff delay or dead-letters it once
// the retries are used up.
func (w *NotificationWorker) retryOrFail(ctx context.Context, n *Notification, cause error) {
	n.Attempt++
	if w.retryPolicy.Exhausted(n.Attempt) {
		w.logger.Error().Err(cause).Int64("booking_id", n.BookingID).Int("attempt", n.Attempt).Msg("Notification dead-lettered")
		w.pushDeadLetter(ctx, n)
		return
	}

	delay := w.retryPolicy.NextDelay(n.Attempt)
	w.logger.Warn().Err(cause).Int64("booking_id", n.BookingID).Dur("retry_in", delay).Msg("Notification failed, retrying")
	retry := *n
	time.AfterFunc(delay, func() {
		if err := w.Enqueue(context.Background(), retry); err != nil {
			w.logger.Error().Err(err).Int64("booking_id", retry.BookingID).Msg("Failed to re-enqueue notification")
		}
	})
}

func (w *NotificationWorker) push(ctx context.Context, key string, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, key, data).Err()
}

func (w *NotificationWorker) pushDeadLetter(ctx context.Context, n *Notification) {
	if w.redis == nil {
		return
	}
	if err := w.push(ctx, w.deadLetterKey, *n); err != nil {
		w.logger.Error().Err(err).Int64("booking_id", n.BookingID).Msg("Dead-letter push failed")
	}
}
