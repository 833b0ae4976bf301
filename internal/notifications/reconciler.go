package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"staychain/internal/shared/config"
	"staychain/pkg/logger"
)

// MirrorStore is the subset of the room catalog that the reconciler
// needs to replay failed mirror writes.
type MirrorStore interface {
	AppendSummary(ctx context.Context, event ReservationEvent) error
	UpdateSummaryStatus(ctx context.Context, roomID int, txHash string, status string) error
}

// Reconciler consumes MIRROR_SYNC_FAILED events and re-applies the
// booking-summary write that the request path could not complete.
type Reconciler struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	store         MirrorStore
	log           *logger.Logger
}

func NewReconciler(cfg config.KafkaConfig, store MirrorStore, log *logger.Logger) (*Reconciler, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer group: %w", err)
	}

	return &Reconciler{
		consumerGroup: group,
		topic:         cfg.ReservationTopic,
		store:         store,
		log:           log,
	}, nil
}

// Start consumes until the context is cancelled. It blocks, so callers
// run it in its own goroutine.
func (r *Reconciler) Start(ctx context.Context) error {
	handler := &reconcileHandler{store: r.store, log: r.log}

	for {
		if err := r.consumerGroup.Consume(ctx, []string{r.topic}, handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.ErrorContext(ctx, "kafka consume error, retrying", "error", err)
			time.Sleep(2 * time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (r *Reconciler) Close() error {
	return r.consumerGroup.Close()
}

type reconcileHandler struct {
	store MirrorStore
	log   *logger.Logger
}

func (h *reconcileHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *reconcileHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *reconcileHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		h.handle(session.Context(), msg)
		session.MarkMessage(msg, "")
	}
	return nil
}

func (h *reconcileHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) {
	var event ReservationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.log.ErrorContext(ctx, "failed to decode reservation event, skipping", "error", err, "offset", msg.Offset)
		return
	}

	if event.Type != EventMirrorSyncFailed {
		return
	}

	// A failed write for a BOOKED reservation means the summary row never
	// made it into the catalog; anything else is a status update to an
	// existing row.
	var err error
	if event.Status == "" || event.Status == "BOOKED" {
		err = h.store.AppendSummary(ctx, event)
	} else {
		err = h.store.UpdateSummaryStatus(ctx, event.RoomID, event.TxHash, event.Status)
	}

	if err != nil {
		h.log.ErrorContext(ctx, "mirror replay failed",
			"room_id", event.RoomID,
			"tx_hash", event.TxHash,
			"status", event.Status,
			"error", err)
		return
	}

	h.log.InfoContext(ctx, "mirror write replayed",
		"room_id", event.RoomID,
		"tx_hash", event.TxHash,
		"status", event.Status)
}
