package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"staychain/internal/chain"
	"staychain/internal/notifications"
	"staychain/internal/rooms"
	"staychain/pkg/logger"
)

// BookingVerifier is the chain oracle the commit path consults before
// touching the ledger. *chain.Verifier satisfies it; tests use a fake.
type BookingVerifier interface {
	VerifyBooking(ctx context.Context, txHash common.Hash, roomID int, checkIn, checkOut time.Time, pricePerNight float64) (*chain.VerifiedBooking, error)
}

// Service interface defines the contract for reservation ledger business logic
type Service interface {
	CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) (*AvailabilityResponse, error)
	CommitReservation(ctx context.Context, req CommitReservationRequest) (*Reservation, error)

	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target Status) (*Reservation, error)

	ListByRoom(ctx context.Context, roomID int) ([]ReservationResponse, error)
	ListByHolder(ctx context.Context, walletAddress string) ([]HolderReservationResponse, error)
	ListAll(ctx context.Context) ([]ReservationResponse, error)
}

type service struct {
	repo     Repository
	catalog  rooms.Service
	verifier BookingVerifier
	producer notifications.Producer
	log      *logger.Logger
}

// NewService creates a new reservation service instance. producer may be
// nil, in which case lifecycle events are not published.
func NewService(repo Repository, catalog rooms.Service, verifier BookingVerifier, producer notifications.Producer) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		verifier: verifier,
		producer: producer,
		log:      logger.GetDefault(),
	}
}

// CheckAvailability normalizes the requested stay and reports whether any
// active reservation on the room intersects it. Advisory only: the commit
// path re-checks under a lock.
func (s *service) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) (*AvailabilityResponse, error) {
	if _, err := s.catalog.GetRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	window, err := NormalizeStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	conflict, err := s.repo.HasOverlap(ctx, req.RoomID, window)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		RoomID:    req.RoomID,
		Available: !conflict,
		CheckIn:   window.CheckIn,
		CheckOut:  window.CheckOut,
		Nights:    window.Nights(),
	}, nil
}

// CommitReservation verifies the payment transaction on chain and records
// the reservation. The verifier runs before the ledger transaction opens,
// so a rejected transaction never leaves partial state behind.
func (s *service) CommitReservation(ctx context.Context, req CommitReservationRequest) (*Reservation, error) {
	if !common.IsHexAddress(req.WalletAddress) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, req.WalletAddress)
	}
	holder := strings.ToLower(req.WalletAddress)

	txHash, err := parseTxHash(req.TxHash)
	if err != nil {
		return nil, err
	}

	room, err := s.catalog.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	window, err := NormalizeStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	// Cheap pre-check before the chain round trip; the authoritative check
	// happens again inside the commit transaction.
	conflict, err := s.repo.HasOverlap(ctx, req.RoomID, window)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrRoomNotAvailable
	}

	verified, err := s.verifier.VerifyBooking(ctx, txHash, req.RoomID, window.CheckIn, window.CheckOut, room.PricePerNight)
	if err != nil {
		s.log.LogChainVerificationFailed(ctx, req.TxHash, req.RoomID, err)
		return nil, err
	}

	reservation := &Reservation{
		ID:            uuid.New(),
		RoomID:        req.RoomID,
		HolderAddress: holder,
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		CheckIn:       window.CheckIn,
		CheckOut:      window.CheckOut,
		TxHash:        strings.ToLower(req.TxHash),
		BookingHash:   verified.BookingHash,
		Status:        StatusBooked,
	}

	if err := s.repo.CreateWithConflictCheck(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.LogReservationCreated(ctx, reservation.ID.String(), reservation.RoomID, reservation.TxHash, reservation.BookingHash)

	// Ledger is committed; the mirror write is best-effort. A failure is
	// logged and queued for the reconciler, never surfaced to the caller.
	if err := s.catalog.AppendSummary(ctx, rooms.BookingSummary{
		RoomID:       reservation.RoomID,
		UserID:       reservation.HolderAddress,
		CheckInDate:  reservation.CheckIn,
		CheckOutDate: reservation.CheckOut,
		TxHash:       reservation.TxHash,
		BookingHash:  reservation.BookingHash,
		Status:       StatusBooked.String(),
	}); err != nil {
		s.log.LogMirrorSyncFailed(ctx, reservation.ID.String(), reservation.RoomID, err)
		s.publish(ctx, notifications.EventMirrorSyncFailed, reservation, StatusBooked)
	}

	s.publish(ctx, notifications.EventReservationCreated, reservation, StatusBooked)

	return reservation, nil
}

func (s *service) GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

// TransitionStatus applies one lifecycle move, then follows it into the
// catalog mirror and the event stream.
func (s *service) TransitionStatus(ctx context.Context, id uuid.UUID, target Status) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	s.log.LogReservationTransition(ctx, id.String(), reservation.Status.String(), target.String())
	reservation.Status = target
	reservation.UpdatedAt = time.Now().UTC()

	if err := s.catalog.UpdateSummaryStatus(ctx, reservation.RoomID, reservation.TxHash, target.String()); err != nil {
		s.log.LogMirrorSyncFailed(ctx, id.String(), reservation.RoomID, err)
		s.publish(ctx, notifications.EventMirrorSyncFailed, reservation, target)
	}

	s.publish(ctx, transitionEvent(target), reservation, target)

	return reservation, nil
}

func (s *service) ListByRoom(ctx context.Context, roomID int) ([]ReservationResponse, error) {
	if _, err := s.catalog.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListByHolder returns the wallet's reservations enriched with the room
// metadata a stay card needs.
func (s *service) ListByHolder(ctx context.Context, walletAddress string) ([]HolderReservationResponse, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, walletAddress)
	}

	list, err := s.repo.ListByHolder(ctx, strings.ToLower(walletAddress))
	if err != nil {
		return nil, err
	}

	roomCache := make(map[int]*rooms.Room)
	result := make([]HolderReservationResponse, 0, len(list))
	for i := range list {
		entry := HolderReservationResponse{ReservationResponse: list[i].ToResponse()}

		room, ok := roomCache[list[i].RoomID]
		if !ok {
			room, err = s.catalog.GetRoom(ctx, list[i].RoomID)
			if err != nil && !errors.Is(err, rooms.ErrRoomNotFound) {
				return nil, err
			}
			roomCache[list[i].RoomID] = room
		}
		if room != nil {
			entry.RoomName = room.Name
			entry.RoomImages = room.Images
			entry.PricePerNight = room.PricePerNight
		}

		result = append(result, entry)
	}
	return result, nil
}

func (s *service) ListAll(ctx context.Context) ([]ReservationResponse, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

func (s *service) publish(ctx context.Context, eventType notifications.EventType, r *Reservation, status Status) {
	if s.producer == nil {
		return
	}
	err := s.producer.PublishReservationEvent(ctx, notifications.ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID.String(),
		RoomID:        r.RoomID,
		HolderAddress: r.HolderAddress,
		TxHash:        r.TxHash,
		BookingHash:   r.BookingHash,
		Status:        status.String(),
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "reservation event publish failed",
			"event_type", string(eventType),
			"reservation_id", r.ID.String(),
			"error", err)
	}
}

func transitionEvent(target Status) notifications.EventType {
	switch target {
	case StatusCheckedIn:
		return notifications.EventReservationCheckedIn
	case StatusCompleted:
		return notifications.EventReservationCompleted
	case StatusCancelled:
		return notifications.EventReservationCancelled
	default:
		return notifications.EventReservationCreated
	}
}

func toResponses(list []Reservation) []ReservationResponse {
	result := make([]ReservationResponse, 0, len(list))
	for i := range list {
		result = append(result, list[i].ToResponse())
	}
	return result
}

// parseTxHash validates a 0x-prefixed 32-byte transaction hash.
func parseTxHash(raw string) (common.Hash, error) {
	if len(raw) != 66 || !strings.HasPrefix(raw, "0x") {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrInvalidTxHash, raw)
	}
	for _, c := range raw[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return common.Hash{}, fmt.Errorf("%w: %s", ErrInvalidTxHash, raw)
		}
	}
	return common.HexToHash(raw), nil
}
