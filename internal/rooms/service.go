package rooms

import (
	"context"
	"fmt"
	"time"

	"staychain/pkg/cache"
	"staychain/pkg/logger"
)

const (
	cacheKeyRoomList   = "staychain:rooms:list"
	cacheKeyRoomPrefix = "staychain:rooms:room:"
)

// Service interface defines the contract for room catalog business logic
type Service interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error)
	GetRoom(ctx context.Context, roomID int) (*Room, error)
	ListRooms(ctx context.Context) ([]RoomResponse, error)
	ListRoomsAdmin(ctx context.Context) ([]AdminRoomResponse, error)

	// Mirror maintenance, driven by the reservation ledger.
	AppendSummary(ctx context.Context, summary BookingSummary) error
	UpdateSummaryStatus(ctx context.Context, roomID int, txHash string, status string) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewService creates a new room catalog service instance. cacheService may
// be nil, in which case all reads go straight to the store.
func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		log:      logger.GetDefault(),
	}
}

// CreateRoom validates metadata and inserts the room with the next
// sequential identifier.
func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	if err := validateMetadata(req); err != nil {
		return nil, err
	}

	room := &Room{
		Name:          req.Name,
		Description:   req.Description,
		Images:        req.Images,
		PricePerNight: req.PricePerNight,
		Beds:          req.Beds,
		MaxGuests:     req.MaxGuests,
	}

	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	s.invalidate(ctx, room.RoomID)
	return room, nil
}

func (s *service) GetRoom(ctx context.Context, roomID int) (*Room, error) {
	if s.cache == nil {
		return s.repo.GetByRoomID(ctx, roomID)
	}

	var room Room
	key := fmt.Sprintf("%s%d", cacheKeyRoomPrefix, roomID)
	err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetByRoomID(ctx, roomID)
	}, &room)
	if err != nil {
		// Fetcher errors carry the repository sentinel; unwrap by retrying
		// the store directly so callers see ErrRoomNotFound unchanged.
		return s.repo.GetByRoomID(ctx, roomID)
	}
	return &room, nil
}

func (s *service) ListRooms(ctx context.Context) ([]RoomResponse, error) {
	fetch := func() ([]RoomResponse, error) {
		roomList, err := s.repo.GetAllRooms(ctx)
		if err != nil {
			return nil, err
		}
		result := make([]RoomResponse, 0, len(roomList))
		for i := range roomList {
			result = append(result, roomList[i].ToResponse())
		}
		return result, nil
	}

	if s.cache == nil {
		return fetch()
	}

	var result []RoomResponse
	err := s.cache.GetOrSet(ctx, cacheKeyRoomList, s.cacheTTL, func() (interface{}, error) {
		return fetch()
	}, &result)
	if err != nil {
		return fetch()
	}
	return result, nil
}

func (s *service) ListRoomsAdmin(ctx context.Context) ([]AdminRoomResponse, error) {
	roomList, err := s.repo.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]AdminRoomResponse, 0, len(roomList))
	for i := range roomList {
		result = append(result, roomList[i].ToAdminResponse())
	}
	return result, nil
}

func (s *service) AppendSummary(ctx context.Context, summary BookingSummary) error {
	if err := s.repo.AppendSummary(ctx, &summary); err != nil {
		return err
	}
	s.invalidate(ctx, summary.RoomID)
	return nil
}

func (s *service) UpdateSummaryStatus(ctx context.Context, roomID int, txHash string, status string) error {
	if err := s.repo.UpdateSummaryStatus(ctx, roomID, txHash, status); err != nil {
		return err
	}
	s.invalidate(ctx, roomID)
	return nil
}

// invalidate drops the cached catalog views touched by a mutation.
func (s *service) invalidate(ctx context.Context, roomID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyRoomList); err != nil {
		s.log.WarnContext(ctx, "room list cache invalidation failed", "error", err)
	}
	key := fmt.Sprintf("%s%d", cacheKeyRoomPrefix, roomID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.WarnContext(ctx, "room cache invalidation failed", "room_id", roomID, "error", err)
	}
}

// validateMetadata enforces the catalog invariants: positive price, at
// least one bed, guest capacity covering the beds, at least one image.
func validateMetadata(req CreateRoomRequest) error {
	if req.PricePerNight <= 0 {
		return fmt.Errorf("%w: price per night must be positive", ErrInvalidRoomMetadata)
	}
	if req.Beds < 1 {
		return fmt.Errorf("%w: at least one bed required", ErrInvalidRoomMetadata)
	}
	if req.MaxGuests < req.Beds {
		return fmt.Errorf("%w: max guests cannot be below bed count", ErrInvalidRoomMetadata)
	}
	if len(req.Images) == 0 {
		return fmt.Errorf("%w: at least one image required", ErrInvalidRoomMetadata)
	}
	return nil
}
