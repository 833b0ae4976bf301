package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staychain/internal/chain"
	"staychain/internal/notifications"
	"staychain/internal/rooms"
)

// fakeRepo is an in-memory reservation store.
type fakeRepo struct {
	reservations map[uuid.UUID]*Reservation
	createErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reservations: make(map[uuid.UUID]*Reservation)}
}

func (f *fakeRepo) HasOverlap(ctx context.Context, roomID int, window StayWindow) (bool, error) {
	for _, r := range f.reservations {
		if r.RoomID == roomID && r.Status.IsActive() && Overlaps(window, r.Window()) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateWithConflictCheck(ctx context.Context, reservation *Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	conflict, _ := f.HasOverlap(ctx, reservation.RoomID, reservation.Window())
	if conflict {
		return ErrRoomNotAvailable
	}
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	f.reservations[reservation.ID] = reservation
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	r, ok := f.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeRepo) ListByRoom(ctx context.Context, roomID int) ([]Reservation, error) {
	var result []Reservation
	for _, r := range f.reservations {
		if r.RoomID == roomID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListByHolder(ctx context.Context, holder string) ([]Reservation, error) {
	var result []Reservation
	for _, r := range f.reservations {
		if r.HolderAddress == holder {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]Reservation, error) {
	var result []Reservation
	for _, r := range f.reservations {
		result = append(result, *r)
	}
	return result, nil
}

// fakeCatalog is a minimal room catalog with mirror write recording.
type fakeCatalog struct {
	rooms         map[int]*rooms.Room
	appended      []rooms.BookingSummary
	statusUpdates []string
	appendErr     error
	statusErr     error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		rooms: map[int]*rooms.Room{
			7: {RoomID: 7, Name: "Harbor View Suite", PricePerNight: 0.12, Beds: 1, MaxGuests: 2},
		},
	}
}

func (f *fakeCatalog) CreateRoom(ctx context.Context, req rooms.CreateRoomRequest) (*rooms.Room, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) GetRoom(ctx context.Context, roomID int) (*rooms.Room, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeCatalog) ListRooms(ctx context.Context) ([]rooms.RoomResponse, error) {
	return nil, nil
}

func (f *fakeCatalog) ListRoomsAdmin(ctx context.Context) ([]rooms.AdminRoomResponse, error) {
	return nil, nil
}

func (f *fakeCatalog) AppendSummary(ctx context.Context, summary rooms.BookingSummary) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, summary)
	return nil
}

func (f *fakeCatalog) UpdateSummaryStatus(ctx context.Context, roomID int, txHash string, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

// fakeVerifier returns a canned verification result.
type fakeVerifier struct {
	result *chain.VerifiedBooking
	err    error
	calls  int
}

func (f *fakeVerifier) VerifyBooking(ctx context.Context, txHash common.Hash, roomID int, checkIn, checkOut time.Time, pricePerNight float64) (*chain.VerifiedBooking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeProducer records published events.
type fakeProducer struct {
	events []notifications.ReservationEvent
}

func (f *fakeProducer) PublishReservationEvent(ctx context.Context, event notifications.ReservationEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func (f *fakeProducer) eventTypes() []notifications.EventType {
	result := make([]notifications.EventType, 0, len(f.events))
	for _, e := range f.events {
		result = append(result, e.Type)
	}
	return result
}

const (
	testWallet = "0xAbCd111111111111111111111111111111111111"
	testTx     = "0x5555555555555555555555555555555555555555555555555555555555555555"
)

func verifiedBooking() *chain.VerifiedBooking {
	return &chain.VerifiedBooking{
		BookingHash: "0xabc0000000000000000000000000000000000000000000000000000000000042",
		RoomID:      7,
		Nights:      2,
	}
}

func commitRequest() CommitReservationRequest {
	return CommitReservationRequest{
		RoomID:        7,
		CheckIn:       "2026-06-01",
		CheckOut:      "2026-06-03",
		WalletAddress: testWallet,
		TxHash:        testTx,
		CustomerName:  "Ada",
	}
}

func TestCommitReservationSuccess(t *testing.T) {
	repo := newFakeRepo()
	catalog := newFakeCatalog()
	verifier := &fakeVerifier{result: verifiedBooking()}
	producer := &fakeProducer{}
	svc := NewService(repo, catalog, verifier, producer)

	reservation, err := svc.CommitReservation(context.Background(), commitRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusBooked, reservation.Status)
	assert.Equal(t, "0xabcd111111111111111111111111111111111111", reservation.HolderAddress)
	assert.Equal(t, verifiedBooking().BookingHash, reservation.BookingHash)
	assert.Equal(t, time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC), reservation.CheckIn)
	assert.Equal(t, time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC), reservation.CheckOut)

	require.Len(t, catalog.appended, 1)
	assert.Equal(t, reservation.TxHash, catalog.appended[0].TxHash)
	assert.Equal(t, []notifications.EventType{notifications.EventReservationCreated}, producer.eventTypes())
}

func TestCommitReservationRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CommitReservationRequest)
		wantErr error
	}{
		{"bad wallet", func(r *CommitReservationRequest) { r.WalletAddress = "not-an-address" }, ErrInvalidAddress},
		{"bad tx hash", func(r *CommitReservationRequest) { r.TxHash = "0x1234" }, ErrInvalidTxHash},
		{"tx hash without prefix", func(r *CommitReservationRequest) { r.TxHash = testTx[2:] + "55" }, ErrInvalidTxHash},
		{"bad dates", func(r *CommitReservationRequest) { r.CheckIn = "tomorrow" }, ErrInvalidDate},
		{"zero nights", func(r *CommitReservationRequest) { r.CheckOut = r.CheckIn }, ErrMinimumStay},
		{"unknown room", func(r *CommitReservationRequest) { r.RoomID = 99 }, rooms.ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			verifier := &fakeVerifier{result: verifiedBooking()}
			svc := NewService(repo, newFakeCatalog(), verifier, nil)

			req := commitRequest()
			tt.mutate(&req)

			_, err := svc.CommitReservation(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.reservations, "rejected request must not reach the store")
		})
	}
}

func TestCommitReservationVerifierFailureLeavesNoState(t *testing.T) {
	repo := newFakeRepo()
	catalog := newFakeCatalog()
	verifier := &fakeVerifier{err: chain.ErrWrongContract}
	producer := &fakeProducer{}
	svc := NewService(repo, catalog, verifier, producer)

	_, err := svc.CommitReservation(context.Background(), commitRequest())

	assert.ErrorIs(t, err, chain.ErrWrongContract)
	assert.Empty(t, repo.reservations)
	assert.Empty(t, catalog.appended)
	assert.Empty(t, producer.events)
}

func TestCommitReservationConflict(t *testing.T) {
	repo := newFakeRepo()
	verifier := &fakeVerifier{result: verifiedBooking()}
	svc := NewService(repo, newFakeCatalog(), verifier, nil)

	_, err := svc.CommitReservation(context.Background(), commitRequest())
	require.NoError(t, err)

	// Overlapping second commit for the same room.
	second := commitRequest()
	second.TxHash = "0x6666666666666666666666666666666666666666666666666666666666666666"
	second.CheckIn = "2026-06-02"
	second.CheckOut = "2026-06-04"

	_, err = svc.CommitReservation(context.Background(), second)
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	assert.Equal(t, 1, verifier.calls, "conflicting request must be rejected before the chain round trip")

	// Back-to-back stay starting on the first check-out day commits fine.
	third := commitRequest()
	third.TxHash = "0x7777777777777777777777777777777777777777777777777777777777777777"
	third.CheckIn = "2026-06-03"
	third.CheckOut = "2026-06-05"

	_, err = svc.CommitReservation(context.Background(), third)
	assert.NoError(t, err)
}

func TestCommitReservationMirrorFailureStillCommits(t *testing.T) {
	repo := newFakeRepo()
	catalog := newFakeCatalog()
	catalog.appendErr = errors.New("mirror store down")
	producer := &fakeProducer{}
	svc := NewService(repo, catalog, &fakeVerifier{result: verifiedBooking()}, producer)

	reservation, err := svc.CommitReservation(context.Background(), commitRequest())

	require.NoError(t, err, "ledger commit must survive a mirror failure")
	assert.Len(t, repo.reservations, 1)
	assert.Equal(t,
		[]notifications.EventType{notifications.EventMirrorSyncFailed, notifications.EventReservationCreated},
		producer.eventTypes())
	assert.Equal(t, reservation.TxHash, producer.events[0].TxHash)
}

func TestCheckAvailability(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCatalog(), &fakeVerifier{result: verifiedBooking()}, nil)

	result, err := svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{
		RoomID: 7, CheckIn: "2026-06-01", CheckOut: "2026-06-03",
	})
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 2, result.Nights)

	_, err = svc.CommitReservation(context.Background(), commitRequest())
	require.NoError(t, err)

	result, err = svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{
		RoomID: 7, CheckIn: "2026-06-02", CheckOut: "2026-06-04",
	})
	require.NoError(t, err)
	assert.False(t, result.Available)

	_, err = svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{
		RoomID: 99, CheckIn: "2026-06-01", CheckOut: "2026-06-03",
	})
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestTransitionStatus(t *testing.T) {
	repo := newFakeRepo()
	catalog := newFakeCatalog()
	producer := &fakeProducer{}
	svc := NewService(repo, catalog, &fakeVerifier{result: verifiedBooking()}, producer)

	reservation, err := svc.CommitReservation(context.Background(), commitRequest())
	require.NoError(t, err)

	checkedIn, err := svc.TransitionStatus(context.Background(), reservation.ID, StatusCheckedIn)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, checkedIn.Status)

	completed, err := svc.TransitionStatus(context.Background(), reservation.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	// Terminal: nothing moves out of COMPLETED.
	_, err = svc.TransitionStatus(context.Background(), reservation.ID, StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := repo.GetByID(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)

	assert.Equal(t, []string{"CHECKED_IN", "COMPLETED"}, catalog.statusUpdates)
	assert.Equal(t,
		[]notifications.EventType{
			notifications.EventReservationCreated,
			notifications.EventReservationCheckedIn,
			notifications.EventReservationCompleted,
		},
		producer.eventTypes())
}

func TestTransitionStatusRejectsIllegalMoves(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCatalog(), &fakeVerifier{result: verifiedBooking()}, nil)

	reservation, err := svc.CommitReservation(context.Background(), commitRequest())
	require.NoError(t, err)

	// BOOKED cannot jump straight to COMPLETED.
	_, err = svc.TransitionStatus(context.Background(), reservation.ID, StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.TransitionStatus(context.Background(), reservation.ID, StatusCancelled)
	require.NoError(t, err)

	// CANCELLED is terminal.
	_, err = svc.TransitionStatus(context.Background(), reservation.ID, StatusCheckedIn)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.TransitionStatus(context.Background(), uuid.New(), StatusCancelled)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelledStayFreesTheRoom(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCatalog(), &fakeVerifier{result: verifiedBooking()}, nil)

	reservation, err := svc.CommitReservation(context.Background(), commitRequest())
	require.NoError(t, err)

	_, err = svc.TransitionStatus(context.Background(), reservation.ID, StatusCancelled)
	require.NoError(t, err)

	// The same window is free again once the blocker is cancelled.
	retry := commitRequest()
	retry.TxHash = "0x8888888888888888888888888888888888888888888888888888888888888888"
	_, err = svc.CommitReservation(context.Background(), retry)
	assert.NoError(t, err)
}

func TestListByHolder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCatalog(), &fakeVerifier{result: verifiedBooking()}, nil)

	_, err := svc.CommitReservation(context.Background(), commitRequest())
	require.NoError(t, err)

	// Checksum casing must not matter for lookups.
	list, err := svc.ListByHolder(context.Background(), testWallet)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Harbor View Suite", list[0].RoomName)
	assert.Equal(t, 0.12, list[0].PricePerNight)

	_, err = svc.ListByHolder(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
