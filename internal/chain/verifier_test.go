package chain

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staychain/internal/shared/config"
)

var (
	testContract = common.HexToAddress("0x27C98d65c46D5914C0b0370175C3EbF2775B396c")
	testUser     = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testTxHash   = common.HexToHash("0x5555555555555555555555555555555555555555555555555555555555555555")
	testHash     = common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000042")
)

// fakeClient serves a single canned transaction and receipt.
type fakeClient struct {
	receipt    *types.Receipt
	receiptErr error
	tx         *types.Transaction
	txErr      error
}

func (f *fakeClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return f.receipt, f.receiptErr
}

func (f *fakeClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	return f.tx, false, f.txErr
}

func testStay() (time.Time, time.Time) {
	return time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)
}

func bookingTx(t *testing.T, to common.Address, roomID int64) *types.Transaction {
	t.Helper()
	checkIn, checkOut := testStay()
	input, err := PackBookingCall(SelectorBook,
		big.NewInt(roomID), big.NewInt(checkIn.Unix()), big.NewInt(checkOut.Unix()))
	require.NoError(t, err)
	return types.NewTransaction(0, to, big.NewInt(0), 100000, big.NewInt(1), input)
}

func bookedLog(t *testing.T, roomID int64, paid *big.Int) *types.Log {
	t.Helper()
	data, err := PackBookedEventData(paid)
	require.NoError(t, err)
	return &types.Log{
		Address: testContract,
		Topics: []common.Hash{
			BookedEventID(),
			testHash,
			common.BigToHash(big.NewInt(roomID)),
			common.BytesToHash(testUser.Bytes()),
		},
		Data: data,
	}
}

func newTestVerifier(client Client, enforcePaid bool) *Verifier {
	return NewVerifier(client, config.ChainConfig{
		ContractAddress:   testContract.Hex(),
		EnforcePaidAmount: enforcePaid,
	})
}

func TestVerifyBookingSuccess(t *testing.T) {
	paid := big.NewInt(240000000000000000)
	client := &fakeClient{
		receipt: &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{bookedLog(t, 7, paid)},
		},
		tx: bookingTx(t, testContract, 7),
	}

	checkIn, checkOut := testStay()
	verified, err := newTestVerifier(client, false).
		VerifyBooking(context.Background(), testTxHash, 7, checkIn, checkOut, 0.12)

	require.NoError(t, err)
	assert.Equal(t, testHash.Hex(), verified.BookingHash)
	assert.Equal(t, 7, verified.RoomID)
	assert.Equal(t, testUser, verified.Payer)
	assert.Equal(t, 0, verified.PaidAmount.Cmp(paid))
	assert.Equal(t, 2, verified.Nights)
}

func TestVerifyBookingFailureModes(t *testing.T) {
	checkIn, checkOut := testStay()
	okLogs := []*types.Log{bookedLog(t, 7, big.NewInt(1))}

	tests := []struct {
		name    string
		client  *fakeClient
		wantErr error
	}{
		{
			name:    "receipt not found",
			client:  &fakeClient{receiptErr: ethereum.NotFound},
			wantErr: ErrTransactionNotFound,
		},
		{
			name: "reverted transaction",
			client: &fakeClient{
				receipt: &types.Receipt{Status: types.ReceiptStatusFailed},
			},
			wantErr: ErrTransactionFailed,
		},
		{
			name: "transaction body not found",
			client: &fakeClient{
				receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, Logs: okLogs},
				txErr:   ethereum.NotFound,
			},
			wantErr: ErrTransactionNotFound,
		},
		{
			name: "wrong contract",
			client: &fakeClient{
				receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, Logs: okLogs},
				tx:      bookingTx(t, common.HexToAddress("0x9999999999999999999999999999999999999999"), 7),
			},
			wantErr: ErrWrongContract,
		},
		{
			name: "not a booking call",
			client: &fakeClient{
				receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, Logs: okLogs},
				tx:      types.NewTransaction(0, testContract, big.NewInt(0), 100000, big.NewInt(1), []byte{0xde, 0xad, 0xbe, 0xef}),
			},
			wantErr: ErrNotABookingCall,
		},
		{
			name: "room mismatch",
			client: &fakeClient{
				receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, Logs: okLogs},
				tx:      bookingTx(t, testContract, 8),
			},
			wantErr: ErrRoomMismatch,
		},
		{
			name: "booked event missing",
			client: &fakeClient{
				receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful},
				tx:      bookingTx(t, testContract, 7),
			},
			wantErr: ErrBookingEventMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestVerifier(tt.client, false).
				VerifyBooking(context.Background(), testTxHash, 7, checkIn, checkOut, 0.12)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsVerificationError(err), "expected a typed verification failure")
		})
	}
}

func TestVerifyBookingPaidAmountEnforcement(t *testing.T) {
	checkIn, checkOut := testStay()

	// 2 nights at 0.12 ether demand 0.24 ether.
	short := big.NewInt(230000000000000000)
	exact := big.NewInt(240000000000000000)

	client := &fakeClient{
		receipt: &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{bookedLog(t, 7, short)},
		},
		tx: bookingTx(t, testContract, 7),
	}

	_, err := newTestVerifier(client, true).
		VerifyBooking(context.Background(), testTxHash, 7, checkIn, checkOut, 0.12)
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// Same underpayment passes when enforcement is off.
	_, err = newTestVerifier(client, false).
		VerifyBooking(context.Background(), testTxHash, 7, checkIn, checkOut, 0.12)
	assert.NoError(t, err)

	client.receipt.Logs = []*types.Log{bookedLog(t, 7, exact)}
	verified, err := newTestVerifier(client, true).
		VerifyBooking(context.Background(), testTxHash, 7, checkIn, checkOut, 0.12)
	require.NoError(t, err)
	assert.Equal(t, 2, verified.Nights)
}

func TestVerifyBookingSkipsForeignLogs(t *testing.T) {
	checkIn, checkOut := testStay()
	foreign := &types.Log{Topics: []common.Hash{common.HexToHash("0x01")}}

	client := &fakeClient{
		receipt: &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{foreign, bookedLog(t, 7, big.NewInt(1))},
		},
		tx: bookingTx(t, testContract, 7),
	}

	verified, err := newTestVerifier(client, false).
		VerifyBooking(context.Background(), testTxHash, 7, checkIn, checkOut, 0.12)
	require.NoError(t, err)
	assert.Equal(t, testHash.Hex(), verified.BookingHash)
}
