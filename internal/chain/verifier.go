package chain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"staychain/internal/shared/config"
)

// Client is the slice of the Ethereum JSON-RPC surface the verifier reads.
// *ethclient.Client satisfies it; tests substitute a fake.
type Client interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
}

// Verifier confirms that a submitted transaction hash is a trustworthy
// basis for recording a reservation. It is a pure verification oracle:
// it never mutates ledger state.
type Verifier struct {
	client          Client
	contractAddress common.Address

	enforcePaidAmount bool
	requestTimeout    time.Duration
}

// VerifiedBooking is the output of a successful verification.
type VerifiedBooking struct {
	BookingHash string
	RoomID      int
	Payer       common.Address
	PaidAmount  *big.Int
	Nights      int
}

// NewVerifier creates a verifier bound to the configured payment contract.
func NewVerifier(client Client, cfg config.ChainConfig) *Verifier {
	return &Verifier{
		client:            client,
		contractAddress:   common.HexToAddress(cfg.ContractAddress),
		enforcePaidAmount: cfg.EnforcePaidAmount,
		requestTimeout:    cfg.RequestTimeout,
	}
}

// Dial connects to the configured RPC endpoint and returns a verifier
// backed by a real node client.
func Dial(ctx context.Context, cfg config.ChainConfig) (*Verifier, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial chain rpc: %w", err)
	}
	return NewVerifier(client, cfg), nil
}

// VerifyBooking runs the full verification sequence against txHash for the
// given room and normalized stay interval. pricePerNight is only consulted
// when paid-amount enforcement is enabled.
func (v *Verifier) VerifyBooking(ctx context.Context, txHash common.Hash, roomID int, checkIn, checkOut time.Time, pricePerNight float64) (*VerifiedBooking, error) {
	if v.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.requestTimeout)
		defer cancel()
	}

	// 1. Receipt must exist and indicate success.
	receipt, err := v.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("fetch receipt: %w", err)
	}
	if receipt == nil {
		return nil, ErrTransactionNotFound
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, ErrTransactionFailed
	}

	// 2. Transaction body must exist and have a destination.
	tx, _, err := v.client.TransactionByHash(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("fetch transaction: %w", err)
	}
	if tx == nil || tx.To() == nil {
		return nil, ErrTransactionNotFound
	}

	// 3. Destination must be the payment contract. common.Address compares
	// canonical bytes, which makes the equality case-insensitive.
	if *tx.To() != v.contractAddress {
		return nil, ErrWrongContract
	}

	// 4. Input must decode as a recognized booking entry point.
	call, err := DecodeBookingCall(tx.Data())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotABookingCall, err)
	}

	// 5. The decoded room must be the room the caller claims.
	if !call.RoomID.IsInt64() || int(call.RoomID.Int64()) != roomID {
		return nil, ErrRoomMismatch
	}

	// 6. The receipt must carry a Booked event; the first match wins.
	var booked *BookedEvent
	for _, entry := range receipt.Logs {
		if ev, ok := DecodeBookedEvent(entry); ok {
			booked = ev
			break
		}
	}
	if booked == nil {
		return nil, ErrBookingEventMissing
	}

	// 7. Whole-night stay length.
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return nil, ErrMinimumStay
	}

	if v.enforcePaidAmount {
		expected := expectedWei(pricePerNight, nights)
		if booked.PaidAmount == nil || booked.PaidAmount.Cmp(expected) < 0 {
			return nil, ErrInsufficientPayment
		}
	}

	return &VerifiedBooking{
		BookingHash: booked.BookingHash.Hex(),
		RoomID:      roomID,
		Payer:       booked.User,
		PaidAmount:  booked.PaidAmount,
		Nights:      nights,
	}, nil
}

// expectedWei converts nights x price-per-night (in ether) to wei.
func expectedWei(pricePerNight float64, nights int) *big.Int {
	total := new(big.Float).Mul(
		big.NewFloat(pricePerNight*float64(nights)),
		big.NewFloat(1e18),
	)
	wei, _ := total.Int(nil)
	return wei
}

// IsVerificationError reports whether err is one of the verifier's typed
// failure modes, as opposed to a transport problem talking to the node.
func IsVerificationError(err error) bool {
	for _, sentinel := range []error{
		ErrTransactionNotFound,
		ErrTransactionFailed,
		ErrWrongContract,
		ErrNotABookingCall,
		ErrRoomMismatch,
		ErrBookingEventMissing,
		ErrMinimumStay,
		ErrInsufficientPayment,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
