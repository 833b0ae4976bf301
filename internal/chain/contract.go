package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Subset of the payment-contract ABI the verifier needs: the booking entry
// points and the Booked event. bookRoom is an older alias kept deployed on
// some networks; both decode to the same argument tuple.
const paymentContractABI = `[
	{
		"inputs": [
			{"internalType": "uint256", "name": "roomId", "type": "uint256"},
			{"internalType": "uint256", "name": "checkIn", "type": "uint256"},
			{"internalType": "uint256", "name": "checkOut", "type": "uint256"}
		],
		"name": "book",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "roomId", "type": "uint256"},
			{"internalType": "uint256", "name": "checkIn", "type": "uint256"},
			{"internalType": "uint256", "name": "checkOut", "type": "uint256"}
		],
		"name": "bookRoom",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "internalType": "bytes32", "name": "bookingHash", "type": "bytes32"},
			{"indexed": true, "internalType": "uint256", "name": "roomId", "type": "uint256"},
			{"indexed": true, "internalType": "address", "name": "user", "type": "address"},
			{"indexed": false, "internalType": "uint256", "name": "paidAmount", "type": "uint256"}
		],
		"name": "Booked",
		"type": "event"
	}
]`

// BookingSelector identifies a recognized booking entry point.
type BookingSelector string

const (
	SelectorBook     BookingSelector = "book"
	SelectorBookRoom BookingSelector = "bookRoom"
)

// BookCall is the decoded argument tuple of a booking entry point.
type BookCall struct {
	Selector      BookingSelector
	RoomID        *big.Int
	CheckInEpoch  *big.Int
	CheckOutEpoch *big.Int
}

// BookedEvent is the decoded Booked log entry. The booking hash is the
// canonical on-chain identifier for the reservation.
type BookedEvent struct {
	BookingHash common.Hash
	RoomID      *big.Int
	User        common.Address
	PaidAmount  *big.Int
}

var (
	contractABI    abi.ABI
	bookedEventID  common.Hash
	bookSelectors  map[[4]byte]BookingSelector
	bookedNonIndex abi.Arguments
)

func init() {
	parsed, err := abi.JSON(strings.NewReader(paymentContractABI))
	if err != nil {
		panic(fmt.Sprintf("chain: invalid embedded contract ABI: %v", err))
	}
	contractABI = parsed
	bookedEventID = contractABI.Events["Booked"].ID
	bookedNonIndex = contractABI.Events["Booked"].Inputs.NonIndexed()

	bookSelectors = make(map[[4]byte]BookingSelector, 2)
	for _, name := range []BookingSelector{SelectorBook, SelectorBookRoom} {
		method := contractABI.Methods[string(name)]
		var sel [4]byte
		copy(sel[:], method.ID)
		bookSelectors[sel] = name
	}
}

// DecodeBookingCall decodes transaction input data against the fixed set of
// known booking selectors. Unknown selectors are a typed failure, never a
// silent nil.
func DecodeBookingCall(input []byte) (*BookCall, error) {
	if len(input) < 4 {
		return nil, fmt.Errorf("%w: input too short", ErrUnknownSelector)
	}

	var sel [4]byte
	copy(sel[:], input[:4])
	name, ok := bookSelectors[sel]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnknownSelector, sel)
	}

	method := contractABI.Methods[string(name)]
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, fmt.Errorf("decode %s call: %w", name, err)
	}
	if len(args) != 3 {
		return nil, fmt.Errorf("decode %s call: expected 3 arguments, got %d", name, len(args))
	}

	roomID, ok := args[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decode %s call: roomId is not uint256", name)
	}
	checkIn, ok := args[1].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decode %s call: checkIn is not uint256", name)
	}
	checkOut, ok := args[2].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decode %s call: checkOut is not uint256", name)
	}

	return &BookCall{
		Selector:      name,
		RoomID:        roomID,
		CheckInEpoch:  checkIn,
		CheckOutEpoch: checkOut,
	}, nil
}

// DecodeBookedEvent decodes a single receipt log as a Booked event. Logs
// emitted by other events (or other contracts) return false.
func DecodeBookedEvent(log *types.Log) (*BookedEvent, bool) {
	// bookingHash, roomId and user are indexed, so the payload carries
	// only paidAmount and the topics carry the rest.
	if len(log.Topics) != 4 || log.Topics[0] != bookedEventID {
		return nil, false
	}

	values, err := bookedNonIndex.Unpack(log.Data)
	if err != nil || len(values) != 1 {
		return nil, false
	}
	paid, ok := values[0].(*big.Int)
	if !ok {
		return nil, false
	}

	return &BookedEvent{
		BookingHash: log.Topics[1],
		RoomID:      new(big.Int).SetBytes(log.Topics[2].Bytes()),
		User:        common.BytesToAddress(log.Topics[3].Bytes()),
		PaidAmount:  paid,
	}, true
}

// PackBookingCall builds the input data for a booking entry point. The
// service never sends transactions; this exists for tests and tooling.
func PackBookingCall(selector BookingSelector, roomID, checkInEpoch, checkOutEpoch *big.Int) ([]byte, error) {
	return contractABI.Pack(string(selector), roomID, checkInEpoch, checkOutEpoch)
}

// PackBookedEventData builds the non-indexed payload of a Booked event.
// Test helper, mirrors what the contract emits.
func PackBookedEventData(paidAmount *big.Int) ([]byte, error) {
	return bookedNonIndex.Pack(paidAmount)
}

// BookedEventID exposes the Booked event topic for log construction in tests.
func BookedEventID() common.Hash {
	return bookedEventID
}
