package chain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestDecodeBookingCall(t *testing.T) {
	for _, selector := range []BookingSelector{SelectorBook, SelectorBookRoom} {
		t.Run(string(selector), func(t *testing.T) {
			input, err := PackBookingCall(selector, big.NewInt(7), big.NewInt(1780320000), big.NewInt(1780492800))
			if err != nil {
				t.Fatalf("PackBookingCall returned error: %v", err)
			}

			call, err := DecodeBookingCall(input)
			if err != nil {
				t.Fatalf("DecodeBookingCall returned error: %v", err)
			}
			if call.Selector != selector {
				t.Errorf("Selector = %s, want %s", call.Selector, selector)
			}
			if call.RoomID.Int64() != 7 {
				t.Errorf("RoomID = %v, want 7", call.RoomID)
			}
			if call.CheckInEpoch.Int64() != 1780320000 {
				t.Errorf("CheckInEpoch = %v, want 1780320000", call.CheckInEpoch)
			}
			if call.CheckOutEpoch.Int64() != 1780492800 {
				t.Errorf("CheckOutEpoch = %v, want 1780492800", call.CheckOutEpoch)
			}
		})
	}
}

func TestDecodeBookingCallRejectsUnknownInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty input", nil},
		{"short input", []byte{0x01, 0x02}},
		{"unknown selector", append([]byte{0xde, 0xad, 0xbe, 0xef}, make([]byte, 96)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBookingCall(tt.input)
			if !errors.Is(err, ErrUnknownSelector) {
				t.Errorf("DecodeBookingCall error = %v, want %v", err, ErrUnknownSelector)
			}
		})
	}
}

func TestDecodeBookedEvent(t *testing.T) {
	bookingHash := common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000001")
	user := common.HexToAddress("0x1111111111111111111111111111111111111111")
	paid := big.NewInt(120000000000000000)

	data, err := PackBookedEventData(paid)
	if err != nil {
		t.Fatalf("PackBookedEventData returned error: %v", err)
	}

	entry := &types.Log{
		Topics: []common.Hash{
			BookedEventID(),
			bookingHash,
			common.BigToHash(big.NewInt(7)),
			common.BytesToHash(user.Bytes()),
		},
		Data: data,
	}

	event, ok := DecodeBookedEvent(entry)
	if !ok {
		t.Fatal("DecodeBookedEvent returned false for a valid Booked log")
	}
	if event.BookingHash != bookingHash {
		t.Errorf("BookingHash = %s, want %s", event.BookingHash, bookingHash)
	}
	if event.RoomID.Int64() != 7 {
		t.Errorf("RoomID = %v, want 7", event.RoomID)
	}
	if event.User != user {
		t.Errorf("User = %s, want %s", event.User, user)
	}
	if event.PaidAmount.Cmp(paid) != 0 {
		t.Errorf("PaidAmount = %v, want %v", event.PaidAmount, paid)
	}
}

func TestDecodeBookedEventIgnoresForeignLogs(t *testing.T) {
	tests := []struct {
		name string
		log  *types.Log
	}{
		{"no topics", &types.Log{}},
		{
			"wrong event id",
			&types.Log{Topics: []common.Hash{
				common.HexToHash("0x01"), common.HexToHash("0x02"),
				common.HexToHash("0x03"), common.HexToHash("0x04"),
			}},
		},
		{
			"missing indexed topics",
			&types.Log{Topics: []common.Hash{BookedEventID()}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := DecodeBookedEvent(tt.log); ok {
				t.Error("DecodeBookedEvent returned true for a non-Booked log")
			}
		})
	}
}
