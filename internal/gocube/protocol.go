// Package gocube speaks the GoCube smart cube BLE protocol and turns its
// face rotations into twisty moves.
package gocube

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/twisty"
)

// Nordic UART service used by the cube.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify, cube to host
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write, host to cube
)

// Message types.
const (
	MsgTypeRotation byte = 0x01
	MsgTypeState    byte = 0x02
	MsgTypeBattery  byte = 0x05
	MsgTypeCubeType byte = 0x08
)

// Commands written to the RX characteristic.
const (
	CmdRequestBattery  byte = 0x32
	CmdRequestState    byte = 0x33
	CmdResetSolved     byte = 0x35
	CmdFlashBacklight  byte = 0x41
	CmdRequestCubeType byte = 0x56
)

// Frame: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A].
const (
	FramePrefix  byte = 0x2A
	FrameSuffix1 byte = 0x0D
	FrameSuffix2 byte = 0x0A
)

var (
	ErrMessageTooShort = errors.New("gocube: message too short")
	ErrInvalidPrefix   = errors.New("gocube: invalid message prefix")
	ErrInvalidSuffix   = errors.New("gocube: invalid message suffix")
	ErrInvalidLength   = errors.New("gocube: invalid message length")
	ErrInvalidChecksum = errors.New("gocube: invalid checksum")
	ErrInvalidPayload  = errors.New("gocube: invalid payload")
)

// Message is one parsed notification.
type Message struct {
	Type    byte
	Payload []byte
}

// ParseMessage validates the frame around a notification and returns its
// type and payload. The length byte counts everything after itself.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) < 5 {
		return nil, ErrMessageTooShort
	}
	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	total := 2 + length
	if len(data) < total {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, total, len(data))
	}

	sumIdx := length - 1
	if sumIdx < 3 {
		return nil, ErrMessageTooShort
	}
	if data[sumIdx+1] != FrameSuffix1 || data[sumIdx+2] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:sumIdx] {
		sum += b
	}
	if sum != data[sumIdx] {
		return nil, fmt.Errorf("%w: frame has 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[sumIdx], sum)
	}

	return &Message{Type: data[2], Payload: data[3:sumIdx]}, nil
}

// BuildCommand frames a payload-less command.
func BuildCommand(cmd byte) []byte {
	const length = byte(0x01)
	return []byte{FramePrefix, length, cmd, FramePrefix + length + cmd, FrameSuffix1, FrameSuffix2}
}

// MessageTypeName returns a short name for logging.
func MessageTypeName(t byte) string {
	switch t {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", t)
	}
}

// Rotation is one face turn reported by the cube.
type Rotation struct {
	Code      byte // face and direction, 0x00-0x0B
	Center    byte // center cap orientation
	Color     twisty.Color
	Clockwise bool
}

// wireColors is the color order of the rotation face codes.
var wireColors = [6]twisty.Color{
	twisty.Blue, twisty.Green, twisty.White, twisty.Yellow, twisty.Red, twisty.Orange,
}

// DecodeRotation splits a rotation payload into [code, center] pairs.
// Even codes are clockwise; code/2 indexes the face color.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload length %d is odd", ErrInvalidPayload, len(payload))
	}

	out := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(wireColors) {
			return nil, fmt.Errorf("%w: unknown face code 0x%02X", ErrInvalidPayload, code)
		}
		out = append(out, Rotation{
			Code:      code,
			Center:    payload[i+1],
			Color:     wireColors[idx],
			Clockwise: code%2 == 0,
		})
	}
	return out, nil
}

// DecodeBattery returns the battery percentage.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("%w: empty battery payload", ErrInvalidPayload)
	}
	return int(payload[0]), nil
}

// DecodeCubeType returns "standard" or "edge".
func DecodeCubeType(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", fmt.Errorf("%w: empty cube type payload", ErrInvalidPayload)
	}
	if payload[0] == 0x01 {
		return "edge", nil
	}
	return "standard", nil
}
