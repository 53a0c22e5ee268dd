package milight

import "fmt"

// operation identifies one logical bridge command. Every entry in the
// catalog below maps an operation to its 9-byte payload template and, where
// a value is carried, the offsets the value byte is written to and its
// accepted range.
type operation int

const (
	opTurnOn operation = iota
	opTurnOff
	opNightMode
	opWhiteMode
	opDiscoSpeedUp
	opDiscoSlowDown
	opLink
	opUnlink
	opSetColor
	opSetBrightness
	opSetSaturation
	opSetTemperature
	opSetDiscoMode

	opLampOn
	opLampOff
	opLampWhiteMode
	opLampDiscoSpeedUp
	opLampDiscoSlowDown
	opLampSetColor
	opLampSetBrightness
	opLampSetDiscoMode
)

type commandSpec struct {
	payload [commandPayloadSize]byte

	// Offsets in payload the value byte is written to. The color commands
	// repeat the value four times; most carry it once or not at all.
	valueOffsets []int
	valueMin     int
	valueMax     int

	// bridgeLamp commands address the bridge's own indicator lamp. They
	// always go to zone 1, payload byte 3 is 0x00 instead of 0x08.
	bridgeLamp bool
}

var catalog = map[operation]commandSpec{
	opTurnOn:        {payload: [9]byte{0x31, 0x00, 0x00, 0x08, 0x04, 0x01, 0x00, 0x00, 0x00}},
	opTurnOff:       {payload: [9]byte{0x31, 0x00, 0x00, 0x08, 0x04, 0x02, 0x00, 0x00, 0x00}},
	opNightMode:     {payload: [9]byte{0x31, 0x00, 0x00, 0x08, 0x04, 0x05, 0x00, 0x00, 0x00}},
	opWhiteMode:     {payload: [9]byte{0x31, 0x00, 0x00, 0x08, 0x05, 0x64, 0x00, 0x00, 0x00}},
	opDiscoSpeedUp:  {payload: [9]byte{0x31, 0x00, 0x00, 0x08, 0x04, 0x03, 0x00, 0x00, 0x00}},
	opDiscoSlowDown: {payload: [9]byte{0x31, 0x00, 0x00, 0x08, 0x04, 0x04, 0x00, 0x00, 0x00}},
	opLink:          {payload: [9]byte{0x3D, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00}},
	opUnlink:        {payload: [9]byte{0x3E, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00}},

	opSetColor: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x08, 0x01, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5, 6, 7, 8},
		valueMin:     0, valueMax: 255,
	},
	opSetBrightness: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x08, 0x03, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5},
		valueMin:     0, valueMax: 100,
	},
	opSetSaturation: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x08, 0x02, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5},
		valueMin:     0, valueMax: 100,
	},
	opSetTemperature: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x08, 0x05, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5},
		valueMin:     0, valueMax: 100,
	},
	opSetDiscoMode: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x08, 0x06, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5},
		valueMin:     1, valueMax: 9,
	},

	opLampOn:            {payload: [9]byte{0x31, 0x00, 0x00, 0x00, 0x03, 0x03, 0x00, 0x00, 0x00}, bridgeLamp: true},
	opLampOff:           {payload: [9]byte{0x31, 0x00, 0x00, 0x00, 0x03, 0x04, 0x00, 0x00, 0x00}, bridgeLamp: true},
	opLampWhiteMode:     {payload: [9]byte{0x31, 0x00, 0x00, 0x00, 0x03, 0x05, 0x00, 0x00, 0x00}, bridgeLamp: true},
	opLampDiscoSpeedUp:  {payload: [9]byte{0x31, 0x00, 0x00, 0x00, 0x03, 0x02, 0x00, 0x00, 0x00}, bridgeLamp: true},
	opLampDiscoSlowDown: {payload: [9]byte{0x31, 0x00, 0x00, 0x00, 0x03, 0x01, 0x00, 0x00, 0x00}, bridgeLamp: true},

	opLampSetColor: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5, 6, 7, 8},
		valueMin:     0, valueMax: 255,
		bridgeLamp: true,
	},
	opLampSetBrightness: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5},
		valueMin:     0, valueMax: 100,
		bridgeLamp: true,
	},
	opLampSetDiscoMode: {
		payload:      [9]byte{0x31, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00},
		valueOffsets: []int{5},
		valueMin:     1, valueMax: 9,
		bridgeLamp: true,
	},
}

// build validates zone and value against the spec and returns the payload
// and zone byte for encoding. Out-of-range values are rejected, never
// clamped.
func (c commandSpec) build(zone, value int) ([]byte, byte, error) {
	if c.bridgeLamp {
		zone = 1
	} else if zone < ZoneAll || zone > MaxZone {
		return nil, 0, fmt.Errorf("zone %d not in 0..%d: %w", zone, MaxZone, ErrInvalidParameter)
	}

	payload := make([]byte, commandPayloadSize)
	copy(payload, c.payload[:])

	if len(c.valueOffsets) > 0 {
		if value < c.valueMin || value > c.valueMax {
			return nil, 0, fmt.Errorf("value %d not in %d..%d: %w", value, c.valueMin, c.valueMax, ErrInvalidParameter)
		}
		for _, off := range c.valueOffsets {
			payload[off] = byte(value)
		}
	}

	return payload, byte(zone), nil
}
