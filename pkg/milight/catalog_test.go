package milight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogPayloads(t *testing.T) {
	tests := []struct {
		name    string
		op      operation
		zone    int
		value   int
		payload string
		zoneOut byte
	}{
		{name: "turn on", op: opTurnOn, zone: 1, payload: "310000080401000000", zoneOut: 1},
		{name: "turn off", op: opTurnOff, zone: 2, payload: "310000080402000000", zoneOut: 2},
		{name: "night mode", op: opNightMode, zone: 3, payload: "310000080405000000", zoneOut: 3},
		{name: "white mode", op: opWhiteMode, zone: 4, payload: "310000080564000000", zoneOut: 4},
		{name: "disco speed up", op: opDiscoSpeedUp, zone: 0, payload: "310000080403000000", zoneOut: 0},
		{name: "disco slow down", op: opDiscoSlowDown, zone: 0, payload: "310000080404000000", zoneOut: 0},
		{name: "link", op: opLink, zone: 1, payload: "3d0000080000000000", zoneOut: 1},
		{name: "unlink", op: opUnlink, zone: 1, payload: "3e0000080000000000", zoneOut: 1},
		{name: "color", op: opSetColor, zone: 1, value: 0xBA, payload: "3100000801babababa", zoneOut: 1},
		{name: "brightness", op: opSetBrightness, zone: 1, value: 50, payload: "310000080332000000", zoneOut: 1},
		{name: "saturation", op: opSetSaturation, zone: 1, value: 100, payload: "310000080264000000", zoneOut: 1},
		{name: "temperature", op: opSetTemperature, zone: 1, value: CoolWhite, payload: "310000080523000000", zoneOut: 1},
		{name: "disco mode", op: opSetDiscoMode, zone: 1, value: 9, payload: "310000080609000000", zoneOut: 1},

		// Bridge lamp commands always land on zone 1, whatever was asked.
		{name: "lamp on", op: opLampOn, zone: 0, payload: "310000000303000000", zoneOut: 1},
		{name: "lamp off", op: opLampOff, zone: 3, payload: "310000000304000000", zoneOut: 1},
		{name: "lamp white mode", op: opLampWhiteMode, zone: 0, payload: "310000000305000000", zoneOut: 1},
		{name: "lamp disco speed up", op: opLampDiscoSpeedUp, zone: 0, payload: "310000000302000000", zoneOut: 1},
		{name: "lamp disco slow down", op: opLampDiscoSlowDown, zone: 0, payload: "310000000301000000", zoneOut: 1},
		{name: "lamp color", op: opLampSetColor, zone: 0, value: 0x1E, payload: "31000000011e1e1e1e", zoneOut: 1},
		{name: "lamp brightness", op: opLampSetBrightness, zone: 0, value: 0, payload: "310000000200000000", zoneOut: 1},
		{name: "lamp disco mode", op: opLampSetDiscoMode, zone: 0, value: 1, payload: "310000000401000000", zoneOut: 1},
	}

	a := assert.New(t)
	for _, test := range tests {
		spec, ok := catalog[test.op]
		a.True(ok, test.name)

		payload, zone, err := spec.build(test.zone, test.value)
		a.NoError(err, test.name)
		a.EqualValues(mustDecode(test.payload), payload, test.name)
		a.Equal(test.zoneOut, zone, test.name)

		// Every catalog entry must survive the encode/validate round trip.
		frame, err := encodeCommand(testSession, 0x01, zone, payload)
		a.NoError(err, test.name)
		a.True(validChecksum(frame), test.name)
	}
}

func TestCatalogRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name  string
		op    operation
		value int
	}{
		{name: "brightness above range", op: opSetBrightness, value: 150},
		{name: "brightness below range", op: opSetBrightness, value: -1},
		{name: "saturation above range", op: opSetSaturation, value: 101},
		{name: "temperature above range", op: opSetTemperature, value: 255},
		{name: "color above range", op: opSetColor, value: 256},
		{name: "disco mode zero", op: opSetDiscoMode, value: 0},
		{name: "disco mode above range", op: opSetDiscoMode, value: 10},
		{name: "lamp brightness above range", op: opLampSetBrightness, value: 101},
		{name: "lamp disco mode above range", op: opLampSetDiscoMode, value: 10},
	}

	a := assert.New(t)
	for _, test := range tests {
		_, _, err := catalog[test.op].build(1, test.value)
		a.ErrorIs(err, ErrInvalidParameter, test.name)
	}
}

func TestCatalogRejectsInvalidZones(t *testing.T) {
	a := assert.New(t)

	for _, zone := range []int{-1, 5, 255} {
		_, _, err := catalog[opTurnOn].build(zone, 0)
		a.ErrorIs(err, ErrInvalidParameter, "zone %d", zone)
	}
}

func TestCatalogValueTemplatesAreZeroed(t *testing.T) {
	a := assert.New(t)

	// A template with a preset byte at a value offset would leak into
	// frames when the offsets are filled; guard the whole table.
	for op, spec := range catalog {
		for _, off := range spec.valueOffsets {
			a.Zero(spec.payload[off], "operation %d offset %d", op, off)
		}
	}
}
