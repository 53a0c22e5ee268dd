package milight

import "context"

// Zone operations. Zone 0 broadcasts to every zone, 1..4 address one group
// of linked fixtures.

// TurnOn switches the fixtures in a zone on.
func (b *Bridge) TurnOn(ctx context.Context, zone int) error {
	return b.send(ctx, opTurnOn, zone, 0)
}

// TurnOff switches the fixtures in a zone off.
func (b *Bridge) TurnOff(ctx context.Context, zone int) error {
	return b.send(ctx, opTurnOff, zone, 0)
}

// SetNightMode dims the fixtures in a zone to their night level.
func (b *Bridge) SetNightMode(ctx context.Context, zone int) error {
	return b.send(ctx, opNightMode, zone, 0)
}

// SetWhiteMode switches the fixtures in a zone from color to white.
func (b *Bridge) SetWhiteMode(ctx context.Context, zone int) error {
	return b.send(ctx, opWhiteMode, zone, 0)
}

// Link pairs fixtures to a zone. The fixture must have been powered on
// within the preceding three seconds.
func (b *Bridge) Link(ctx context.Context, zone int) error {
	return b.send(ctx, opLink, zone, 0)
}

// Unlink unpairs fixtures from a zone, under the same three-second rule
// as Link.
func (b *Bridge) Unlink(ctx context.Context, zone int) error {
	return b.send(ctx, opUnlink, zone, 0)
}

// SetColor sets the hue of a zone. The bridge color wheel is a single
// byte: 0xFF red, 0xBA blue, 0x7A green, 0x3B yellow.
func (b *Bridge) SetColor(ctx context.Context, zone, color int) error {
	return b.send(ctx, opSetColor, zone, color)
}

// SetBrightness sets zone brightness as a percentage, 0 to 100.
func (b *Bridge) SetBrightness(ctx context.Context, zone, brightness int) error {
	return b.send(ctx, opSetBrightness, zone, brightness)
}

// SetSaturation sets zone color saturation as a percentage, 0 to 100.
func (b *Bridge) SetSaturation(ctx context.Context, zone, saturation int) error {
	return b.send(ctx, opSetSaturation, zone, saturation)
}

// SetTemperature sets zone white temperature as a percentage: 0 is warm
// white (2700K), 100 is cool daylight (6500K). See the temperature presets.
func (b *Bridge) SetTemperature(ctx context.Context, zone, temperature int) error {
	return b.send(ctx, opSetTemperature, zone, temperature)
}

// SetDiscoMode selects one of the nine animation programs for a zone.
func (b *Bridge) SetDiscoMode(ctx context.Context, zone, mode int) error {
	return b.send(ctx, opSetDiscoMode, zone, mode)
}

// SpeedUpDiscoMode accelerates the running animation in a zone.
func (b *Bridge) SpeedUpDiscoMode(ctx context.Context, zone int) error {
	return b.send(ctx, opDiscoSpeedUp, zone, 0)
}

// SlowDownDiscoMode decelerates the running animation in a zone.
func (b *Bridge) SlowDownDiscoMode(ctx context.Context, zone int) error {
	return b.send(ctx, opDiscoSlowDown, zone, 0)
}

// Bridge lamp operations address the indicator lamp on the bridge itself.

// TurnOnBridgeLamp switches the bridge's own lamp on.
func (b *Bridge) TurnOnBridgeLamp(ctx context.Context) error {
	return b.send(ctx, opLampOn, 0, 0)
}

// TurnOffBridgeLamp switches the bridge's own lamp off.
func (b *Bridge) TurnOffBridgeLamp(ctx context.Context) error {
	return b.send(ctx, opLampOff, 0, 0)
}

// SetWhiteModeBridgeLamp switches the bridge lamp from color to white.
func (b *Bridge) SetWhiteModeBridgeLamp(ctx context.Context) error {
	return b.send(ctx, opLampWhiteMode, 0, 0)
}

// SetColorBridgeLamp sets the hue of the bridge lamp.
func (b *Bridge) SetColorBridgeLamp(ctx context.Context, color int) error {
	return b.send(ctx, opLampSetColor, 0, color)
}

// SetBrightnessBridgeLamp sets bridge lamp brightness, 0 to 100 percent.
func (b *Bridge) SetBrightnessBridgeLamp(ctx context.Context, brightness int) error {
	return b.send(ctx, opLampSetBrightness, 0, brightness)
}

// SetDiscoModeBridgeLamp selects an animation program for the bridge lamp.
func (b *Bridge) SetDiscoModeBridgeLamp(ctx context.Context, mode int) error {
	return b.send(ctx, opLampSetDiscoMode, 0, mode)
}

// SpeedUpDiscoModeBridgeLamp accelerates the bridge lamp animation.
func (b *Bridge) SpeedUpDiscoModeBridgeLamp(ctx context.Context) error {
	return b.send(ctx, opLampDiscoSpeedUp, 0, 0)
}

// SlowDownDiscoModeBridgeLamp decelerates the bridge lamp animation.
func (b *Bridge) SlowDownDiscoModeBridgeLamp(ctx context.Context) error {
	return b.send(ctx, opLampDiscoSlowDown, 0, 0)
}
