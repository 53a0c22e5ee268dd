// Package homekit exposes milight zones as HomeKit lightbulb accessories.
package homekit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	slogctx "github.com/veqryn/slog-context"

	"github.com/milight-go/milight/pkg/milight"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

type zoneController struct {
	bridge *milight.Bridge
	zone   int
	acc    *accessory.ColoredLightbulb
}

// Serve publishes one colored lightbulb per zone behind a HomeKit bridge
// accessory and blocks until ctx is cancelled or an interrupt arrives.
// The milight bridge must already be set up.
func Serve(ctx context.Context, bridge *milight.Bridge, zones []int, storePath string) error {
	h := slogctx.NewHandler(slog.NewTextHandler(os.Stdout, nil), nil)
	slog.SetDefault(slog.New(h))

	ctx = slogctx.Append(ctx, "bridge-mac", bridge.MACAddress())
	slog.InfoContext(ctx, "Starting HomeKit accessory", "zones", zones)

	// Setup a listener for interrupts and SIGTERM signals
	// to stop the server.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-sigChan
		slog.Info("Interrupt signal received")
		signal.Stop(sigChan)
		cancel()
	}()

	hub := accessory.NewBridge(accessory.Info{
		Name:         "Milight",
		SerialNumber: bridge.MACAddress(),
		Manufacturer: "Milight",
	})

	accs := make([]*accessory.A, 0, len(zones))
	for _, zone := range zones {
		zc, err := newZoneController(ctx, bridge, zone)
		if err != nil {
			return errors.Wrapf(err, "creating accessory for zone %d", zone)
		}
		accs = append(accs, zc.acc.A)
	}

	server, err := hap.NewServer(hap.NewFsStore(storePath), hub.A, accs...)
	if err != nil {
		return errors.Wrap(err, "creating server")
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(server.ListenAndServe)
	return p.Wait()
}

func newZoneController(ctx context.Context, bridge *milight.Bridge, zone int) (*zoneController, error) {
	if zone < 1 || zone > milight.MaxZone {
		return nil, errors.Errorf("zone %d not exposable (must be 1..%d)", zone, milight.MaxZone)
	}

	zc := &zoneController{
		bridge: bridge,
		zone:   zone,
		acc: accessory.NewColoredLightbulb(accessory.Info{
			Name:         fmt.Sprintf("Milight Zone %d", zone),
			SerialNumber: fmt.Sprintf("%s-%d", bridge.MACAddress(), zone),
			Manufacturer: "Milight",
		}),
	}

	ctx = slogctx.Append(ctx, "zone", zone)
	lb := zc.acc.Lightbulb

	lb.On.OnSetRemoteValue(func(on bool) error {
		slog.InfoContext(ctx, "Power set", "on", on)
		if on {
			return errors.Wrap(zc.bridge.TurnOn(ctx, zc.zone), "turning zone on")
		}
		return errors.Wrap(zc.bridge.TurnOff(ctx, zc.zone), "turning zone off")
	})

	lb.Brightness.OnSetRemoteValue(func(v int) error {
		slog.InfoContext(ctx, "Brightness set", "brightness", v)
		return errors.Wrap(zc.bridge.SetBrightness(ctx, zc.zone, v), "setting brightness")
	})

	lb.Hue.OnSetRemoteValue(func(v float64) error {
		slog.InfoContext(ctx, "Hue set", "hue", v)
		return errors.Wrap(zc.bridge.SetColor(ctx, zc.zone, hueToColor(v)), "setting color")
	})

	lb.Saturation.OnSetRemoteValue(func(v float64) error {
		slog.InfoContext(ctx, "Saturation set", "saturation", v)
		return errors.Wrap(zc.bridge.SetSaturation(ctx, zc.zone, int(v)), "setting saturation")
	})

	return zc, nil
}

// hueToColor maps the HomeKit hue circle (degrees) onto the bridge's 8-bit
// color wheel. The wheel wraps, with red sitting at both ends; fixture
// rendering of intermediate values varies between bulb revisions.
func hueToColor(hue float64) int {
	return int(hue*256/360) % 256
}
