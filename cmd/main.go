package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/milight-go/milight/pkg/homekit"
	"github.com/milight-go/milight/pkg/milight"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// settings are the resolved connection parameters: command-line flags win
// over the optional YAML config file, which wins over protocol defaults.
type settings struct {
	IP      string  `yaml:"ip"`
	Port    int     `yaml:"port"`
	Timeout float64 `yaml:"timeout"`
	Zone    int     `yaml:"zone"`
}

func resolveSettings(c *cli.Context) (settings, error) {
	cfg := settings{
		Port:    milight.DefaultPort,
		Timeout: milight.DefaultTimeout.Seconds(),
	}

	if path := c.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(err, "parsing config file")
		}
	}

	if c.IsSet("ip") || cfg.IP == "" {
		cfg.IP = c.String("ip")
	}
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Float64("timeout")
	}
	if c.IsSet("zone") {
		cfg.Zone = c.Int("zone")
	}

	if cfg.IP == "" {
		return cfg, errors.New("bridge ip is required (--ip flag or config file)")
	}
	if cfg.Timeout <= 0 {
		return cfg, errors.New("timeout must be positive")
	}
	return cfg, nil
}

func connect(ctx context.Context, cfg settings) (*milight.Bridge, error) {
	b := milight.NewBridge(cfg.IP,
		milight.WithPort(cfg.Port),
		milight.WithTimeout(time.Duration(cfg.Timeout*float64(time.Second))),
	)
	if err := b.Setup(ctx); err != nil {
		return nil, errors.Wrap(err, "connecting to bridge")
	}
	return b, nil
}

// withBridge wraps a command action with settings resolution, bridge setup
// and teardown.
func withBridge(action func(c *cli.Context, b *milight.Bridge, cfg settings) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := resolveSettings(c)
		if err != nil {
			return err
		}

		b, err := connect(c.Context, cfg)
		if err != nil {
			slog.Error("Bridge setup failed", "ip", cfg.IP, "port", cfg.Port, "error", err)
			return err
		}
		defer b.Close()

		return action(c, b, cfg)
	}
}

// zoneCommand builds a subcommand for an operation addressed to a zone.
func zoneCommand(name, usage string, op func(*milight.Bridge, context.Context, int) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: withBridge(func(c *cli.Context, b *milight.Bridge, cfg settings) error {
			if err := op(b, c.Context, cfg.Zone); err != nil {
				return errors.Wrapf(err, "%s zone %d", name, cfg.Zone)
			}
			slog.Info("Command acknowledged", "command", name, "zone", cfg.Zone)
			return nil
		}),
	}
}

// valueCommand builds a subcommand for a zone operation carrying one
// bounded numeric value, taken from a required flag.
func valueCommand(name, usage, flagName, flagUsage string, op func(*milight.Bridge, context.Context, int, int) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: flagName, Usage: flagUsage, Required: true},
		},
		Action: withBridge(func(c *cli.Context, b *milight.Bridge, cfg settings) error {
			value := c.Int(flagName)
			if err := op(b, c.Context, cfg.Zone, value); err != nil {
				return errors.Wrapf(err, "%s zone %d", name, cfg.Zone)
			}
			slog.Info("Command acknowledged", "command", name, "zone", cfg.Zone, flagName, value)
			return nil
		}),
	}
}

// lampCommand builds a subcommand for a bridge-lamp operation.
func lampCommand(name, usage string, op func(*milight.Bridge, context.Context) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: withBridge(func(c *cli.Context, b *milight.Bridge, cfg settings) error {
			if err := op(b, c.Context); err != nil {
				return errors.Wrap(err, name)
			}
			slog.Info("Command acknowledged", "command", name)
			return nil
		}),
	}
}

// lampValueCommand is lampCommand for operations carrying a numeric value.
func lampValueCommand(name, usage, flagName, flagUsage string, op func(*milight.Bridge, context.Context, int) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: flagName, Usage: flagUsage, Required: true},
		},
		Action: withBridge(func(c *cli.Context, b *milight.Bridge, cfg settings) error {
			value := c.Int(flagName)
			if err := op(b, c.Context, value); err != nil {
				return errors.Wrap(err, name)
			}
			slog.Info("Command acknowledged", "command", name, flagName, value)
			return nil
		}),
	}
}

func main() {
	app := &cli.App{
		Name:  "milight",
		Usage: "Remote control for Milight 3.0 (LimitlessLED v6.0) light fixtures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ip",
				Usage: "IP address of the WiFi bridge",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "UDP port of the WiFi bridge",
				Value: milight.DefaultPort,
			},
			&cli.Float64Flag{
				Name:  "timeout",
				Usage: "Response timeout in seconds (fractional allowed)",
				Value: milight.DefaultTimeout.Seconds(),
			},
			&cli.IntFlag{
				Name:  "zone",
				Usage: "Zone to control (0 = all zones, 1-4)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file with default ip/port/timeout/zone",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "mac",
				Usage: "Print the MAC address of the bridge",
				Action: withBridge(func(c *cli.Context, b *milight.Bridge, cfg settings) error {
					fmt.Println(b.MACAddress())
					return nil
				}),
			},

			zoneCommand("on", "Turn the lights in a zone on", (*milight.Bridge).TurnOn),
			zoneCommand("off", "Turn the lights in a zone off", (*milight.Bridge).TurnOff),
			zoneCommand("night-mode", "Switch a zone to night mode", (*milight.Bridge).SetNightMode),
			zoneCommand("white-mode", "Switch a zone from color to white", (*milight.Bridge).SetWhiteMode),
			zoneCommand("link", "Link lights to a zone (power the light on max 3s before)", (*milight.Bridge).Link),
			zoneCommand("unlink", "Unlink lights from a zone (power the light on max 3s before)", (*milight.Bridge).Unlink),
			zoneCommand("disco-faster", "Speed up the running disco mode", (*milight.Bridge).SpeedUpDiscoMode),
			zoneCommand("disco-slower", "Slow down the running disco mode", (*milight.Bridge).SlowDownDiscoMode),

			valueCommand("color", "Set the color of a zone", "color", "Color byte (0-255, 255 = red)", (*milight.Bridge).SetColor),
			valueCommand("brightness", "Set the brightness of a zone", "brightness", "Brightness percentage (0-100)", (*milight.Bridge).SetBrightness),
			valueCommand("saturation", "Set the saturation of a zone", "saturation", "Saturation percentage (0-100)", (*milight.Bridge).SetSaturation),
			valueCommand("temperature", "Set the white temperature of a zone", "temperature", "Temperature percentage (0 = 2700K, 100 = 6500K)", (*milight.Bridge).SetTemperature),
			valueCommand("disco", "Select a disco mode for a zone", "mode", "Disco mode (1-9)", (*milight.Bridge).SetDiscoMode),

			lampCommand("lamp-on", "Turn the bridge's own lamp on", (*milight.Bridge).TurnOnBridgeLamp),
			lampCommand("lamp-off", "Turn the bridge's own lamp off", (*milight.Bridge).TurnOffBridgeLamp),
			lampCommand("lamp-white-mode", "Switch the bridge lamp to white", (*milight.Bridge).SetWhiteModeBridgeLamp),
			lampCommand("lamp-disco-faster", "Speed up the bridge lamp disco mode", (*milight.Bridge).SpeedUpDiscoModeBridgeLamp),
			lampCommand("lamp-disco-slower", "Slow down the bridge lamp disco mode", (*milight.Bridge).SlowDownDiscoModeBridgeLamp),

			lampValueCommand("lamp-color", "Set the color of the bridge lamp", "color", "Color byte (0-255, 255 = red)", (*milight.Bridge).SetColorBridgeLamp),
			lampValueCommand("lamp-brightness", "Set the brightness of the bridge lamp", "brightness", "Brightness percentage (0-100)", (*milight.Bridge).SetBrightnessBridgeLamp),
			lampValueCommand("lamp-disco", "Select a disco mode for the bridge lamp", "mode", "Disco mode (1-9)", (*milight.Bridge).SetDiscoModeBridgeLamp),

			{
				Name:  "accessory",
				Usage: "Expose zones as HomeKit lightbulbs",
				Flags: []cli.Flag{
					&cli.IntSliceFlag{
						Name:  "zones",
						Usage: "Zones to expose",
						Value: cli.NewIntSlice(1, 2, 3, 4),
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Directory for HomeKit pairing state",
						Value: "./db",
					},
				},
				Action: withBridge(func(c *cli.Context, b *milight.Bridge, cfg settings) error {
					return homekit.Serve(c.Context, b, c.IntSlice("zones"), c.String("store"))
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
