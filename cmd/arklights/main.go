package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thenewark/arklights/internal/config"
	"github.com/thenewark/arklights/internal/controller"
	"github.com/thenewark/arklights/internal/driver"
	"github.com/thenewark/arklights/internal/driver/fake"
	"github.com/thenewark/arklights/internal/driver/spihw"
	"github.com/thenewark/arklights/internal/pattern"
	"github.com/thenewark/arklights/internal/serlink"
	"github.com/thenewark/arklights/internal/topology"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		device     = flag.String("serial", "/dev/ttyACM0", "host serial device")
		baud       = flag.Int("baud", 57600, "serial baud rate")
		drvName    = flag.String("driver", "spi", "LED driver: spi | fake")
		spiPort    = flag.String("spi", "", "SPI port name (empty = first available)")
		seed       = flag.Int64("seed", 42, "random stream seed")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where set) ----
	eDevice, eBaud := *device, *baud
	eDriver, eSPI := *drvName, *spiPort
	eSeed, eDebug := *seed, *debug
	if cfg != nil {
		if cfg.Serial.Device != "" {
			eDevice = cfg.Serial.Device
		}
		if cfg.Serial.Baud > 0 {
			eBaud = cfg.Serial.Baud
		}
		if cfg.Driver != "" {
			eDriver = cfg.Driver
		}
		if cfg.SPI.Port != "" {
			eSPI = cfg.SPI.Port
		}
		if cfg.Seed != 0 {
			eSeed = cfg.Seed
		}
		eDebug = eDebug || cfg.Debug
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if eDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// The topology tables are fixed, but a miswired table lights the
	// wrong bulbs forever; refuse to start on one.
	if err := topology.Validate(); err != nil {
		log.Fatal().Err(err).Msg("LED topology invalid")
	}

	link, err := serlink.Open(eDevice, eBaud, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("serial link failed")
	}
	defer link.Close()

	var drv driver.Driver
	switch eDriver {
	case "fake":
		drv = fake.New(topology.NumLEDs)
	default:
		hw, err := spihw.New(eSPI, topology.NumLEDs, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("LED driver failed")
		}
		defer hw.Halt()
		drv = hw
	}

	eng, err := pattern.NewEngine(drv, link, eSeed, pattern.RealClock(), log.Logger)
	if err != nil {
		// No safe degraded lighting mode exists; halt.
		log.Fatal().Err(err).Msg("pattern engine failed")
	}

	ctrl := controller.New(link, eng, log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
	}()

	log.Info().
		Str("serial", eDevice).
		Int("baud", eBaud).
		Str("driver", eDriver).
		Int64("seed", eSeed).
		Msg("arklights ready")

	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("controller stopped")
	}
}
