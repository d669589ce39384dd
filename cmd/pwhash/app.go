package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hasbyte1/go-pwhash/hashing"
	"github.com/hasbyte1/go-pwhash/hashmetrics"
	"github.com/hasbyte1/go-pwhash/internal/config"
	"github.com/hasbyte1/go-pwhash/internal/logger"
)

var (
	errMismatch     = errors.New("password does not match")
	errWeakPassword = errors.New("password too weak")
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to a YAML, TOML or JSON config file",
		EnvVars: []string{"PWHASH_CONFIG"},
	}
	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Hashing driver; defaults to hashing.driver from the configuration",
	}
	minScoreFlag = &cli.IntFlag{
		Name:  "min-score",
		Usage: "Reject passwords whose zxcvbn strength score (0-4) is below this value",
	}
)

// state is shared by the commands of one invocation.
type state struct {
	cfg      *config.AppConfig
	log      *zap.Logger
	manager  *hashing.Manager
	registry *prometheus.Registry
}

// newApp builds the command tree.  A nil lg means a logger is created from
// the loaded configuration.
func newApp(lg *zap.Logger) *cli.App {
	st := &state{log: lg}
	return &cli.App{
		Name:     filepath.Base(os.Args[0]),
		Usage:    "hash and verify passwords",
		Flags:    []cli.Flag{configFlag},
		Before:   st.setup,
		After:    st.teardown,
		Commands: st.commands(),
	}
}

func (st *state) setup(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st.cfg = cfg

	if st.log == nil {
		st.log, err = logger.New(cfg.App.Env, cfg.App.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
	}

	st.manager, err = config.BuildManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to build hash manager: %w", err)
	}

	if cfg.Metrics.Textfile != "" {
		st.registry = prometheus.NewRegistry()
		m, err := hashmetrics.NewMetrics(hashmetrics.Options{Registerer: st.registry})
		if err != nil {
			return err
		}
		if err := hashmetrics.WrapManager(st.manager, m, config.Drivers...); err != nil {
			return err
		}
	}

	st.log.Debug("configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.String("default_driver", string(st.manager.DefaultDriver())),
		zap.Bool("metrics", st.registry != nil),
	)
	return nil
}

func (st *state) teardown(ctx *cli.Context) error {
	if st.log == nil {
		return nil
	}
	defer func() { _ = st.log.Sync() }()

	if st.registry == nil {
		return nil
	}
	path := st.cfg.Metrics.Textfile
	if err := prometheus.WriteToTextfile(path, st.registry); err != nil {
		st.log.Error("failed to write metrics", zap.String("path", path), zap.Error(err))
		return err
	}
	st.log.Debug("metrics written", zap.String("path", path))
	return nil
}

// hasher returns the driver named by --driver, or the default driver.
func (st *state) hasher(ctx *cli.Context) (hashing.Hasher, error) {
	name := hashing.DriverName(ctx.String(driverFlag.Name))
	if name == "" {
		name = st.manager.DefaultDriver()
	}
	return st.manager.Driver(name)
}
