package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/internal/config"
	"github.com/mesh-intelligence/rolodex/internal/kv"
	"github.com/mesh-intelligence/rolodex/internal/metrics"
	"github.com/mesh-intelligence/rolodex/internal/paths"
	"github.com/mesh-intelligence/rolodex/internal/session"
	"github.com/mesh-intelligence/rolodex/internal/store"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// app is everything one command invocation needs, opened from the resolved
// configuration and closed when the command returns.
type app struct {
	opts     *rootOptions
	out      *printer
	settings config.Settings
	dataDir  string
	logger   *zap.Logger
	metrics  *metrics.Metrics
	kv       types.KV
	store    *store.Store
	session  *session.Session
}

// withApp opens the app, runs fn and closes the app, keeping the first error.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(a *app) error) (err error) {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return nil, sysError("resolve config directory", err)
	}
	settings, err := config.Load(configDir)
	if err != nil {
		return nil, sysError("load config", err)
	}
	dataDir, err := paths.ResolveDataDir(opts.dataDir, settings.DataDir)
	if err != nil {
		return nil, sysError("resolve data directory", err)
	}
	logger, err := settings.NewLogger(opts.verbose)
	if err != nil {
		return nil, sysError("configure logging", err)
	}
	locale := language.Und
	if settings.Locale != "" {
		if locale, err = language.Parse(settings.Locale); err != nil {
			return nil, sysError("parse locale", err)
		}
	}

	logger.Debug("opening store",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("backend", settings.Backend))

	m := metrics.NewMetrics()
	backend, err := kv.Open(cmd.Context(), settings.KV(dataDir), logger)
	if err != nil {
		return nil, sysError("open storage", err)
	}
	st, err := store.Open(cmd.Context(), backend,
		store.WithLogger(logger),
		store.WithObserver(m),
		store.WithLocale(locale))
	if err != nil {
		backend.Close()
		return nil, sysError("load customers", err)
	}

	return &app{
		opts:     opts,
		out:      newPrinter(cmd.OutOrStdout(), opts.jsonMode),
		settings: settings,
		dataDir:  dataDir,
		logger:   logger,
		metrics:  m,
		kv:       backend,
		store:    st,
		session:  session.New(st, session.WithLogger(logger)),
	}, nil
}

// close releases the backend and writes the metrics textfile when one is
// configured.
func (a *app) close() error {
	var errs []error
	if err := a.kv.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	if path := a.settings.MetricsFile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	_ = a.logger.Sync()
	if err := errors.Join(errs...); err != nil {
		return sysError("shutdown", err)
	}
	return nil
}

// dispatch runs c and converts a failed result into an ExitError.
func (a *app) dispatch(cmd *cobra.Command, c session.Command) (session.Result, error) {
	res := a.session.Dispatch(cmd.Context(), c)
	if res.Err != nil {
		return res, classify(res.Notice.Message, res.Err)
	}
	return res, nil
}

// initDirs returns the directories init should create: flags and environment
// as usual, but project-local defaults rather than the user directories.
func initDirs(opts *rootOptions) (configDir, dataDirFlag string, err error) {
	configDir = opts.configDir
	if configDir == "" {
		configDir = os.Getenv(paths.EnvConfigDir)
	}
	if configDir == "" {
		configDir = paths.LocalConfigDirName
	}
	configDir, err = filepath.Abs(configDir)
	if err != nil {
		return "", "", err
	}
	if opts.dataDir != "" {
		if dataDirFlag, err = filepath.Abs(opts.dataDir); err != nil {
			return "", "", err
		}
	}
	return configDir, dataDirFlag, nil
}
