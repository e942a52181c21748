package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/five82/vidkeep"
	"github.com/five82/vidkeep/internal/config"
	"github.com/five82/vidkeep/internal/logging"
	"github.com/five82/vidkeep/internal/reporter"
)

// commonArgs are accepted by every command.
type commonArgs struct {
	configPath string
	logDir     string
	verbose    bool
	noLog      bool
}

func (ca *commonArgs) register(fs *flag.FlagSet) {
	fs.StringVar(&ca.configPath, "config", "", "Config file")
	fs.StringVar(&ca.logDir, "l", "", "Log directory")
	fs.StringVar(&ca.logDir, "log-dir", "", "Log directory")
	fs.BoolVar(&ca.verbose, "v", false, "Enable verbose output")
	fs.BoolVar(&ca.verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&ca.noLog, "no-log", false, "Disable log file creation")
}

const commonUsage = `
Common Options:
  --config <PATH>        Config file (defaults to ~/.config/vidkeep/config.toml)
  -l, --log-dir <PATH>   Log directory (defaults to ~/.local/state/vidkeep/logs)
  -v, --verbose          Enable verbose output for troubleshooting
  --no-log               Disable log file creation
`

// session is the state shared by one command run.
type session struct {
	cfg     *config.Config
	cfgPath string
	logger  *logging.Logger
	rep     reporter.Reporter
}

func openSession(ca commonArgs) (*session, error) {
	cfgPath := ca.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	legacy := filepath.Join(filepath.Dir(cfgPath), config.LegacyFileName)
	cfg, err := config.Load(cfgPath, legacy)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = ca.verbose

	// Resolve log directory
	logDir := ca.logDir
	if logDir == "" {
		logDir = cfg.LogDir
	}
	if logDir == "" {
		logDir = logging.DefaultLogDir()
	}

	// Setup file logging
	logger, err := logging.Setup(logDir, ca.verbose, ca.noLog, os.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	logger.Info("Config: %s", cfgPath)

	// Combine terminal and log reporter so all events go to both
	termRep := reporter.NewTerminalReporterVerbose(ca.verbose)
	var rep reporter.Reporter = termRep
	if logger != nil {
		rep = reporter.NewCompositeReporter(termRep, reporter.NewLogReporter(logger.Writer()))
	}

	return &session{cfg: cfg, cfgPath: cfgPath, logger: logger, rep: rep}, nil
}

func (s *session) close() {
	_ = s.logger.Close()
}

func (s *session) keeper(opts ...vidkeep.Option) (*vidkeep.Keeper, error) {
	base := []vidkeep.Option{
		vidkeep.WithConfig(s.cfg),
		vidkeep.WithLogger(s.logger),
	}
	if s.cfg.Verbose {
		base = append(base, vidkeep.WithVerboseFFmpeg())
	}
	k, err := vidkeep.New(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return k, nil
}

func (s *session) saveConfig() error {
	if err := config.Save(s.cfgPath, s.cfg); err != nil {
		return err
	}
	s.logger.Info("Saved settings to %s", s.cfgPath)
	return nil
}

// signalContext is cancelled on SIGINT/SIGTERM. Transfers stop between
// files; a running FFmpeg concat is never interrupted through it.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
