// Package vidkeep is a Go library for personal video-library housekeeping.
//
// It joins clips into one file with FFmpeg's concat demuxer (stream copy, no
// re-encode), moves footage between folders with progress, and sorts video
// files into YYYY-MM-DD folders by creation date.
//
// Basic usage:
//
//	keeper, err := vidkeep.New(
//	    vidkeep.WithHWAccel("cuda"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := keeper.Concat(ctx, vidkeep.ConcatRequest{
//	    InputDir:  "clips/",
//	    OutputDir: "out/",
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Joined %d clips into %s\n", len(result.Inputs), result.OutputFile)
package vidkeep

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/five82/vidkeep/internal/concat"
	"github.com/five82/vidkeep/internal/config"
	"github.com/five82/vidkeep/internal/discovery"
	"github.com/five82/vidkeep/internal/ffmpeg"
	"github.com/five82/vidkeep/internal/logging"
	"github.com/five82/vidkeep/internal/organize"
	"github.com/five82/vidkeep/internal/reporter"
	"github.com/five82/vidkeep/internal/reveal"
	"github.com/five82/vidkeep/internal/transfer"
)

// Keeper is the main entry point.
type Keeper struct {
	config   *config.Config
	logger   *logging.Logger
	selector Selector
	revealer concat.Revealer
	runner   ffmpeg.Runner
	now      func() time.Time
}

// ConcatRequest describes a concatenation.
type ConcatRequest struct {
	InputDir  string
	OutputDir string
	// Files, when non-empty, are joined in this order instead of scanning InputDir.
	Files []string
	// Pick asks the configured Selector for the inputs.
	Pick bool
}

// ConcatResult contains the result of a concatenation.
type ConcatResult struct {
	OutputFile   string
	ManifestFile string
	Inputs       []string
}

// TransferRequest describes a move between folders.
type TransferRequest struct {
	SourceDir       string
	DestDir         string
	DeleteOriginals bool
	OrganizeByDate  bool
}

// TransferResult contains the result of a transfer.
type TransferResult struct {
	Moved   int
	Skipped int
	Failed  int
	Bytes   uint64
}

// OrganizeResult contains the result of a date organization.
type OrganizeResult struct {
	Moved       int
	Skipped     int
	RenamedDirs int
}

// Option configures the Keeper.
type Option func(*Keeper)

// New creates a new Keeper with the given options.
func New(opts ...Option) (*Keeper, error) {
	k := &Keeper{
		config:   config.NewConfig("", "", ""),
		revealer: reveal.Opener{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(k)
	}

	if err := k.config.Validate(); err != nil {
		return nil, err
	}

	return k, nil
}

// WithConfig replaces the defaults with cfg. Later options still apply on top.
func WithConfig(cfg *config.Config) Option {
	return func(k *Keeper) {
		c := *cfg
		k.config = &c
	}
}

// WithHWAccel sets the hardware decode API tried first ("none" disables).
func WithHWAccel(api string) Option {
	return func(k *Keeper) {
		k.config.HWAccel = api
	}
}

// WithFFmpegPath sets the FFmpeg binary.
func WithFFmpegPath(path string) Option {
	return func(k *Keeper) {
		k.config.FFmpegPath = path
	}
}

// WithConcatExtensions sets the extensions picked up when scanning for concat inputs.
func WithConcatExtensions(exts ...string) Option {
	return func(k *Keeper) {
		k.config.ConcatExtensions = discovery.NormalizeExtensions(exts)
	}
}

// WithTransferExtensions sets the extensions moved and organized.
func WithTransferExtensions(exts ...string) Option {
	return func(k *Keeper) {
		k.config.TransferExtensions = discovery.NormalizeExtensions(exts)
	}
}

// WithoutReveal stops Concat from opening the output folder.
func WithoutReveal() Option {
	return func(k *Keeper) {
		k.config.OpenOutputDir = false
	}
}

// WithSelector sets the collaborator used for ConcatRequest.Pick.
func WithSelector(s Selector) Option {
	return func(k *Keeper) {
		k.selector = s
	}
}

// WithVerboseFFmpeg mirrors FFmpeg's stderr to the terminal.
func WithVerboseFFmpeg() Option {
	return func(k *Keeper) {
		k.runner = ffmpeg.VerboseRunner()
	}
}

// WithLogger sends the operation log to an already open logger, sharing its
// file and lock.
func WithLogger(l *logging.Logger) Option {
	return func(k *Keeper) {
		k.logger = l
	}
}

// WithLogWriter sends the operation log to w.
func WithLogWriter(w io.Writer, verbose bool) Option {
	return func(k *Keeper) {
		k.logger = logging.New(w, verbose)
	}
}

// Config returns a copy of the effective configuration.
func (k *Keeper) Config() config.Config {
	return *k.config
}

func (k *Keeper) pipeline(rep Reporter) *concat.Pipeline {
	p := &concat.Pipeline{
		Concatenator: &ffmpeg.Invoker{
			Binary:  k.config.FFmpegPath,
			HWAccel: k.config.EffectiveHWAccel(),
			Runner:  k.runner,
			Logger:  k.logger,
			Trace:   rep.Verbose,
		},
		Selector:   k.selector,
		Extensions: k.config.ConcatExtensions,
		HWAccel:    k.config.EffectiveHWAccel(),
		Logger:     k.logger,
		Reporter:   rep,
		Now:        k.now,
	}
	if k.config.OpenOutputDir {
		p.Revealer = k.revealer
	}
	return p
}

// ConcatWithReporter joins the inputs of req into a new dated file, sending
// every event to rep. req.OutputDir must already exist.
func (k *Keeper) ConcatWithReporter(ctx context.Context, req ConcatRequest, rep Reporter) (*ConcatResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	p := k.pipeline(rep)
	run := concat.Request{InputDir: req.InputDir, OutputDir: req.OutputDir, SelectFiles: req.Pick}
	if len(req.Files) > 0 {
		p.Selector = concat.StaticSelector(req.Files)
		run.SelectFiles = true
	}

	res, err := p.Run(ctx, run)
	if err != nil {
		return nil, err
	}
	rep.OperationComplete(fmt.Sprintf("Joined %d files", len(res.Inputs)))

	return &ConcatResult{
		OutputFile:   res.OutputPath,
		ManifestFile: res.ManifestPath,
		Inputs:       res.Inputs,
	}, nil
}

// Concat joins the inputs of req into a new dated file.
func (k *Keeper) Concat(ctx context.Context, req ConcatRequest, handler EventHandler) (*ConcatResult, error) {
	return k.ConcatWithReporter(ctx, req, reporterFor(handler))
}

// TransferWithReporter moves videos from req.SourceDir to req.DestDir.
func (k *Keeper) TransferWithReporter(ctx context.Context, req TransferRequest, rep Reporter) (*TransferResult, error) {
	sum, err := transfer.Run(ctx, transfer.Options{
		SourceDir:       req.SourceDir,
		DestDir:         req.DestDir,
		Extensions:      k.config.TransferExtensions,
		DeleteOriginals: req.DeleteOriginals,
		OrganizeByDate:  req.OrganizeByDate,
		Logger:          k.logger,
		Reporter:        rep,
	})
	if sum == nil {
		return nil, err
	}
	return &TransferResult{
		Moved:   sum.Moved,
		Skipped: sum.Skipped,
		Failed:  sum.Failed,
		Bytes:   sum.Bytes,
	}, err
}

// Transfer moves videos from req.SourceDir to req.DestDir.
func (k *Keeper) Transfer(ctx context.Context, req TransferRequest, handler EventHandler) (*TransferResult, error) {
	return k.TransferWithReporter(ctx, req, reporterFor(handler))
}

// OrganizeWithReporter sorts the videos in dir into date folders.
func (k *Keeper) OrganizeWithReporter(ctx context.Context, dir string, rep Reporter) (*OrganizeResult, error) {
	res, err := organize.Run(ctx, organize.Options{
		Dir:        dir,
		Extensions: k.config.TransferExtensions,
		Logger:     k.logger,
		Reporter:   rep,
	})
	if res == nil {
		return nil, err
	}
	return &OrganizeResult{Moved: res.Moved, Skipped: res.Skipped, RenamedDirs: res.RenamedDirs}, err
}

// Organize sorts the videos in dir into date folders.
func (k *Keeper) Organize(ctx context.Context, dir string, handler EventHandler) (*OrganizeResult, error) {
	return k.OrganizeWithReporter(ctx, dir, reporterFor(handler))
}

// FindVideos finds video files in a directory. With no extensions given it
// accepts .mp4, .mov, .avi and .mkv.
func FindVideos(dir string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		return discovery.FindVideoFiles(dir, discovery.DefaultVideoExtensions)
	}
	return discovery.FindVideoFiles(dir, discovery.NormalizeExtensions(exts))
}

func reporterFor(handler EventHandler) Reporter {
	if handler == nil {
		return reporter.NullReporter{}
	}
	return newEventReporter(handler)
}

// eventReporter adapts EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) StageProgress(p reporter.StageProgress) {
	_ = r.handler(StageProgressEvent{
		BaseEvent: BaseEvent{EventType: EventTypeStageProgress, Time: NewTimestamp()},
		Stage:     p.Stage,
		Message:   p.Message,
	})
}

func (r *eventReporter) ConcatStarted(i reporter.ConcatStartInfo) {
	_ = r.handler(ConcatStartedEvent{
		BaseEvent: BaseEvent{EventType: EventTypeConcatStarted, Time: NewTimestamp()},
		InputDir:  i.InputDir,
		OutputDir: i.OutputDir,
		Files:     i.Files,
	})
}

func (r *eventReporter) ConcatComplete(o reporter.ConcatOutcome) {
	_ = r.handler(ConcatCompleteEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeConcatComplete, Time: NewTimestamp()},
		OutputFile: o.OutputPath,
		InputCount: o.InputCount,
		OutputSize: o.OutputSize,
	})
}

func (r *eventReporter) TransferStarted(i reporter.TransferStartInfo) {
	_ = r.handler(TransferStartedEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeTransferStarted, Time: NewTimestamp()},
		SourceDir:  i.SourceDir,
		DestDir:    i.DestDir,
		TotalFiles: i.TotalFiles,
		TotalBytes: i.TotalBytes,
	})
}

func (r *eventReporter) FileStarted(reporter.FileProgressContext) {}
func (r *eventReporter) FileBytes(uint64, uint64)                 {}

func (r *eventReporter) FileComplete(o reporter.FileOutcome) {
	_ = r.handler(FileCompleteEvent{
		BaseEvent:   BaseEvent{EventType: EventTypeFileComplete, Time: NewTimestamp()},
		Name:        o.Name,
		Destination: o.Destination,
		Skipped:     o.Skipped,
		Reason:      o.Reason,
	})
}

func (r *eventReporter) TransferComplete(s reporter.TransferSummary) {
	_ = r.handler(TransferCompleteEvent{
		BaseEvent: BaseEvent{EventType: EventTypeTransferComplete, Time: NewTimestamp()},
		Moved:     s.Moved,
		Skipped:   s.Skipped,
		Failed:    s.Failed,
		Bytes:     s.Bytes,
	})
}

func (r *eventReporter) OrganizeComplete(s reporter.OrganizeSummary) {
	_ = r.handler(OrganizeCompleteEvent{
		BaseEvent:   BaseEvent{EventType: EventTypeOrganizeComplete, Time: NewTimestamp()},
		Dir:         s.Dir,
		Moved:       s.Moved,
		Skipped:     s.Skipped,
		RenamedDirs: s.RenamedDirs,
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Error(e reporter.ReporterError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeError, Time: NewTimestamp()},
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}

func (r *eventReporter) OperationComplete(string) {}
func (r *eventReporter) Verbose(string)           {}
