// Package reporter defines the event sink used by every vidkeep operation and
// its terminal and log implementations.
package reporter

import "time"

// Reporter receives progress and outcome events.
type Reporter interface {
	StageProgress(StageProgress)
	ConcatStarted(ConcatStartInfo)
	ConcatComplete(ConcatOutcome)
	TransferStarted(TransferStartInfo)
	FileStarted(FileProgressContext)
	FileBytes(written, total uint64)
	FileComplete(FileOutcome)
	TransferComplete(TransferSummary)
	OrganizeComplete(OrganizeSummary)
	Warning(message string)
	Error(ReporterError)
	OperationComplete(message string)
	Verbose(message string)
}

// StageProgress represents a generic stage update.
type StageProgress struct {
	Stage   string
	Message string
}

// ConcatStartInfo describes a concatenation run before FFmpeg is invoked.
type ConcatStartInfo struct {
	InputDir  string
	OutputDir string
	Files     []string
	HWAccel   string
}

// ConcatOutcome contains the result of a successful concatenation.
type ConcatOutcome struct {
	OutputPath   string
	ManifestPath string
	InputCount   int
	InputSize    uint64
	OutputSize   uint64
	TotalTime    time.Duration
}

// TransferStartInfo contains transfer start metadata.
type TransferStartInfo struct {
	SourceDir  string
	DestDir    string
	TotalFiles int
	TotalBytes uint64
}

// FileProgressContext contains current file index within a transfer.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
	Name        string
	Size        uint64
}

// FileOutcome describes one transferred file.
type FileOutcome struct {
	Name        string
	Destination string
	Skipped     bool
	Reason      string
}

// TransferSummary contains transfer completion information.
type TransferSummary struct {
	Moved            int
	Skipped          int
	Failed           int
	Bytes            uint64
	OriginalsDeleted bool
	Duration         time.Duration
}

// OrganizeSummary contains date-organization results.
type OrganizeSummary struct {
	Dir         string
	Moved       int
	Skipped     int
	RenamedDirs int
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) StageProgress(StageProgress)         {}
func (NullReporter) ConcatStarted(ConcatStartInfo)       {}
func (NullReporter) ConcatComplete(ConcatOutcome)        {}
func (NullReporter) TransferStarted(TransferStartInfo)   {}
func (NullReporter) FileStarted(FileProgressContext)     {}
func (NullReporter) FileBytes(uint64, uint64)            {}
func (NullReporter) FileComplete(FileOutcome)            {}
func (NullReporter) TransferComplete(TransferSummary)    {}
func (NullReporter) OrganizeComplete(OrganizeSummary)    {}
func (NullReporter) Warning(string)                      {}
func (NullReporter) Error(ReporterError)                 {}
func (NullReporter) OperationComplete(string)            {}
func (NullReporter) Verbose(string)                      {}

// CompositeReporter fans every event out to all of its reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter combines reporters; nil entries are dropped.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	c := &CompositeReporter{}
	for _, r := range reporters {
		if r != nil {
			c.reporters = append(c.reporters, r)
		}
	}
	return c
}

func (c *CompositeReporter) StageProgress(u StageProgress) {
	for _, r := range c.reporters {
		r.StageProgress(u)
	}
}

func (c *CompositeReporter) ConcatStarted(i ConcatStartInfo) {
	for _, r := range c.reporters {
		r.ConcatStarted(i)
	}
}

func (c *CompositeReporter) ConcatComplete(o ConcatOutcome) {
	for _, r := range c.reporters {
		r.ConcatComplete(o)
	}
}

func (c *CompositeReporter) TransferStarted(i TransferStartInfo) {
	for _, r := range c.reporters {
		r.TransferStarted(i)
	}
}

func (c *CompositeReporter) FileStarted(f FileProgressContext) {
	for _, r := range c.reporters {
		r.FileStarted(f)
	}
}

func (c *CompositeReporter) FileBytes(written, total uint64) {
	for _, r := range c.reporters {
		r.FileBytes(written, total)
	}
}

func (c *CompositeReporter) FileComplete(o FileOutcome) {
	for _, r := range c.reporters {
		r.FileComplete(o)
	}
}

func (c *CompositeReporter) TransferComplete(s TransferSummary) {
	for _, r := range c.reporters {
		r.TransferComplete(s)
	}
}

func (c *CompositeReporter) OrganizeComplete(s OrganizeSummary) {
	for _, r := range c.reporters {
		r.OrganizeComplete(s)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(e ReporterError) {
	for _, r := range c.reporters {
		r.Error(e)
	}
}

func (c *CompositeReporter) OperationComplete(message string) {
	for _, r := range c.reporters {
		r.OperationComplete(message)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
