package vidkeep

import "time"

// Event types.
const (
	EventTypeStageProgress    = "stage_progress"
	EventTypeConcatStarted    = "concat_started"
	EventTypeConcatComplete   = "concat_complete"
	EventTypeTransferStarted  = "transfer_started"
	EventTypeFileComplete     = "file_complete"
	EventTypeTransferComplete = "transfer_complete"
	EventTypeOrganizeComplete = "organize_complete"
	EventTypeWarning          = "warning"
	EventTypeError            = "error"
)

// Event is the interface for all vidkeep events.
type Event interface {
	Type() string
	Timestamp() int64
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType string `json:"type"`
	Time      int64  `json:"timestamp"`
}

func (e BaseEvent) Type() string     { return e.EventType }
func (e BaseEvent) Timestamp() int64 { return e.Time }

// StageProgressEvent represents a stage update.
type StageProgressEvent struct {
	BaseEvent
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ConcatStartedEvent is sent once the inputs are resolved.
type ConcatStartedEvent struct {
	BaseEvent
	InputDir  string   `json:"input_dir"`
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"`
}

// ConcatCompleteEvent represents a finished concatenation.
type ConcatCompleteEvent struct {
	BaseEvent
	OutputFile string `json:"output_file"`
	InputCount int    `json:"input_count"`
	OutputSize uint64 `json:"output_size"`
}

// TransferStartedEvent is sent before the first file is copied.
type TransferStartedEvent struct {
	BaseEvent
	SourceDir  string `json:"source_dir"`
	DestDir    string `json:"dest_dir"`
	TotalFiles int    `json:"total_files"`
	TotalBytes uint64 `json:"total_bytes"`
}

// FileCompleteEvent represents one transferred or skipped file.
type FileCompleteEvent struct {
	BaseEvent
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Skipped     bool   `json:"skipped"`
	Reason      string `json:"reason,omitempty"`
}

// TransferCompleteEvent represents transfer completion.
type TransferCompleteEvent struct {
	BaseEvent
	Moved   int    `json:"moved"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
	Bytes   uint64 `json:"bytes"`
}

// OrganizeCompleteEvent represents date organization completion.
type OrganizeCompleteEvent struct {
	BaseEvent
	Dir         string `json:"dir"`
	Moved       int    `json:"moved"`
	Skipped     int    `json:"skipped"`
	RenamedDirs int    `json:"renamed_dirs"`
}

// WarningEvent represents a warning message.
type WarningEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// ErrorEvent represents an error.
type ErrorEvent struct {
	BaseEvent
	Title      string `json:"title"`
	Message    string `json:"message"`
	Context    string `json:"context"`
	Suggestion string `json:"suggestion"`
}

// EventHandler is called with events during an operation.
type EventHandler func(Event) error

// NewTimestamp returns the current Unix timestamp.
func NewTimestamp() int64 {
	return time.Now().Unix()
}
