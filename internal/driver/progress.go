package driver

import "time"

// Stage describes a pipeline phase of one file.
type Stage string

const (
	// StageLoad reads the file from disk.
	StageLoad Stage = "load"
	// StageParse lexes and parses the file.
	StageParse Stage = "parse"
	// StageCheck runs the type checker.
	StageCheck Stage = "check"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is in Stage.
	StatusWorking Status = "working"
	// StatusDone indicates the file checked clean.
	StatusDone Status = "done"
	// StatusError indicates the file produced errors.
	StatusError Status = "error"
	// StatusCached indicates the outcome came from the disk cache.
	StatusCached Status = "cached"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; CheckDir reports from several workers.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
