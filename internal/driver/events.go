package driver

// Stage describes a phase of a run.
type Stage string

const (
	// StageParse is the log parsing stage.
	StageParse Stage = "parse"
	// StageFix is the per-file editing stage.
	StageFix Stage = "fix"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to be fixed.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage or file is in progress.
	StatusWorking Status = "working"
	// StatusDone indicates the stage or file finished.
	StatusDone Status = "done"
	// StatusError indicates the stage or file failed.
	StatusError Status = "error"
)

// Event is a progress notification. File is empty for stage-wide events.
type Event struct {
	Stage   Stage
	Status  Status
	File    string
	Fixed   int
	Unfixed int
}

// ProgressSink receives events while Run works.
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

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
