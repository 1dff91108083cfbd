package driver

// Stage is the step a file is in.
type Stage uint8

const (
	StageQueued Stage = iota
	StageLoad
	StageParse
	StageCache
)

// Status of a progress event.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// ProgressEvent reports one file changing stage. File is empty for events
// about the whole run.
type ProgressEvent struct {
	File   string
	Stage  Stage
	Status Status
	Roots  int
	Diags  int
}

// ProgressSink receives events from ParseDir workers concurrently.
type ProgressSink func(ProgressEvent)

func (s ProgressSink) emit(ev ProgressEvent) {
	if s != nil {
		s(ev)
	}
}
