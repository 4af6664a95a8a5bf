package driver

// Stage identifies what the driver is doing to a file.
type Stage uint8

const (
	StageScan Stage = iota
	StageFix
)

// Status is the per-file lifecycle reported to progress sinks.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification. File is empty for run-wide events.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// ProgressSink receives events from the driver. Implementations must be
// safe for concurrent use: the parallel scanner publishes from workers.
type ProgressSink interface {
	Publish(Event)
}

// ChannelSink forwards events into a channel, dropping them when the
// receiver falls behind (прогресс не должен тормозить работу).
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) Publish(ev Event) {
	if s.Ch == nil {
		return
	}
	select {
	case s.Ch <- ev:
	default:
	}
}

func publish(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.Publish(ev)
	}
}
