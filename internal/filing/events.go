package filing

import "github.com/joseph-ayodele/docsorter/constants"

// EventKind tags an Event.
type EventKind string

const (
	EventStarted  EventKind = "started"  // Total is set
	EventLog      EventKind = "log"      // Message is set
	EventFile     EventKind = "file"     // per-file result, before its progress tick
	EventProgress EventKind = "progress" // exactly once per input file
	EventDone     EventKind = "done"     // exactly once, Summary is set
	EventFailed   EventKind = "failed"   // input enumeration failed; terminal, Err is set
)

// Event is a message from the filing worker to whoever presents the pass.
type Event struct {
	Kind    EventKind
	Message string

	Total int // started

	// file
	Source  string
	Target  string
	Outcome constants.Outcome
	Err     error

	// progress
	Done int

	Summary Summary // done
}

// Summary totals one organize pass.
type Summary struct {
	RunID     string `json:"run_id"`
	DryRun    bool   `json:"dry_run"`
	Total     int    `json:"total"`
	Moved     int    `json:"moved"`
	Simulated int    `json:"simulated"`
	Unsorted  int    `json:"unsorted"`
	Failed    int    `json:"failed"`
}

func (s *Summary) add(o constants.Outcome) {
	switch o {
	case constants.OutcomeMoved:
		s.Moved++
	case constants.OutcomeSimulated:
		s.Simulated++
	case constants.OutcomeUnsorted:
		s.Unsorted++
	case constants.OutcomeError:
		s.Failed++
	}
}

// Callbacks receive events on the goroutine that calls Pump. Nil fields are skipped.
type Callbacks struct {
	Log      func(msg string)
	File     func(ev Event)
	Progress func(done, total int)
	Done     func(s Summary)
	Failed   func(err error)
}

// Pump drains events into cb until the channel is closed.
func Pump(events <-chan Event, cb Callbacks) {
	total := 0
	for ev := range events {
		switch ev.Kind {
		case EventStarted:
			total = ev.Total
		case EventLog:
			if cb.Log != nil {
				cb.Log(ev.Message)
			}
		case EventFile:
			if cb.File != nil {
				cb.File(ev)
			}
		case EventProgress:
			if cb.Progress != nil {
				cb.Progress(ev.Done, total)
			}
		case EventDone:
			if cb.Done != nil {
				cb.Done(ev.Summary)
			}
		case EventFailed:
			if cb.Failed != nil {
				cb.Failed(ev.Err)
			}
		}
	}
}
