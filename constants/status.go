package constants

// Outcome is the terminal state of a single file in an organize pass.
type Outcome string

// Stable values (stored as-is in the journal).
const (
	OutcomeMoved     Outcome = "MOVED"     // file moved into its category
	OutcomeSimulated Outcome = "SIMULATED" // dry run, nothing touched
	OutcomeUnsorted  Outcome = "UNSORTED"  // moved into the Unsorted bucket
	OutcomeError     Outcome = "ERROR"     // per-file failure, file left in place
)

// AllOutcomes lists every outcome in display order.
var AllOutcomes = []Outcome{OutcomeMoved, OutcomeUnsorted, OutcomeSimulated, OutcomeError}
