package constants

// Fixed category directories under the output root.
const (
	// CategoryOther receives every non-PDF file, name unchanged.
	CategoryOther = "Λοιπά"
	// CategoryUnsorted receives PDFs that could not be identified.
	CategoryUnsorted = "Unsorted"
	// CategoryUncertainDate receives identified PDFs whose date token would not parse.
	CategoryUncertainDate = "UNCERTAIN_DATE"
	// CategoryGeneral is used when a matched rule has an empty name.
	CategoryGeneral = "General"
)

// Extraction sentinels.
const (
	DocTypeUnknown    = "UNKNOWN"
	GroupUncertain    = "UNCERTAIN"
	MatchConfidence   = 0.9
	NoMatchConfidence = 0.0
)

// Filename markers.
const (
	UnsortedPrefix = "CHECK_"
	NoNumber       = "NO_NUM"
	UnknownMonth   = "Unknown"
)
