package domain

// SourceName identifies which upstream source produced a payload.
// Used for diagnostics only, never for business logic.
type SourceName string

const (
	SourceCombined    SourceName = "combined"    // daily dataset with history and predictions
	SourcePredictions SourceName = "predictions" // predictions-only dataset
	SourceSample      SourceName = "sample"      // static last-resort dataset
	SourceSynthetic   SourceName = "synthetic"   // generated after total source failure
)

// String returns the string representation of SourceName.
func (s SourceName) String() string {
	return string(s)
}

// Attempt outcomes recorded per source try.
const (
	AttemptOK          = "ok"
	AttemptHTTPError   = "http_error"
	AttemptBadStatus   = "bad_status"
	AttemptInvalidJSON = "invalid_json"
)

// ProvenanceRecord captures one fetch attempt against one source.
type ProvenanceRecord struct {
	ID        string     // uuid for cross-referencing log lines
	Source    SourceName // which source was tried
	URL       string     // resolved request URL
	Outcome   string     // one of the Attempt* constants
	Detail    string     // error text on failure, "" on success
	ElapsedMs int64      // wall time of the attempt
}
