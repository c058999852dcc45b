package core

import "time"

// Status tracks a paper's progress through the ingestion pipeline.
// It is the single source of truth for duplicate-run detection: a new
// submission for an identifier whose status is in-flight is rejected.
type Status string

const (
	// StatusPending means the record exists but no run has started yet.
	StatusPending Status = "pending"
	// StatusDownloading means the source PDF is being fetched.
	StatusDownloading Status = "downloading"
	// StatusConverting means chunks are being converted to markdown.
	StatusConverting Status = "converting"
	// StatusDensifying means sections are being densified.
	StatusDensifying Status = "densifying"
	// StatusComplete means the pipeline finished and results are stored.
	StatusComplete Status = "complete"
	// StatusFailed means a stage failed; ErrorMessage carries the cause.
	StatusFailed Status = "failed"
)

// InFlight reports whether a run is currently executing for this status.
func (s Status) InFlight() bool {
	switch s {
	case StatusDownloading, StatusConverting, StatusDensifying:
		return true
	}
	return false
}

// Valid reports whether s is one of the known pipeline statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDownloading, StatusConverting, StatusDensifying,
		StatusComplete, StatusFailed:
		return true
	}
	return false
}

// PaperRecord is the durable record of one ingested paper.
// Exactly one record exists per canonical arXiv identifier.
type PaperRecord struct {
	ArxivID           string
	PaperURL          string
	Title             string
	Status            Status
	ErrorMessage      string
	Markdown          string
	DensifiedMarkdown string
	WordCount         int
	PageCount         int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Chunk is an ordered, independently convertible slice of a source document.
// Index is the stable 0-based position used to reassemble results after
// concurrent conversion.
type Chunk struct {
	Index   int
	Payload []byte
}

// Section is an ordered (header, body) slice of a markdown document, the
// unit of densification. Header is empty for content preceding the first
// heading.
type Section struct {
	Header string
	Body   string
}

// Text renders the section as it appears in the document.
func (s Section) Text() string {
	if s.Header == "" {
		return s.Body
	}
	if s.Body == "" {
		return s.Header
	}
	return s.Header + "\n" + s.Body
}

// Outcome is the synchronous result of an ingestion submission.
type Outcome string

const (
	// OutcomeStarted means a new pipeline run was launched.
	OutcomeStarted Outcome = "started"
	// OutcomeInProgress means a run is already executing for the identifier.
	OutcomeInProgress Outcome = "in_progress"
	// OutcomeAlreadyComplete means the paper was already processed; only the
	// collection tagging side effect is performed.
	OutcomeAlreadyComplete Outcome = "already_complete"
	// OutcomeSkipped means no arXiv identifier could be derived from the input.
	OutcomeSkipped Outcome = "skipped"
)
