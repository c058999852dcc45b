package badger

// Key prefixes for different data types
const (
	paperRecordPrefix = "paprec"
)

// makePaperKey generates a key for a paper record by arXiv identifier.
func makePaperKey(arxivID string) []byte {
	return []byte(paperRecordPrefix + ":" + arxivID)
}
