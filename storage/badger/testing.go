package badger

import "github.com/constellar/paperflow/storage"

// NewMemoryRepository creates an in-memory paper repository for testing.
// Caller must close both the repo and the backend when done.
func NewMemoryRepository() (storage.PaperRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewPaperRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
