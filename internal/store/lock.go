package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockDataDir takes an exclusive lock on the data directory so the engine
// and a one-shot scrape run never interleave CSV rewrites. Returns an error
// immediately if another process holds it.
func LockDataDir(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	fl := flock.New(filepath.Join(dataDir, ".jobtrends.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("data dir %s is locked by another jobtrends process", dataDir)
	}
	return fl, nil
}
