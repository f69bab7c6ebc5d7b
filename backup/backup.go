// Package backup keeps pristine copies of audio files before their tags
// are rewritten, with a JSON manifest mapping originals to backups.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mood-tagger/utils"
)

const manifestFile = "manifest.json"

// Entry records one backed-up file in the manifest.
type Entry struct {
	Original   string    `json:"original"`
	BackupName string    `json:"backupName"`
	BackedUpAt time.Time `json:"backedUpAt"`
}

// Store manages a single backup directory. Safe for concurrent use.
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) (*Store, error) {
	if err := utils.CreateFolder(dir); err != nil {
		return nil, fmt.Errorf("error creating backup directory: %v", err)
	}
	return &Store{dir: dir}, nil
}

// Backup copies the file into the backup directory before it is modified.
// A file already present in the manifest is not backed up again, so the
// stored copy always reflects the pre-tagging original.
func (s *Store) Backup(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("error resolving path: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadManifest()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Original == abs {
			return nil
		}
	}

	backupName := fmt.Sprintf("%d_%s", utils.GenerateUniqueID(), filepath.Base(abs))
	if err := copyFile(abs, filepath.Join(s.dir, backupName)); err != nil {
		return fmt.Errorf("error copying file to backup: %v", err)
	}

	entries = append(entries, Entry{
		Original:   abs,
		BackupName: backupName,
		BackedUpAt: time.Now().UTC(),
	})
	return s.saveManifest(entries)
}

// Restore copies the backed-up version of the file back over the
// original and removes its manifest entry.
func (s *Store) Restore(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("error resolving path: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadManifest()
	if err != nil {
		return err
	}

	idx := -1
	for i, e := range entries {
		if e.Original == abs {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("no backup found for %s", path)
	}

	if err := utils.MoveFile(filepath.Join(s.dir, entries[idx].BackupName), abs); err != nil {
		return fmt.Errorf("error restoring file: %v", err)
	}

	entries = append(entries[:idx], entries[idx+1:]...)
	return s.saveManifest(entries)
}

// Entries returns the current manifest contents.
func (s *Store) Entries() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadManifest()
}

func (s *Store) loadManifest() ([]Entry, error) {
	path := filepath.Join(s.dir, manifestFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []Entry{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %v", err)
	}
	if len(data) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error unmarshaling manifest: %v", err)
	}
	return entries, nil
}

func (s *Store) saveManifest(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, manifestFile), data, 0644); err != nil {
		return fmt.Errorf("error writing manifest: %v", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
