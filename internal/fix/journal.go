package fix

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when journalPayload format changes
const journalSchemaVersion uint16 = 1

// ErrJournalSchema is returned when a journal was written by an incompatible version.
var ErrJournalSchema = errors.New("unsupported journal schema")

// JournalEntry holds the original content of one rewritten file.
type JournalEntry struct {
	Path    string
	Mode    uint32
	Content []byte
	Digest  [sha256.Size]byte // of Content
	SavedAt int64             // unix nanoseconds
}

type journalPayload struct {
	Schema  uint16
	Entries []JournalEntry
}

// Journal keeps the pre-fix bytes of every file an Editor overwrites, so a run
// can be undone with Restore. Every Record persists the whole journal.
// Thread-safe for concurrent access.
type Journal struct {
	mu      sync.Mutex
	path    string
	entries []JournalEntry
	seen    map[string]struct{}
	now     func() time.Time
}

// NewJournal creates an empty journal stored at path.
func NewJournal(path string) *Journal {
	return &Journal{path: path, seen: make(map[string]struct{}), now: time.Now}
}

// Path returns the journal's file location.
func (j *Journal) Path() string { return j.path }

// Len returns the number of files recorded.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Entries returns a copy of the recorded entries.
func (j *Journal) Entries() []JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Record stores content as the original of path. Only the first call per path
// is kept: later ones would capture already-fixed text.
func (j *Journal) Record(path string, content []byte, mode os.FileMode) error {
	if j == nil {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, dup := j.seen[abs]; dup {
		return nil
	}
	j.seen[abs] = struct{}{}
	j.entries = append(j.entries, JournalEntry{
		Path:    abs,
		Mode:    uint32(mode.Perm()),
		Content: append([]byte(nil), content...),
		Digest:  sha256.Sum256(content),
		SavedAt: j.now().UnixNano(),
	})
	return j.saveLocked()
}

// Save writes the journal to disk.
func (j *Journal) Save() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.saveLocked()
}

func (j *Journal) saveLocked() error {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".lintfix-journal-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp)
	}()

	payload := journalPayload{Schema: journalSchemaVersion, Entries: j.entries}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, j.path)
}

// LoadJournal reads a journal written by Save or Record.
func LoadJournal(path string) (*Journal, error) {
	// #nosec G304 -- user-provided journal path
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var payload journalPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode journal %s: %w", path, err)
	}
	if payload.Schema != journalSchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrJournalSchema, payload.Schema)
	}
	j := NewJournal(path)
	for _, e := range payload.Entries {
		j.entries = append(j.entries, e)
		j.seen[e.Path] = struct{}{}
	}
	return j, nil
}

// Restore writes every recorded original back to its path and returns the
// restored paths. A corrupted entry stops the restore before anything is written.
func (j *Journal) Restore() ([]string, error) {
	entries := j.Entries()
	for _, e := range entries {
		if sha256.Sum256(e.Content) != e.Digest {
			return nil, fmt.Errorf("journal entry for %s is corrupted", e.Path)
		}
	}
	restored := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := os.WriteFile(e.Path, e.Content, os.FileMode(e.Mode)); err != nil {
			return restored, fmt.Errorf("restore %s: %w", e.Path, err)
		}
		restored = append(restored, e.Path)
	}
	return restored, nil
}
