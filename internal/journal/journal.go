// Package journal implements an append-only JSONL log of recycle bin
// operations, so that branches removed by a purge can be recreated from
// their recorded tip commits while the objects still exist.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const schemaVersion = 1

// Op names a recycle bin operation.
type Op string

const (
	OpSoftDelete Op = "soft_delete"
	OpRestore    Op = "restore"
	OpPurge      Op = "purge"
)

// Entry describes one branch touched by an operation. Target is the name
// the branch was renamed to; it is empty for purges.
type Entry struct {
	Name   string `json:"name"`
	Target string `json:"target,omitempty"`
	Tip    string `json:"tip,omitempty"`
}

// Event is a single line in the journal.
type Event struct {
	SchemaVersion int       `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`

	Op       Op      `json:"op"`
	Repo     string  `json:"repo"`
	Branches []Entry `json:"branches"`
	Failed   int     `json:"failed,omitempty"`
	DryRun   bool    `json:"dry_run,omitempty"`
}

// Journal appends events to monthly JSONL files.
type Journal struct {
	mu        sync.Mutex
	dir       string
	sessionID string
	file      *os.File
	filePath  string
}

// DefaultDir returns the journal directory, honouring XDG_DATA_HOME.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "branchbin", "journal"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("journal: home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "branchbin", "journal"), nil
}

// New creates a Journal that writes to DefaultDir. The directory is
// created if needed.
func New() (*Journal, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewWithDir(dir)
}

// NewOrNil returns a Journal using the default directory, or nil if
// initialization fails. A nil Journal discards everything, so commands
// never fail because of it.
func NewOrNil() *Journal {
	j, err := New()
	if err != nil {
		slog.Debug("journal disabled", "error", err)
		return nil
	}
	return j
}

// NewWithDir creates a Journal writing to dir.
func NewWithDir(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}
	return &Journal{
		dir:       dir,
		sessionID: uuid.NewString(),
	}, nil
}

// Dir returns the directory the journal writes to. A nil Journal has none.
func (j *Journal) Dir() string {
	if j == nil {
		return ""
	}
	return j.dir
}

// Log writes an event to the current month's file. SchemaVersion,
// Timestamp and SessionID are set automatically. A nil Journal is safe
// and silently discards all events.
func (j *Journal) Log(event Event) error {
	if j == nil {
		return nil
	}
	event.SchemaVersion = schemaVersion
	event.Timestamp = time.Now()
	event.SessionID = j.sessionID
	if event.Branches == nil {
		event.Branches = []Entry{}
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("journal: marshal event: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	// Several branchbin processes may append to the same month at once.
	fl := flock.New(filepath.Join(j.dir, ".lock"))
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("journal: lock: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	f, err := j.openFile()
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("journal: write event: %w", err)
	}
	return nil
}

// Record is a convenience wrapper around Log for one lifecycle call.
func (j *Journal) Record(op Op, repo string, entries []Entry, failed int) error {
	return j.Log(Event{
		Op:       op,
		Repo:     repo,
		Branches: entries,
		Failed:   failed,
	})
}

// Close closes the underlying file. A nil Journal is safe.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file != nil {
		err := j.file.Close()
		j.file = nil
		j.filePath = ""
		return err
	}
	return nil
}

// Events reads every event in dir, oldest file first. When repo is
// non-empty only events for that repository are returned. Unparseable
// lines are skipped.
func Events(dir, repo string) ([]Event, error) {
	files, err := filepath.Glob(filepath.Join(dir, "ops-*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("journal: list files: %w", err)
	}
	sort.Strings(files)

	var events []Event
	for _, path := range files {
		fileEvents, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for _, e := range fileEvents {
			if repo == "" || e.Repo == repo {
				events = append(events, e)
			}
		}
	}
	return events, nil
}

func readFile(path string) ([]Event, error) {
	// #nosec G304 - path comes from a glob over the journal directory
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			slog.Warn("skipping malformed journal line", "file", path, "line", line, "error", err)
			continue
		}
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", path, err)
	}
	return events, nil
}

// openFile returns the handle for the current month's file, opening or
// rotating as needed. Caller must hold j.mu.
func (j *Journal) openFile() (*os.File, error) {
	want := filepath.Join(j.dir, fileName(time.Now()))
	if j.file != nil && j.filePath == want {
		return j.file, nil
	}

	if j.file != nil {
		_ = j.file.Close()
		j.file = nil
		j.filePath = ""
	}

	// #nosec G304 - path constructed from configured dir and deterministic filename
	f, err := os.OpenFile(want, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("journal: open file: %w", err)
	}
	j.file = f
	j.filePath = want
	return f, nil
}

// fileName returns the JSONL file name for the month containing t.
func fileName(t time.Time) string {
	return t.Format("ops-2006-01") + ".jsonl"
}
