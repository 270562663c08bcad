// Package logsink implements the persisted game log: one line-delimited
// JSON file per run, flushed after every entry, grounded on the teacher's
// replay.Recorder (open-once, write-with-mutex, Status snapshot) but
// writing flat JSON lines instead of the teacher's protobuf stream format —
// see DESIGN.md for why the protobuf path was not reused here.
package logsink

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/robocupgc/gamecontroller/action"
	"github.com/robocupgc/gamecontroller/gamestate"
)

// EntryKind is the tag distinguishing one logged event from another.
type EntryKind string

const (
	KindMetadata       EntryKind = "Metadata"
	KindAction         EntryKind = "Action"
	KindGameState      EntryKind = "GameState"
	KindMonitorRequest EntryKind = "MonitorRequest"
	KindStatusMessage  EntryKind = "StatusMessage"
	KindTeamMessage    EntryKind = "TeamMessage"
	KindEnd            EntryKind = "End"
)

// entry is the on-disk JSON shape of a single log line.
type entry struct {
	Timestamp time.Time       `json:"timestamp"`
	Kind      EntryKind       `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Sink is an append-only, line-delimited JSON log file. It implements
// engine.Sink so an Engine can log directly to it, plus the extra methods
// the event loop uses to record raw ingress datagrams.
type Sink struct {
	mu     sync.Mutex
	f      *os.File
	enc    *json.Encoder
	fsync  bool
	nEntry int64
	err    error

	nowFunc func() time.Time
}

// FileName returns the conventional log file name for a run between home
// and away starting at start: an RFC3339-ish timestamp plus team
// shortnames, matching spec.md §6.5's "named by date-time and team
// shortnames" rule.
func FileName(start time.Time, home, away string) string {
	return fmt.Sprintf("%s_%s-vs-%s.log", start.UTC().Format("20060102T150405Z"), home, away)
}

// Open creates (or appends to) the log file at path. fsync controls whether
// every write additionally calls File.Sync, trading throughput for
// durability against a crash.
func Open(path string, fsync bool) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "logsink: could not open %q", path)
	}
	return &Sink{
		f:       f,
		enc:     json.NewEncoder(f),
		fsync:   fsync,
		nowFunc: time.Now,
	}, nil
}

// LogMetadata records a free-form metadata entry, typically written once at
// the start of a run (competition name, team numbers, Params).
func (s *Sink) LogMetadata(v interface{}) { s.write(KindMetadata, v) }

// LogAction implements engine.Sink.
func (s *Sink) LogAction(a action.Action, g *gamestate.Game) {
	s.write(KindAction, struct {
		Kind action.Kind    `json:"kind"`
		Game *gamestate.Game `json:"game"`
	}{a.Kind(), g})
}

// LogMonitorRequest records a raw, already-validated monitor-request
// datagram.
func (s *Sink) LogMonitorRequest(from string, raw []byte) {
	s.write(KindMonitorRequest, rawDatagram{From: from, Data: raw})
}

// LogStatusMessage records a raw, already-validated status datagram.
func (s *Sink) LogStatusMessage(from string, raw []byte) {
	s.write(KindStatusMessage, rawDatagram{From: from, Data: raw})
}

// LogTeamMessage records a raw team-message datagram, legal or not.
func (s *Sink) LogTeamMessage(side gamestate.Side, raw []byte, illegal bool) {
	s.write(KindTeamMessage, struct {
		Side    string `json:"side"`
		Data    []byte `json:"data"`
		Illegal bool   `json:"illegal"`
	}{side.String(), raw, illegal})
}

// rawDatagram is the payload shape shared by the three raw-ingress entry
// kinds; its Data field is base64-encoded by encoding/json's []byte
// handling, per spec.md §6.5.
type rawDatagram struct {
	From string `json:"from"`
	Data []byte `json:"data"`
}

// Close writes a terminating End entry and closes the underlying file.
func (s *Sink) Close() error {
	s.write(KindEnd, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.f.Close()
	if s.err != nil {
		return s.err
	}
	return err
}

// NumEntries returns how many entries have been written so far.
func (s *Sink) NumEntries() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nEntry
}

// Err returns the first write error encountered, if any. A Sink with a
// non-nil Err keeps accepting writes (matching the teacher's
// fire-and-forget LogAction signature, which has no error return) but
// every subsequent write is a silent no-op once in this state.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Sink) write(kind EntryKind, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}

	var payload json.RawMessage
	if v != nil {
		raw, err := json.Marshal(v)
		if err != nil {
			s.err = errors.Wrap(err, "logsink: could not marshal entry payload")
			sinkWriteErrors.Inc()
			return
		}
		payload = raw
	}

	e := entry{Timestamp: s.nowFunc(), Kind: kind, Payload: payload}
	if err := s.enc.Encode(e); err != nil {
		s.err = errors.Wrap(err, "logsink: could not write entry")
		sinkWriteErrors.Inc()
		return
	}
	s.nEntry++
	sinkEntriesWritten.WithLabelValues(string(kind)).Inc()

	if s.fsync {
		if err := s.f.Sync(); err != nil {
			s.err = errors.Wrap(err, "logsink: could not fsync")
			sinkWriteErrors.Inc()
			return
		}
	}
}
