// Package fetch drives asynchronous metadata lookups for a bibliographic
// record and merges an approved candidate back into it as a reversible edit.
package fetch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bibmerge/src/internal/executor"
	"bibmerge/src/internal/merge"
	"bibmerge/src/internal/schema"
)

// IDProvider looks a record up by an identifier such as a DOI or ISBN.
// A nil record with a nil error means the identifier resolved to nothing.
type IDProvider interface {
	Name() string
	SearchByID(ctx context.Context, id string) (*schema.Record, error)
}

// EntryProvider searches for candidates matching a whole record. Result order
// is provider-defined but stable; the orchestrator takes the first entry.
type EntryProvider interface {
	Name() string
	Search(ctx context.Context, rec *schema.Record) ([]*schema.Record, error)
}

// Registry resolves the provider bound to an identifier field.
type Registry interface {
	ProviderFor(field string) (IDProvider, bool)
}

// Reviewer is the human decision point between candidate and merge. It
// returns the approved merged record, or ok=false when the user canceled.
type Reviewer interface {
	Review(original, candidate *schema.Record) (merged *schema.Record, ok bool)
}

// Notifier delivers user-visible outcomes.
type Notifier interface {
	Notify(msg string)
	Error(msg string, err error)
}

// UndoSink receives every applied composite edit together with its target.
type UndoSink interface {
	Append(rec *schema.Record, edit merge.CompositeEdit)
}

// NopNotifier discards all messages.
type NopNotifier struct{}

func (NopNotifier) Notify(string)       {}
func (NopNotifier) Error(string, error) {}

// Config wires a Merger's collaborators. Registry, Reviewer and Sink have no
// defaults; Notifier, Executor, Reserved and Log fall back to a no-op
// notifier, an unbounded executor, schema.IsInternalField and a discard
// logger.
type Config struct {
	Registry Registry
	Reviewer Reviewer
	Notifier Notifier
	Sink     UndoSink
	Executor *executor.Executor
	Reserved func(string) bool
	Log      *logrus.Logger
}

// Merger is the fetch-and-merge orchestrator. Entry points return as soon as
// lookups are scheduled; outcomes arrive through the notifier and sink. Wait
// drains in-flight lookups.
type Merger struct {
	cfg Config

	// mu serializes the commit continuation (review, diff, apply, append) so
	// near-simultaneous lookup completions cannot interleave record mutation.
	// Entry points also read the target record under mu, so scheduling new
	// lookups never races a commit already writing to it.
	mu sync.Mutex
}

// New builds a Merger from cfg, filling defaults.
func New(cfg Config) *Merger {
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}
	if cfg.Executor == nil {
		cfg.Executor = executor.New(0)
	}
	if cfg.Reserved == nil {
		cfg.Reserved = schema.IsInternalField
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
		cfg.Log.SetOutput(io.Discard)
	}
	return &Merger{cfg: cfg}
}

// lookup is one scheduled identifier search, with the field value snapshotted
// at scheduling time.
type lookup struct {
	task  string
	field string
	value string
	prov  IDProvider
}

// FetchByFields starts one independent lookup per named identifier field.
// A field with no value, or with no registered provider, produces a single
// notification and no lookup. Sibling lookups are unaffected by each other's
// failures.
//
// All field values are snapshotted under mu before the first lookup is
// scheduled, so a fast-completing lookup committing edits to rec cannot race
// the reads for its siblings.
func (m *Merger) FetchByFields(ctx context.Context, rec *schema.Record, fields ...string) {
	m.mu.Lock()
	var lookups []lookup
	for _, field := range fields {
		value, ok := rec.Field(field)
		if !ok {
			m.cfg.Notifier.Notify(fmt.Sprintf("no %s found", field))
			continue
		}
		prov, ok := m.cfg.Registry.ProviderFor(field)
		if !ok {
			m.cfg.Notifier.Notify(fmt.Sprintf("no lookup provider registered for %q", field))
			continue
		}
		lookups = append(lookups, lookup{task: uuid.NewString(), field: field, value: value, prov: prov})
	}
	m.mu.Unlock()

	for _, l := range lookups {
		m.cfg.Executor.Go(func() {
			cand, err := l.prov.SearchByID(ctx, l.value)
			if err != nil {
				m.cfg.Log.WithFields(logrus.Fields{
					"task":     l.task,
					"field":    l.field,
					"id":       l.value,
					"provider": l.prov.Name(),
				}).WithError(err).Error("lookup failed")
				m.cfg.Notifier.Error(fmt.Sprintf("error while fetching from %s", l.prov.Name()), err)
				return
			}
			if cand == nil {
				m.cfg.Notifier.Notify(fmt.Sprintf("cannot get info based on given %s: %s", l.field, l.value))
				return
			}
			m.commit(rec, cand, l.prov.Name())
		})
	}
}

// FetchByEntry runs a full-record search and treats the first result as the
// candidate. An empty result set is handled like a not-found lookup. The
// record is snapshotted under mu so the provider never reads it while a
// commit from an earlier lookup is writing.
func (m *Merger) FetchByEntry(ctx context.Context, rec *schema.Record, prov EntryProvider) {
	task := uuid.NewString()
	m.mu.Lock()
	snapshot := rec.Clone()
	m.mu.Unlock()
	m.cfg.Executor.Go(func() {
		results, err := prov.Search(ctx, snapshot)
		if err != nil {
			m.cfg.Log.WithFields(logrus.Fields{
				"task":     task,
				"provider": prov.Name(),
			}).WithError(err).Error("entry search failed")
			m.cfg.Notifier.Error(fmt.Sprintf("error while fetching from %s", prov.Name()), err)
			return
		}
		if len(results) == 0 || results[0] == nil {
			m.cfg.Notifier.Notify("could not find any bibliographic information")
			return
		}
		m.commit(rec, results[0], prov.Name())
	})
}

// Wait blocks until all scheduled lookups have delivered their outcome.
func (m *Merger) Wait() { m.cfg.Executor.Wait() }

// commit runs the synchronous tail of a successful lookup: review, diff,
// atomic apply, undo append. Exactly one notification leaves this method.
func (m *Merger) commit(rec, candidate *schema.Record, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged, ok := m.cfg.Reviewer.Review(rec, candidate)
	if !ok || merged == nil {
		m.cfg.Notifier.Notify("canceled merging entries")
		return
	}
	edit := merge.Compute(rec, merged, fmt.Sprintf("merge entry with %s information", source), m.cfg.Reserved)
	if edit.Empty() {
		m.cfg.Notifier.Notify("no information added")
		return
	}
	edit.Apply(rec)
	if m.cfg.Sink != nil {
		m.cfg.Sink.Append(rec, edit)
	}
	m.cfg.Notifier.Notify(fmt.Sprintf("updated entry with info from %s", source))
}
