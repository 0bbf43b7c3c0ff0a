// Package editor holds the state of one document editing session.
//
// A [Store] is the only place where a document changes. Collaborators
// mutate it exclusively by dispatching [history.Action] values and read
// it through query methods which return copies. Every change is
// recorded in a history log, the whole tree is revalidated, and the new
// state is published to subscribers.
//
// A Store is not safe for concurrent use. It is driven by one caller at
// a time, typically a UI event loop.
package editor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/blockdoc/pkg/document"
	"github.com/stateful/blockdoc/pkg/document/identity"
	"github.com/stateful/blockdoc/pkg/history"
	"github.com/stateful/blockdoc/pkg/schema"
)

// DefaultSnapshotInterval is the number of history entries between
// cached states used to speed up undo.
const DefaultSnapshotInterval = 50

type Options struct {
	Logger *zap.Logger
	// Generator creates ids of new and cloned blocks. Defaults to random ids.
	Generator identity.Generator
	// SnapshotInterval caches the document every n history entries.
	// Zero uses [DefaultSnapshotInterval]; a negative value disables caching.
	SnapshotInterval int
}

// State is a snapshot of the editing session.
type State struct {
	Document        *document.Block `json:"document"`
	History         history.State   `json:"history"`
	SelectedBlockID string          `json:"selectedBlockId,omitempty"`
	Errors          schema.Errors   `json:"errors"`
}

type Store struct {
	registry *schema.Registry
	scanner  *document.Scanner
	reducer  *history.Reducer
	replayer *history.Replayer
	log      *history.Log
	gen      identity.Generator
	logger   *zap.Logger

	doc      *document.Block
	selected string
	errors   schema.Errors

	subscribers  map[int]func(State)
	subscriberID int
}

// New creates a store for the initial document. A nil document starts
// an empty one. The document must be a root block with unique ids whose
// types are all registered.
func New(registry *schema.Registry, initial *document.Block, opts Options) (*Store, error) {
	if registry == nil {
		return nil, errors.New("schema registry is required")
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Generator == nil {
		opts.Generator = identity.NewRandomGenerator()
	}
	interval := opts.SnapshotInterval
	switch {
	case interval == 0:
		interval = DefaultSnapshotInterval
	case interval < 0:
		interval = 0
	}

	if initial == nil {
		initial = document.NewRoot(opts.Generator.NewID())
	}

	s := &Store{
		registry:    registry,
		scanner:     registry.Scanner(),
		gen:         opts.Generator,
		logger:      opts.Logger,
		subscribers: make(map[int]func(State)),
	}
	s.reducer = history.NewReducer(s.scanner)
	s.replayer = history.NewReplayer(s.reducer, interval)

	if err := s.checkDocument(initial); err != nil {
		return nil, err
	}

	doc := initial.Clone()
	errs, err := registry.ValidateTree(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate initial document")
	}

	s.log = history.NewLog(doc)
	s.doc = doc
	s.errors = errs

	s.logger.Debug("editor created",
		zap.String("document", doc.ID),
		zap.Int("errors", len(errs)),
		zap.Int("snapshot_interval", interval),
	)

	return s, nil
}

func (s *Store) checkDocument(doc *document.Block) error {
	if !doc.IsRoot() {
		return errors.Errorf("document %q must have type %q, got %q", doc.ID, document.RootType, doc.Type)
	}
	return errors.Wrap(s.scanner.CheckUniqueIDs(doc), "invalid document")
}

// Dispatch applies the action, records it in history and revalidates
// the document. Pending redo entries are discarded.
//
// Edits which find nothing to do and validation failures are not errors.
// An error is returned for malformed actions and for blocks whose type
// is not registered; the state is left unchanged in both cases.
func (s *Store) Dispatch(a history.Action) error {
	a = a.Clone()
	if a.Kind == history.KindCloneBlock && a.Seed == "" {
		a.Seed = s.gen.NewID()
	}
	if a.Kind == history.KindDocumentReset && a.Document != nil {
		if err := s.checkDocument(a.Document); err != nil {
			return err
		}
	}

	doc, selected, err := s.reducer.Reduce(s.doc, s.selected, a)
	if err != nil {
		return errors.Wrapf(err, "failed to dispatch %s", a.Kind)
	}

	errs, err := s.registry.ValidateTree(doc)
	if err != nil {
		return errors.Wrapf(err, "failed to dispatch %s", a.Kind)
	}

	s.replayer.Truncate(s.log.Index())
	s.log.Push(a)
	s.replayer.Record(s.log.Index(), doc, selected)

	s.logger.Debug("dispatched action",
		zap.String("kind", string(a.Kind)),
		zap.String("block", a.BlockID),
		zap.Int("index", s.log.Index()),
		zap.Int("errors", len(errs)),
	)

	s.commit(doc, selected, errs)
	return nil
}

// Undo restores the document as of one history entry earlier by
// replaying the log. It is a no-op when there is nothing to undo.
func (s *Store) Undo() error {
	if !s.log.CanUndo() {
		return nil
	}

	target := s.log.Index() - 1
	doc, _, err := s.replayer.Replay(s.log.Entries(target), target)
	if err != nil {
		return errors.Wrap(err, "failed to undo")
	}

	errs, err := s.registry.ValidateTree(doc)
	if err != nil {
		return errors.Wrap(err, "failed to undo")
	}

	s.log.Back()

	selected := s.selected
	if selected != "" && s.scanner.FindBlock(doc, selected) == nil {
		selected = ""
	}

	s.logger.Debug("undo", zap.Int("index", s.log.Index()), zap.Int("errors", len(errs)))

	s.commit(doc, selected, errs)
	return nil
}

// Redo applies the next history entry again. It is a no-op when there
// is nothing to redo.
func (s *Store) Redo() error {
	if !s.log.CanRedo() {
		return nil
	}

	next := s.log.Entry(s.log.Index() + 1)
	doc, selected, err := s.reducer.Reduce(s.doc, s.selected, next)
	if err != nil {
		return errors.Wrap(err, "failed to redo")
	}

	errs, err := s.registry.ValidateTree(doc)
	if err != nil {
		return errors.Wrap(err, "failed to redo")
	}

	s.log.Forward()
	s.replayer.Record(s.log.Index(), doc, selected)

	s.logger.Debug("redo", zap.Int("index", s.log.Index()), zap.Int("errors", len(errs)))

	s.commit(doc, selected, errs)
	return nil
}

func (s *Store) CanUndo() bool { return s.log.CanUndo() }

func (s *Store) CanRedo() bool { return s.log.CanRedo() }

// Select marks the block as selected. It returns false if the block
// does not exist.
func (s *Store) Select(id string) bool {
	if s.scanner.FindBlock(s.doc, id) == nil {
		return false
	}
	if s.selected != id {
		s.selected = id
		s.publish()
	}
	return true
}

func (s *Store) ClearSelection() {
	if s.selected == "" {
		return
	}
	s.selected = ""
	s.publish()
}

func (s *Store) commit(doc *document.Block, selected string, errs schema.Errors) {
	s.doc = doc
	s.selected = selected
	s.errors = errs
	s.publish()
}
