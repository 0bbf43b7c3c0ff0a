// Package history records document edits as a log of actions and
// reconstructs document states by replaying them.
//
// Entry 0 of a [Log] is always a document-reset carrying a full snapshot;
// every other entry carries only the addressing information needed to
// recompute its effect. Undo replays the log up to the previous entry;
// redo applies the next entry once more.
package history

import "github.com/stateful/blockdoc/pkg/document"

// State is a read-only view of a log.
type State struct {
	Entries []Action `json:"entries"`
	Index   int      `json:"index"`
}

// Log is an append-only list of actions with a cursor. The invariant
// 0 <= index < len(entries) always holds.
type Log struct {
	entries []Action
	index   int
}

// NewLog starts a log from a snapshot of doc.
func NewLog(doc *document.Block) *Log {
	return &Log{
		entries: []Action{DocumentReset(doc.Clone())},
	}
}

func (l *Log) Index() int { return l.index }

func (l *Log) Len() int { return len(l.entries) }

// Entry returns the action at position i.
func (l *Log) Entry(i int) Action { return l.entries[i] }

// Entries returns entries from 0 to upTo inclusive. The slice is shared.
func (l *Log) Entries(upTo int) []Action {
	return l.entries[:upTo+1]
}

// Push discards entries after the cursor, appends a and moves the
// cursor to it.
func (l *Log) Push(a Action) {
	l.entries = append(l.entries[:l.index+1:l.index+1], a)
	l.index = len(l.entries) - 1
}

func (l *Log) CanUndo() bool { return l.index > 0 }

func (l *Log) CanRedo() bool { return l.index < len(l.entries)-1 }

// Back moves the cursor one entry back.
func (l *Log) Back() bool {
	if !l.CanUndo() {
		return false
	}
	l.index--
	return true
}

// Forward moves the cursor one entry forward and returns the entry.
func (l *Log) Forward() (Action, bool) {
	if !l.CanRedo() {
		return Action{}, false
	}
	l.index++
	return l.entries[l.index], true
}

// State returns a deep copy of the log. Changes to the result never
// reach the recorded entries.
func (l *Log) State() State {
	entries := make([]Action, len(l.entries))
	for i, a := range l.entries {
		entries[i] = a.Clone()
	}
	return State{Entries: entries, Index: l.index}
}
