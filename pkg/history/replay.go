package history

import (
	"github.com/pkg/errors"

	"github.com/stateful/blockdoc/pkg/document"
)

type checkpoint struct {
	doc      *document.Block
	selected string
}

// Replayer reconstructs documents from a log. With a positive interval
// it caches the state after every interval-th entry, so a replay starts
// from the closest checkpoint instead of entry 0.
type Replayer struct {
	reducer     *Reducer
	interval    int
	checkpoints map[int]checkpoint
}

func NewReplayer(reducer *Reducer, interval int) *Replayer {
	if interval < 0 {
		interval = 0
	}
	return &Replayer{
		reducer:     reducer,
		interval:    interval,
		checkpoints: make(map[int]checkpoint),
	}
}

// Replay reduces entries[0..upTo] and returns the resulting document
// and selection.
func (p *Replayer) Replay(entries []Action, upTo int) (*document.Block, string, error) {
	if upTo < 0 || upTo >= len(entries) {
		return nil, "", errors.Errorf("replay position %d out of range [0, %d)", upTo, len(entries))
	}

	start := 0
	var (
		doc      *document.Block
		selected string
	)
	for i := upTo; i > 0; i-- {
		if cp, ok := p.checkpoints[i]; ok {
			start, doc, selected = i, cp.doc, cp.selected
			break
		}
	}

	if start == 0 {
		var err error
		doc, selected, err = p.reducer.Reduce(nil, "", entries[0])
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to replay entry 0")
		}
	}

	for i := start + 1; i <= upTo; i++ {
		var err error
		doc, selected, err = p.reducer.Reduce(doc, selected, entries[i])
		if err != nil {
			return nil, "", errors.Wrapf(err, "failed to replay entry %d", i)
		}
		p.Record(i, doc, selected)
	}

	return doc, selected, nil
}

// Record caches the state at position i if i is a checkpoint position.
// doc must not be modified afterwards.
func (p *Replayer) Record(i int, doc *document.Block, selected string) {
	if p.interval == 0 || i == 0 || i%p.interval != 0 {
		return
	}
	p.checkpoints[i] = checkpoint{doc: doc, selected: selected}
}

// Truncate drops checkpoints after position i.
func (p *Replayer) Truncate(i int) {
	for k := range p.checkpoints {
		if k > i {
			delete(p.checkpoints, k)
		}
	}
}

// Checkpoints returns the number of cached states.
func (p *Replayer) Checkpoints() int {
	return len(p.checkpoints)
}
