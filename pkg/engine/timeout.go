package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/chazu/trisketch/pkg/sketch"
)

// ScriptTimeout bounds how long one sketch script may run.
const ScriptTimeout = 5 * time.Second

var (
	// ErrSuperseded reports a script whose model was finished after a newer
	// script had been submitted. The model is dropped.
	ErrSuperseded = errors.New("sketch script superseded by a newer render request")

	// ErrScriptTimeout reports a script that ran past the engine's limit.
	ErrScriptTimeout = errors.New("sketch script ran too long")
)

// outcome carries what a script run produced back to the caller.
type outcome struct {
	model  *sketch.Model
	errors []EvalError
	err    error
}

// await blocks until the script run for gen reports, or the engine's
// timeout passes. A run that outlives its timeout keeps going in the
// background and its model is thrown away when it arrives.
func (e *Engine) await(ch <-chan outcome, gen uint64) (*sketch.Model, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if !e.isLatest(gen) {
			return nil, nil, ErrSuperseded
		}
		return out.model, out.errors, out.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w: stopped waiting after %s", ErrScriptTimeout, e.timeout)
	}
}

func (e *Engine) isLatest(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}
