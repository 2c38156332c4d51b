// Package engine runs sketch scripts, the Lisp form of a model. Each script
// runs in its own zygomys sandbox; the (model ...) call it makes becomes
// the sketch.Model handed to assembly.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/trisketch/pkg/sketch"
)

// EvalError is a problem in the script itself: a syntax error, a bad
// builtin argument, or a runtime error. Line is 0 when unknown.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine runs sketch scripts. Submitting a script makes every earlier,
// still-running script stale.
type Engine struct {
	timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewEngine returns an Engine with the default ScriptTimeout.
func NewEngine() *Engine {
	return &Engine{timeout: ScriptTimeout}
}

// Evaluate runs a script and returns the model it declares. A script that
// never calls (model ...) yields an empty white model.
//
// Mistakes in the script come back as EvalErrors with a nil error. The
// error return is reserved for runs that produced nothing usable: a
// timeout, a crash inside the interpreter, or ErrSuperseded.
func (e *Engine) Evaluate(source string) (*sketch.Model, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("sketch script crashed the interpreter: %v", r)}
			}
		}()
		m, errs := run(source)
		ch <- outcome{model: m, errors: errs}
	}()

	return e.await(ch, gen)
}

func run(source string) (*sketch.Model, []EvalError) {
	if strings.TrimSpace(source) == "" {
		return emptyModel(), nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := &builder{}
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, scriptErrors(err)
	}
	if _, err := env.Run(); err != nil {
		return nil, scriptErrors(err)
	}
	if b.model == nil {
		return emptyModel(), nil
	}
	return b.model, nil
}

func emptyModel() *sketch.Model {
	return &sketch.Model{Color: sketch.White}
}

// zygomys reports positions as "Error on line N: ..." or "line N: ...".
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`),
	regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`),
}

// scriptErrors turns an interpreter error into an EvalError, pulling out the
// line number when the message carries one.
func scriptErrors(err error) []EvalError {
	msg := err.Error()
	for _, re := range linePatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
