package bisp

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mgomes/bisp/syntax"
)

// Config bounds evaluation. Zero fields take defaults.
type Config struct {
	StepQuota      int
	RecursionLimit int
	ValueQuota     int
}

const (
	defaultStepQuota      = 100_000
	defaultRecursionLimit = 256
	defaultValueQuota     = 1 << 20
)

// Engine reads and evaluates Bisp source under the configured bounds. All
// values it returns are allocated from its Heap and must be handed back with
// Release.
type Engine struct {
	config Config
	heap   *Heap
	mu     sync.Mutex
}

// NewEngine constructs an Engine, filling in defaults for zero bounds.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, errors.New("bisp: step quota cannot be negative")
	}
	if cfg.RecursionLimit < 0 {
		return nil, errors.New("bisp: recursion limit cannot be negative")
	}
	if cfg.ValueQuota < 0 {
		return nil, errors.New("bisp: value quota cannot be negative")
	}
	if cfg.StepQuota == 0 {
		cfg.StepQuota = defaultStepQuota
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.ValueQuota == 0 {
		cfg.ValueQuota = defaultValueQuota
	}
	return &Engine{config: cfg, heap: NewHeap()}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Heap returns the ledger the engine allocates from, for callers that build
// trees by hand before passing them to Eval.
func (e *Engine) Heap() *Heap {
	return e.heap
}

// Read parses source and converts it to a Value tree without evaluating it.
// The root is an S-expression holding every top-level expression.
func (e *Engine) Read(source string) (*Value, error) {
	root, err := syntax.Parse(source)
	if err != nil {
		return nil, err
	}
	return Read(e.heap, root), nil
}

// Run reads and evaluates source. Parse failures and exceeded bounds are
// returned as errors; language errors come back as Error values.
func (e *Engine) Run(source string) (*Value, error) {
	v, err := e.Read(source)
	if err != nil {
		return nil, err
	}
	return e.Eval(v)
}

// Eval evaluates a tree allocated from e.Heap(), taking ownership of it.
func (e *Engine) Eval(v *Value) (*Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev := &evaluator{
		heap:           e.heap,
		stepQuota:      e.config.StepQuota,
		recursionLimit: e.config.RecursionLimit,
		valueQuota:     int64(e.config.ValueQuota),
	}
	result := ev.eval(v)
	if ev.halt != nil {
		e.heap.Release(result)
		return nil, ev.halt
	}
	return result, nil
}

// EvalString runs source and returns the printed result.
func (e *Engine) EvalString(source string) (string, error) {
	v, err := e.Run(source)
	if err != nil {
		return "", err
	}
	defer e.Release(v)
	return v.String(), nil
}

// Release hands a value returned by Run, Read or Eval back to the engine.
func (e *Engine) Release(v *Value) {
	e.heap.Release(v)
}

// Stats returns the engine heap's allocation counters.
func (e *Engine) Stats() HeapStats {
	return e.heap.Stats()
}

// ConfigSummary provides a human-readable description of the evaluation bounds.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d recursion=%d values=%d", e.config.StepQuota, e.config.RecursionLimit, e.config.ValueQuota)
}
