package brewin

import (
	"fmt"
)

const (
	defaultStepQuota            = 10_000_000
	defaultRecursionLimit       = 1024
	defaultMaxTemplateInstances = 256
)

// Config controls interpreter execution bounds.
type Config struct {
	StepQuota            int
	RecursionLimit       int
	MaxTemplateInstances int
	Trace                bool
}

// Engine compiles Brewin programs under a fixed configuration. An Engine is
// safe for concurrent use.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling unset limits with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("recursion limit must be non-negative, got %d", cfg.RecursionLimit)
	}
	if cfg.MaxTemplateInstances < 0 {
		return nil, fmt.Errorf("template instance limit must be non-negative, got %d", cfg.MaxTemplateInstances)
	}
	if cfg.StepQuota == 0 {
		cfg.StepQuota = defaultStepQuota
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.MaxTemplateInstances == 0 {
		cfg.MaxTemplateInstances = defaultMaxTemplateInstances
	}
	return &Engine{config: cfg}, nil
}

// MustNewEngine is NewEngine for configurations known to be valid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Config() Config { return e.config }

// Compile reads source and loads its classes.
func (e *Engine) Compile(source string) (*Program, error) {
	trees, err := ParseSource(source)
	if err != nil {
		return nil, withSource(err, source)
	}
	program, err := e.load(trees, source)
	if err != nil {
		return nil, withSource(err, source)
	}
	return program, nil
}

// CompileTrees loads classes from an already-read syntax tree.
func (e *Engine) CompileTrees(trees []*SExpr) (*Program, error) {
	return e.load(trees, "")
}

func (e *Engine) load(trees []*SExpr, source string) (*Program, error) {
	registry, err := loadClasses(trees, e.config.MaxTemplateInstances)
	if err != nil {
		return nil, err
	}
	loadLog.Debugf("loaded %d classes", len(registry.order))
	return &Program{engine: e, registry: registry, source: source}, nil
}

// ConfigSummary provides a human-readable description of the interpreter limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d recursion=%d templates=%d trace=%t", e.config.StepQuota, e.config.RecursionLimit, e.config.MaxTemplateInstances, e.config.Trace)
}
