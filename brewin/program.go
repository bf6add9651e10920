package brewin

import (
	"context"
	"io"
)

const (
	// MainClass and MainMethod name the program entry point.
	MainClass  = "main"
	MainMethod = "main"
)

// Program is a loaded set of classes ready to run.
type Program struct {
	engine   *Engine
	registry *classRegistry
	source   string
}

// RunOptions wires a run to its input and output. Nil Output discards
// printed lines; nil Input behaves as empty input.
type RunOptions struct {
	Output OutputSink
	Input  InputSource
}

// Classes returns the declared classes and templates in source order.
func (p *Program) Classes() []*ClassDef {
	return p.registry.declared()
}

// Class finds a declared class or a template instance already created.
func (p *Program) Class(name string) (*ClassDef, bool) {
	return p.registry.lookup(name)
}

// TemplateInstances reports how many template instantiations are cached.
func (p *Program) TemplateInstances() int {
	return p.registry.instanceCount()
}

func (p *Program) Source() string { return p.source }

// Run instantiates the main class and calls its zero-argument main method.
func (p *Program) Run(ctx context.Context, opts RunOptions) error {
	obj, err := p.Instantiate(MainClass)
	if err != nil {
		return err
	}
	_, err = p.Invoke(ctx, obj, MainMethod, nil, opts)
	return err
}

// Instantiate creates a fresh object of the named class. Template
// instances may be named with the Name@T1@T2 spelling.
func (p *Program) Instantiate(className string) (*Object, error) {
	def, err := p.registry.classForNew(className, Position{})
	if err != nil {
		return nil, withSource(err, p.source)
	}
	return instantiate(def), nil
}

// Invoke calls method on obj with already-evaluated arguments, using the
// same overload resolution as a call statement. An argument that fits no
// overload but matches a method's arity is reported as a TypeError.
func (p *Program) Invoke(ctx context.Context, obj *Object, method string, args []Value, opts RunOptions) (Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := p.newExecution(ctx, opts)
	if obj == nil {
		return NewVoid(), exec.errorAt(FaultError, Position{}, "call to %s on null object", method)
	}
	return exec.invokeHost(obj.Origin(), method, args)
}

func (p *Program) newExecution(ctx context.Context, opts RunOptions) *Execution {
	out := opts.Output
	if out == nil {
		out = NewWriterSink(io.Discard)
	}
	in := opts.Input
	if in == nil {
		in = NewLineSource(nil)
	}
	cfg := p.engine.config
	return &Execution{
		program:      p,
		ctx:          ctx,
		out:          out,
		in:           in,
		quota:        cfg.StepQuota,
		recursionCap: cfg.RecursionLimit,
		trace:        cfg.Trace,
		callStack:    make([]*callFrame, 0, 8),
	}
}
