package brewin

// Env is one local scope. Lookups fall through to the parent, so an inner
// let shadows only the names it declares.
type Env struct {
	parent *Env
	vars   map[string]*Variable
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: make(map[string]*Variable)}
}

func (e *Env) Get(name string) (*Variable, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *Env) Define(name string, v *Variable) {
	e.vars[name] = v
}

// Declared reports whether name is bound in this scope itself.
func (e *Env) Declared(name string) bool {
	_, ok := e.vars[name]
	return ok
}
