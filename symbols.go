package vfpu

import "sort"

// checkName validates a name for definition as a variable, or as a custom
// function if fn is true.
func (c *Compiler) checkName(name string, fn bool) error {
	if !validIdent(name) {
		return &IdentError{Name: name}
	}
	if IsBuiltin(name) {
		return &ConflictError{Name: name, Kind: "built-in function"}
	}
	if fn {
		if _, ok := c.vars[name]; ok {
			return &ConflictError{Name: name, Kind: "variable"}
		}
	} else if _, ok := c.funcs[name]; ok {
		return &ConflictError{Name: name, Kind: "function"}
	}
	return nil
}

// DefineVar sets the value of a variable, defining it if needed. Programs
// already compiled that refer to the variable see the new value the next time
// they are evaluated.
func (c *Compiler) DefineVar(name string, value float64) error {
	if err := c.checkName(name, false); err != nil {
		return err
	}
	if c.vars == nil {
		c.vars = make(map[string]float64)
	}
	c.vars[name] = value
	return nil
}

// UndefineVar removes a variable. It is not an error if there is no such
// variable.
func (c *Compiler) UndefineVar(name string) {
	delete(c.vars, name)
}

// IsVarDefined reports whether a variable is defined.
func (c *Compiler) IsVarDefined(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// Var returns the value of a variable. If the variable is not defined, the
// error is a *NameError.
func (c *Compiler) Var(name string) (float64, error) {
	v, ok := c.vars[name]
	if !ok {
		return 0, &NameError{Name: name}
	}
	return v, nil
}

// ClearVars removes all variables.
func (c *Compiler) ClearVars() {
	c.vars = make(map[string]float64)
}

// Vars returns the names of all defined variables, sorted.
func (c *Compiler) Vars() []string {
	return sortedKeys(c.vars)
}

// DefineFunc defines a custom function of one argument, replacing any existing
// function of the same name. To undefine a function, pass nil for fn.
func (c *Compiler) DefineFunc(name string, fn Func) error {
	if fn == nil {
		c.UndefineFunc(name)
		return nil
	}
	if err := c.checkName(name, true); err != nil {
		return err
	}
	if c.funcs == nil {
		c.funcs = make(map[string]Func)
	}
	c.funcs[name] = fn
	return nil
}

// UndefineFunc removes a custom function. It is not an error if there is no
// such function.
func (c *Compiler) UndefineFunc(name string) {
	delete(c.funcs, name)
}

// IsFuncDefined reports whether a custom function is defined. It is false for
// built-in functions.
func (c *Compiler) IsFuncDefined(name string) bool {
	_, ok := c.funcs[name]
	return ok
}

// ClearFuncs removes all custom functions.
func (c *Compiler) ClearFuncs() {
	c.funcs = make(map[string]Func)
}

// Funcs returns the names of all custom functions, sorted.
func (c *Compiler) Funcs() []string {
	return sortedKeys(c.funcs)
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
