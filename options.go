package vfpu

// Option is an option used when creating or cloning a compiler.
type Option interface {
	option()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
)

func (varopt) option()   {}
func (varsopt) option()  {}
func (funcopt) option()  {}
func (funcsopt) option() {}

// SetVar defines a variable.
func SetVar(name string, val float64) Option {
	return varopt{name, val}
}

// SetVars defines any number of variables.
func SetVars(vars map[string]float64) Option {
	return varsopt(vars)
}

// SetFunc defines a custom function. A nil fn undefines it.
func SetFunc(name string, fn Func) Option {
	return funcopt{name, fn}
}

// SetFuncs defines any number of custom functions. Nil entries undefine them.
func SetFuncs(fns map[string]Func) Option {
	return funcsopt(fns)
}

func (c *Compiler) apply(opts []Option) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		var err error
		switch opt := opt.(type) {
		case varopt:
			err = c.DefineVar(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				if err = c.DefineVar(k, v); err != nil {
					break
				}
			}
		case funcopt:
			err = c.DefineFunc(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				if err = c.DefineFunc(k, v); err != nil {
					break
				}
			}
		default:
			panic("vfpu: unknown option type")
		}
		if err != nil {
			panic("vfpu: " + err.Error())
		}
	}
}
