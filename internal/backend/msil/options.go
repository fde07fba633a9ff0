package msil

import "salc/internal/source"

// Options name the generated assembly and the classes calls are bound to.
type Options struct {
	Assembly     string
	ProgramClass string
	RuntimeClass string
	// Files resolves spans for *diag.Error positions; may be nil.
	Files *source.FileSet
}

const (
	DefaultAssembly     = "program"
	DefaultProgramClass = "Program"
	DefaultRuntimeClass = "CompilerDemo.Runtime"
)

func (o Options) withDefaults() Options {
	if o.Assembly == "" {
		o.Assembly = DefaultAssembly
	}
	if o.ProgramClass == "" {
		o.ProgramClass = DefaultProgramClass
	}
	if o.RuntimeClass == "" {
		o.RuntimeClass = DefaultRuntimeClass
	}
	return o
}
