// Package demo holds the example C generators behind `nest example`. They
// show a generator written in Go rather than as a template: a header and a
// matching source file with user regions at the places a developer would
// want to add code.
package demo

import (
	"bytes"

	"github.com/simonhull/firebird-suite/nest/codewriter"
	"github.com/simonhull/firebird-suite/nest/region"
)

// HeaderGuard is the include guard of the example header.
const HeaderGuard = "EXAMPLE_H"

var processArgs = []codewriter.Arg{
	{Type: "ExampleStruct*", Name: "data"},
	{Type: "uint32_t", Name: "size"},
}

// HeaderManager returns a manager with the regions of the example header.
func HeaderManager() *region.Manager {
	m := region.NewManager()
	m.DefineWithDescription("Header", "File header comment")
	m.DefineWithDefault("Includes", "Additional includes",
		"#include <stdio.h>\n#include <stdlib.h>\n")
	m.DefineWithDefault("Typedefs", "User-defined types",
		"typedef unsigned int uint32_t;\ntypedef unsigned char uint8_t;\n")
	m.DefineWithDefault("Constants", "User-defined constants",
		"#define MAX_BUFFER_SIZE 1024\n#define VERSION \"1.0.0\"\n")
	m.Define("Functions")
	return m
}

// SourceManager returns a manager with the regions of the example source.
func SourceManager() *region.Manager {
	m := region.NewManager()
	m.DefineWithDescription("Header", "File header comment")
	m.DefineWithDefault("Includes", "Additional includes", "")
	m.DefineWithDefault("Globals", "Global variables",
		"static ExampleStruct g_examples[MAX_BUFFER_SIZE];\nstatic int g_count = 0;\n")
	m.DefineWithDefault("InitFunction", "Initialization function implementation",
		"    // Initialize the example system\n"+
			"    g_count = 0;\n"+
			"    memset(g_examples, 0, sizeof(g_examples));\n")
	m.DefineWithDefault("ProcessFunction", "Processing function implementation",
		"    // Process the data\n"+
			"    if (data == NULL || size == 0) {\n"+
			"        return -1;\n"+
			"    }\n"+
			"\n"+
			"    // Copy data to global storage\n"+
			"    if (g_count < MAX_BUFFER_SIZE) {\n"+
			"        g_examples[g_count++] = *data;\n"+
			"        return 0;\n"+
			"    }\n"+
			"\n"+
			"    return -1;\n")
	m.DefineWithDefault("CleanupFunction", "Cleanup function implementation",
		"    // Clean up resources\n    g_count = 0;\n")
	return m
}

// Header generates the example header from m's regions, indenting struct
// members by indent spaces (codewriter.DefaultIndentSize when zero).
func Header(m *region.Manager, indent int) ([]byte, error) {
	var buf bytes.Buffer
	w := newWriter(&buf, indent)
	emit := func(name string) func() error {
		return func() error { return m.EmitNamed(w, name) }
	}

	err := run(
		emit("Header"),
		func() error { return w.Ifndef(HeaderGuard) },
		func() error { return w.Define(HeaderGuard, "") },
		w.Newline,
		emit("Includes"),
		w.Newline,
		emit("Typedefs"),
		w.Newline,
		emit("Constants"),
		w.Newline,

		func() error { return w.Separator("Struct definitions") },
		func() error { return w.TypedefStruct("ExampleStruct") },
		func() error { return w.BeginStruct("ExampleStruct") },
		func() error { w.Indent(); return nil },
		func() error { return w.Variable("int", "id", "Unique identifier") },
		func() error { return w.Variable("char*", "name", "Name string") },
		func() error { return w.Variable("uint32_t", "flags", "Bit flags") },
		func() error { w.Dedent(); return nil },
		w.EndStruct,
		w.Newline,

		func() error { return w.Separator("Function declarations") },
		func() error { return w.FunctionDecl("void", "example_init") },
		func() error { return w.FunctionDecl("int", "example_process", processArgs...) },
		func() error { return w.FunctionDecl("void", "example_cleanup") },
		w.Newline,

		emit("Functions"),
		func() error { return w.Endif(HeaderGuard) },
	)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Source generates the example source file, including headerName.
func Source(m *region.Manager, headerName string, indent int) ([]byte, error) {
	var buf bytes.Buffer
	w := newWriter(&buf, indent)
	emit := func(name string) func() error {
		return func() error { return m.EmitNamed(w, name) }
	}

	err := run(
		emit("Header"),
		func() error { return w.Include(headerName, false) },
		func() error { return w.Include("string.h", true) },
		emit("Includes"),
		w.Newline,
		emit("Globals"),
		w.Newline,

		func() error { return w.Separator("Function implementations") },
		func() error { return w.BeginFunction("void", "example_init") },
		emit("InitFunction"),
		w.EndFunction,
		w.Newline,

		func() error { return w.BeginFunction("int", "example_process", processArgs...) },
		emit("ProcessFunction"),
		w.EndFunction,
		w.Newline,

		func() error { return w.BeginFunction("void", "example_cleanup") },
		emit("CleanupFunction"),
		w.EndFunction,
	)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newWriter(buf *bytes.Buffer, indent int) *codewriter.Writer {
	if indent <= 0 {
		indent = codewriter.DefaultIndentSize
	}
	return codewriter.NewWithOptions(buf, indent, true)
}

// run calls each step in order and stops at the first error.
func run(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
