package codewriter

import (
	"fmt"
	"strings"
)

// Arg is a C function parameter.
type Arg struct {
	Type string
	Name string
}

func formatArgs(args []Arg) string {
	if len(args) == 0 {
		return "(void)"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type + " " + a.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// BeginStruct opens a struct definition.
func (cw *Writer) BeginStruct(name string) error {
	return cw.Writeln(fmt.Sprintf("struct %s {", name))
}

// EndStruct closes a struct definition.
func (cw *Writer) EndStruct() error {
	return cw.Writeln("};")
}

// BeginEnum opens an enum definition.
func (cw *Writer) BeginEnum(name string) error {
	return cw.Writeln(fmt.Sprintf("enum %s {", name))
}

// EndEnum closes an enum definition.
func (cw *Writer) EndEnum() error {
	return cw.Writeln("};")
}

// EnumMember writes an enum member, with an explicit value when value is
// not empty.
func (cw *Writer) EnumMember(name, value string) error {
	cw.Indent()
	defer cw.Dedent()
	if value != "" {
		return cw.Writeln(fmt.Sprintf("%s = %s,", name, value))
	}
	return cw.Writeln(name + ",")
}

// BeginFunction opens a function definition.
func (cw *Writer) BeginFunction(ret, name string, args ...Arg) error {
	return cw.Writeln(fmt.Sprintf("%s %s%s {", ret, name, formatArgs(args)))
}

// EndFunction closes a function definition.
func (cw *Writer) EndFunction() error {
	return cw.Writeln("}")
}

// FunctionDecl writes a function prototype.
func (cw *Writer) FunctionDecl(ret, name string, args ...Arg) error {
	return cw.Writeln(fmt.Sprintf("%s %s%s;", ret, name, formatArgs(args)))
}

// Variable writes a variable declaration, preceded by a comment when one is given.
func (cw *Writer) Variable(typ, name, comment string) error {
	if comment != "" {
		if err := cw.Comment(comment); err != nil {
			return err
		}
	}
	return cw.Writeln(fmt.Sprintf("%s %s;", typ, name))
}

// Include writes an #include directive. System headers use angle brackets.
func (cw *Writer) Include(header string, system bool) error {
	if system {
		return cw.Writeln(fmt.Sprintf("#include <%s>", header))
	}
	return cw.Writeln(fmt.Sprintf("#include %q", header))
}

// Define writes a #define directive.
func (cw *Writer) Define(name, value string) error {
	if value == "" {
		return cw.Writeln("#define " + name)
	}
	return cw.Writeln(fmt.Sprintf("#define %s %s", name, value))
}

// Ifdef writes an #ifdef directive.
func (cw *Writer) Ifdef(name string) error {
	return cw.Writeln("#ifdef " + name)
}

// Ifndef writes an #ifndef directive.
func (cw *Writer) Ifndef(name string) error {
	return cw.Writeln("#ifndef " + name)
}

// Endif writes an #endif directive with an optional trailing comment.
func (cw *Writer) Endif(comment string) error {
	if comment == "" {
		return cw.Writeln("#endif")
	}
	return cw.Writeln("#endif // " + comment)
}

// TypedefStruct writes "typedef struct name name;".
func (cw *Writer) TypedefStruct(name string) error {
	return cw.Writeln(fmt.Sprintf("typedef struct %s %s;", name, name))
}
