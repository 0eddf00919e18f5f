// Package codewriter writes generated source text with indentation.
//
// A Writer accepts pre-composed lines plus indent and dedent requests:
//
//	w := codewriter.New(&buf)
//	w.BeginFunction("int", "add", codewriter.Arg{Type: "int", Name: "a"}, codewriter.Arg{Type: "int", Name: "b"})
//	w.Indent()
//	w.Writeln("return a + b;")
//	w.Dedent()
//	w.EndFunction()
//
// Writer implements region.Formatter, so user regions can be emitted
// straight into the same stream. Region content goes through WriteRaw and is
// never re-indented.
package codewriter
