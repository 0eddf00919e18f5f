// Package output prints styled status messages for the nest CLI.
//
// # Usage
//
//	output.Success("Regenerated uart.c")
//	output.Info("Captured regions", output.F("named", 4), output.F("partial", 1))
//	output.Step("Includes")
//	output.Error("uart.c: unclosed user section at end of file: 'Init'")
//
// # Verbose Mode
//
//	output.SetVerbose(true)
//	output.Verbose("scanning", output.F("path", "src/uart.c"))
//
// # Styling
//
//   - Success: ✔ green bold
//   - Error: ❌ red bold (written to the error writer)
//   - Warn: ⚠ yellow
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
//
// Fields are appended as "| key=value" pairs.
package output
