// Package region preserves user-written code inside generated files.
//
// A generator marks the parts of its output that belong to humans with one
// of two marker conventions:
//
//	/* USER CODE BEGIN Includes */
//	#include <stdlib.h>
//	/* USER CODE END Includes */
//
//	//!begin 3
//	int counter = 0;
//	//!end 3
//
// Named regions are declared up front in a [Registry] and may carry a
// description and default content. Partial regions are identified by number
// and take their default inline at the emission site.
//
// # Regeneration
//
// A regeneration pass has three steps:
//
//	m := region.NewManager()
//	m.DefineWithDefault("Includes", "Additional includes", "#include <stdio.h>\n")
//
//	// 1. Capture what the user wrote last time. A missing file is fine.
//	if err := m.CaptureFile("out/example.h"); err != nil {
//	    return err
//	}
//
//	// 2. Start a pass.
//	m.ResetWritten()
//
//	// 3. Emit regions while writing the new file.
//	w := codewriter.New(&buf)
//	if err := m.EmitNamed(w, "Includes"); err != nil {
//	    return err
//	}
//
// The scanner is strict: nested regions, mismatched or orphaned end markers
// and regions left open at the end of the file all fail the scan with a line
// number. Nothing is captured from a malformed file.
//
// A Manager is not safe for concurrent use. Use one per output file or
// serialise access.
package region
