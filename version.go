// Package nest keeps developer-written code alive inside generated files.
//
// The library lives in the region, codewriter, splice and generator
// packages; cmd/nest is the command-line front end.
package nest

// Version is the current nest release.
const Version = "0.3.0"
