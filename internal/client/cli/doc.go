// Package cli provides the interactive docforge command-line client.
//
// It wires configuration, the HTTP transport, the upload workflow and the
// archive services behind a small REPL. Typical flow: select a source file,
// generate, then save, inspect or publish the returned archive.
//
// Key features:
//   - Simulated progress bar, drawn in place on a terminal
//   - Ctrl-C during generation resets the workflow
//   - One-shot mode (-f) that generates and saves without prompting
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
