// Package commands implements the podnet CLI subcommands.
//
// Every subcommand is a Runner with its own flag set. The main package
// parses the global flags (config path, verbosity), then dispatches the
// first positional argument to the matching Runner.
package commands
