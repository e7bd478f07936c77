// Package runtime provides the execution context for a kiro-merge invocation.
//
// It wires configuration, the logger and the merge orchestrator together so
// the command layer only deals with flags and arguments.
package runtime
