// Package orchestrator wires the loader → index → template → renderer
// pipeline into a single entry point, providing dependency injection
// friendly options for consumers that want to swap any stage.
package orchestrator
