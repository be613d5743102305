// Package tasks implements derived catalog operations that sit above
// the repositories: presentation annotations computed from persisted
// state without mutating it.
package tasks
