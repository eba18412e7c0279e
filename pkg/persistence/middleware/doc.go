// Package middleware provides decorators for ports.DefinitionStore.
//
// Middlewares compose with Chain and work with any backend (memory, file, redis).
package middleware
