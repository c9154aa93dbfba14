// ============================================================================
// wsterm - WebSocket Terminal
// ============================================================================
//
// Package:     functions
// Description: Generator functions callable from template expressions
// Author:      Mike Stoffels
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package functions

import (
	"crypto/rand"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/tmplexpr"
)

// MaxOutputLength limits the number of elements a single call may produce
const MaxOutputLength = 65536

// Function is a named generator invoked as ${name(args)}
type Function interface {
	Name() string
	Usage() []string
	Examples() []string
	Info() string
	Run(args []uint64) ([]byte, error)
}

// Registry holds the functions available to the evaluator
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Function
}

// Options configures the default function set
type Options struct {
	// Rand is the randomness source, crypto/rand when nil
	Rand io.Reader
	// Now returns the current time, time.Now when nil
	Now func() time.Time
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Function)}
}

// NewDefaultRegistry creates a registry with all built-in functions
func NewDefaultRegistry(opts Options) *Registry {
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := NewRegistry()
	for _, fn := range []Function{
		byteRange{},
		charRange{},
		randomBytes{source: opts.Rand},
		randomChars{source: opts.Rand},
		clock{now: opts.Now},
	} {
		// built-in names are valid and unique
		_ = r.Register(fn)
	}
	return r
}

// Register adds fn to the registry
func (r *Registry) Register(fn Function) error {
	name := fn.Name()
	if !tmplexpr.IsValidVariableName(name) {
		return wsterror.Newf("invalid function name %q", name).
			WithCode(wsterror.CodeInvalidInput).
			WithOperation("functions.Register")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return wsterror.Newf("function %q is already registered", name).
			WithCode(wsterror.CodeInvalidInput).
			WithOperation("functions.Register")
	}
	r.funcs[name] = fn
	return nil
}

// Lookup returns the function registered under name
func (r *Registry) Lookup(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns all registered function names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the named function with args
func (r *Registry) Call(name string, args []uint64) ([]byte, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, wsterror.Newf("function %q is not defined", name).
			WithCode(wsterror.CodeUndefinedFunction).
			WithOperation("functions.Call").
			WithDetail("function", name)
	}
	return fn.Run(args)
}

func checkArgCount(name string, args []uint64, max int) error {
	if len(args) <= max {
		return nil
	}
	return wsterror.Newf("%s() takes at most %d arguments, got %d", name, max, len(args)).
		WithCode(wsterror.CodeArgumentCount).
		WithOperation("functions." + name).
		WithDetail("function", name)
}

func invalidArgument(name, format string, args ...interface{}) error {
	return wsterror.New(fmt.Sprintf("%s(): ", name)+fmt.Sprintf(format, args...)).
		WithCode(wsterror.CodeInvalidArgument).
		WithOperation("functions." + name).
		WithDetail("function", name)
}
