// Package filter narrows fetched items with expr-lang expressions such as
//
//	item.Rating == "S" and percent(item.Stats.Win) > 15
//
// The item being tested is available as item; helper functions are listed
// in helpers.go.
package filter

import (
	"fmt"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/fanzhongxing/jcc-web/cache"
)

// Filter is a compiled filter expression
type Filter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one item
func (f *Filter) Match(item any) (bool, error) {
	env := maps.Clone(f.helpers)
	env["item"] = item

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "evaluation failed",
			Err:        err,
		}
	}

	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     fmt.Sprintf("expression returned %T, not bool", out),
		}
	}
	return matched, nil
}

// Apply returns the items matching f, in their original order. A nil
// filter matches everything.
func Apply[T any](f *Filter, items []T) ([]T, error) {
	if f == nil {
		return items, nil
	}

	matched := make([]T, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables caching of compiled filters
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = cache.NewLRU[string, *Filter](size)
		}
	}
}

// WithFunctions adds helper functions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler compiles filter expressions
type Compiler struct {
	helpers map[string]any
	cache   *cache.LRU[string, *Filter]
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{helpers: helperFunctions()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into a filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(), // item is bound at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

var defaultCompiler = NewCompiler(WithCache(100))

// Compile compiles expression with the default, caching compiler
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}
