// Package filterexpr compiles admin-facing CEL filter strings into
// predicates over flat document maps. Only declared fields are visible to
// the expression, so a filter can never reach into engine internals.
package filterexpr

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// ValueKind describes the type a filterable field exposes to expressions.
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindBool   ValueKind = "bool"
)

// Field declares one filterable document field.
type Field struct {
	Name string
	Kind ValueKind
}

// Predicate evaluates a compiled filter against one document.
type Predicate func(doc map[string]any) (bool, error)

// Compile builds a predicate from a CEL expression over the declared fields.
// An empty expression matches everything.
func Compile(expr string, fields []Field) (Predicate, error) {
	if expr == "" {
		return func(map[string]any) (bool, error) { return true, nil }, nil
	}

	opts := make([]cel.EnvOption, 0, len(fields))
	for _, field := range fields {
		celType, err := celType(field.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		opts = append(opts, cel.Variable(field.Name, celType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("build filter env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, errors.New("filter expression must evaluate to a boolean")
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build filter program: %w", err)
	}

	return func(doc map[string]any) (bool, error) {
		out, _, err := prg.Eval(doc)
		if err != nil {
			return false, fmt.Errorf("evaluate filter: %w", err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return false, errors.New("filter did not produce a boolean")
		}
		return matched, nil
	}, nil
}

func celType(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.IntType, nil
	case KindBool:
		return cel.BoolType, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %q", kind)
	}
}
