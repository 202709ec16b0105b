package attributes

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/mrzor/lilium-tools/internal/config"
	"github.com/mrzor/lilium-tools/internal/procmeta"
	"go.opentelemetry.io/otel/attribute"
)

// typeEnv declares the expression variables for type checking.
var typeEnv = map[string]interface{}{
	"env":     map[string]string{},
	"args":    []string{},
	"cmdline": "",
	"program": "",
}

func compile(what, source string) (*vm.Program, error) {
	program, err := expr.Compile(source, expr.Env(typeEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s expression: %w", what, err)
	}
	return program, nil
}

func run(program *vm.Program, md *procmeta.ProcessMetadata) (interface{}, error) {
	return expr.Run(program, map[string]interface{}{
		"env":     md.Environ,
		"args":    md.Args,
		"cmdline": md.CmdlineFull,
		"program": md.Program,
	})
}

// Evaluator handles compilation and evaluation of custom attribute expressions.
type Evaluator struct {
	customAttrs   []config.CustomAttribute
	compiledExprs []*vm.Program
}

// NewEvaluator pre-compiles every custom attribute expression.
func NewEvaluator(customAttrs []config.CustomAttribute) (*Evaluator, error) {
	compiledExprs := make([]*vm.Program, len(customAttrs))
	for i, attr := range customAttrs {
		program, err := compile(fmt.Sprintf("attribute %q", attr.Name), attr.Expression)
		if err != nil {
			return nil, err
		}
		compiledExprs[i] = program
	}

	return &Evaluator{
		customAttrs:   customAttrs,
		compiledExprs: compiledExprs,
	}, nil
}

// Evaluate runs every expression against md. An expression that fails is
// skipped and its error joined into the returned error; the attributes of
// the others are still returned.
//
// A map result expands into one attribute per key, named
// "<name>.<sanitized key>".
func (e *Evaluator) Evaluate(md *procmeta.ProcessMetadata) ([]attribute.KeyValue, error) {
	if len(e.customAttrs) == 0 || md == nil {
		return nil, nil
	}

	var attrs []attribute.KeyValue
	var errs []error
	for i, customAttr := range e.customAttrs {
		output, err := run(e.compiledExprs[i], md)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to evaluate attribute %q: %w", customAttr.Name, err))
			continue
		}

		outputValue := reflect.ValueOf(output)
		if outputValue.Kind() != reflect.Map {
			attrs = append(attrs, attribute.String(customAttr.Name, fmt.Sprint(output)))
			continue
		}
		for _, key := range outputValue.MapKeys() {
			attrName := customAttr.Name + "." + sanitizeAttributeName(fmt.Sprint(key.Interface()))
			attrs = append(attrs, attribute.String(attrName, fmt.Sprint(outputValue.MapIndex(key).Interface())))
		}
	}

	return attrs, errors.Join(errs...)
}

// sanitizeAttributeName replaces non-alphanumeric characters with underscores.
func sanitizeAttributeName(name string) string {
	result := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			result[i] = c
		} else {
			result[i] = '_'
		}
	}
	return string(result)
}
