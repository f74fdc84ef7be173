// pre_processor.go implements the furl GLSL pre-processor. It scans shader source for @furl:
// annotations, replaces them with declarations generated from a signature, and records the
// declarations it produced so the program can confirm them against the registry.
//
// The pre-processor holds two inputs:
//   - the signature of the family being compiled, which supplies the GLSL type of every
//     attribute and uniform an annotation names.
//   - snippetRegistry: maps @furl:include keys to embedded GLSL snippets.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	sig   signature.ShaderSignature
	stage Stage

	// snippetRegistry maps include keys to GLSL source.
	snippetRegistry map[string]string

	// declarations accumulates attribute and uniform annotations during a Process call.
	// Reset at the start of each Process invocation.
	declarations []Annotation
}

// PreProcessor expands @furl: annotations in GLSL source against one shader signature.
type PreProcessor interface {
	// Process replaces every @furl: annotation in source with its GLSL expansion.
	// Attribute annotations become "in <type> <name>;" lines, uniform annotations become
	// "uniform <type> <name>;" lines and include annotations are replaced by the snippet text.
	// No location qualifier is ever emitted; locations are bound from the registry at link time.
	//
	// Parameters:
	//   - source: the raw GLSL source containing annotations
	//
	// Returns:
	//   - string: the expanded GLSL source
	//   - error: an error wrapping ErrAnnotation if an annotation is malformed, names something
	//     the signature does not declare, or declares the same name twice
	Process(source string) (string, error)

	// Declarations returns the attribute and uniform annotations collected by the most recent
	// call to Process, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor for one stage of a program in the given family.
//
// Parameters:
//   - sig: the signature that owns every annotated name
//   - stage: the stage being processed; attribute annotations are only valid in StageVertex
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(sig signature.ShaderSignature, stage Stage) PreProcessor {
	return &preProcessor{
		sig:   sig,
		stage: stage,
		snippetRegistry: map[string]string{
			snippetQuaternion: quaternionSnippet,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)
	included := make(map[string]bool)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Arg] {
				continue
			}
			included[a.Arg] = true
			out = append(out, strings.TrimRight(p.snippetRegistry[a.Arg], "\n"))
		case AnnotationTypeAttribute:
			if p.stage != StageVertex {
				return "", fmt.Errorf("%w: line %d: attribute %q declared in a %s source", ErrAnnotation, a.Line, a.Arg, p.stage)
			}
			attr, ok := p.sig.AttributeByWire(a.Arg)
			if !ok {
				return "", fmt.Errorf("%w: line %d: %s declares no attribute %q", ErrAnnotation, a.Line, p.sig.Family(), a.Arg)
			}
			if seen[a.Arg] {
				return "", fmt.Errorf("%w: line %d: %q declared twice", ErrAnnotation, a.Line, a.Arg)
			}
			seen[a.Arg] = true
			out = append(out, fmt.Sprintf("in %s %s;", attr.Kind.GLSL(), attr.Wire))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeUniform:
			u, ok := p.sig.UniformByWire(a.Arg)
			if !ok {
				return "", fmt.Errorf("%w: line %d: %s declares no uniform %q", ErrAnnotation, a.Line, p.sig.Family(), a.Arg)
			}
			if seen[a.Arg] {
				return "", fmt.Errorf("%w: line %d: %q declared twice", ErrAnnotation, a.Line, a.Arg)
			}
			seen[a.Arg] = true
			out = append(out, fmt.Sprintf("uniform %s %s;", u.Kind.GLSL(), u.Wire))
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("%w: line %d: unknown annotation type %q", ErrAnnotation, a.Line, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
