// annotations.go defines the annotation types and parser for the furl GLSL pre-processor.
// Annotations are single-line GLSL comments prefixed with @furl: that stand in for attribute
// and uniform declarations. The pre-processor expands them from the signature registry, so a
// shader source never restates a type or an attribute location.
package shader

import (
	"fmt"
	"slices"
	"strings"
)

// annotationPrefix is the marker that identifies a furl annotation within a GLSL comment line.
const annotationPrefix = "@furl:"

// AnnotationType identifies the kind of annotation parsed from a GLSL comment line.
type AnnotationType string

const (
	// AnnotationTypeAttribute declares a vertex input by its wire name. The type comes from the
	// signature. Only valid in vertex sources.
	//
	// Syntax: //@furl:attribute <wire_name>
	//
	// Example: //@furl:attribute position
	AnnotationTypeAttribute AnnotationType = "attribute"

	// AnnotationTypeUniform declares a uniform by its wire name. The type comes from the signature.
	//
	// Syntax: //@furl:uniform <wire_name>
	//
	// Example: //@furl:uniform u_view_matrix
	AnnotationTypeUniform AnnotationType = "uniform"

	// annotationTypeInclude splices a registered GLSL snippet at the annotation site.
	//
	// Syntax: //@furl:include <snippet>
	//
	// Example: //@furl:include quaternion
	annotationTypeInclude AnnotationType = "include"
)

// Annotation represents a single parsed @furl: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Arg is the wire name for attribute and uniform annotations, or the snippet key for includes.
	Arg string

	// Line is the 1-based source line, used for error reporting.
	Line int
}

// Snippet keys accepted by @furl:include.
const (
	snippetQuaternion = "quaternion"
)

var validSnippets = []string{
	snippetQuaternion,
}

// parseAnnotation attempts to parse a single line of GLSL source as a @furl: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw GLSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error wrapping ErrAnnotation if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	_, after, ok := strings.Cut(rest, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: line %d: empty @furl annotation", ErrAnnotation, lineNum)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: line %d: @furl %s annotation requires exactly one argument", ErrAnnotation, lineNum, args[0])
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeAttribute, AnnotationTypeUniform:
		return &Annotation{Type: AnnotationType(args[0]), Arg: args[1], Line: lineNum}, nil
	case annotationTypeInclude:
		if !slices.Contains(validSnippets, args[1]) {
			return nil, fmt.Errorf("%w: line %d: unknown snippet %q in @furl include annotation", ErrAnnotation, lineNum, args[1])
		}
		return &Annotation{Type: annotationTypeInclude, Arg: args[1], Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("%w: line %d: unknown @furl annotation type %q", ErrAnnotation, lineNum, args[0])
	}
}
