package shader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
)

// minGLSLVersion is the lowest #version the core profile backend accepts.
const minGLSLVersion = 330

var (
	// declRegex matches global in/out/uniform declarations with an optional location qualifier.
	declRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*;`)

	// versionRegex captures the version number and profile from a #version directive.
	versionRegex = regexp.MustCompile(`(?m)^\s*#version\s+(\d+)(?:\s+(\w+))?`)
)

// parsedDecl is one global declaration found in GLSL source.
type parsedDecl struct {
	qualifier string
	typeName  string
	name      string
	location  int
}

// parseDeclarations extracts global in, out and uniform declarations from GLSL source.
// Declarations inside comments are ignored.
//
// Parameters:
//   - source: the GLSL source
//
// Returns:
//   - []parsedDecl: declarations in source order; location is -1 when no qualifier is present
func parseDeclarations(source string) []parsedDecl {
	cleaned := stripComments(source)
	matches := declRegex.FindAllStringSubmatch(cleaned, -1)
	decls := make([]parsedDecl, 0, len(matches))
	for _, m := range matches {
		d := parsedDecl{qualifier: m[2], typeName: m[3], name: m[4], location: -1}
		if m[1] != "" {
			if loc, err := strconv.Atoi(m[1]); err == nil {
				d.location = loc
			}
		}
		decls = append(decls, d)
	}
	return decls
}

// parseVersion returns the #version number and profile of a GLSL source, or 0 when absent.
func parseVersion(source string) (int, string) {
	m := versionRegex.FindStringSubmatch(stripComments(source))
	if m == nil {
		return 0, ""
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, ""
	}
	return v, m[2]
}

// confirmDeclarations checks expanded sources against the registry before they reach the driver.
// Every vertex input must be a registered attribute of the right type, no location qualifier may
// disagree with the registry, every registered attribute must be declared, and every registered
// uniform must be declared with its registered type in one of the two stages.
//
// Parameters:
//   - sig: the signature the program is built against
//   - vertex: the expanded vertex source
//   - fragment: the expanded fragment source
//
// Returns:
//   - error: nil, or an error wrapping ErrAttributeMismatch, ErrUniformNotFound or ErrAnnotation
func confirmDeclarations(sig signature.ShaderSignature, vertex, fragment string) error {
	for stage, src := range map[Stage]string{StageVertex: vertex, StageFragment: fragment} {
		v, profile := parseVersion(src)
		if v < minGLSLVersion {
			return fmt.Errorf("%w: %s source needs #version %d core or newer, has %d", ErrAnnotation, stage, minGLSLVersion, v)
		}
		if profile != "" && profile != "core" {
			return fmt.Errorf("%w: %s source uses the %s profile", ErrAnnotation, stage, profile)
		}
	}

	declaredAttr := make(map[string]bool)
	declaredUniform := make(map[string]bool)

	for _, d := range parseDeclarations(vertex) {
		switch d.qualifier {
		case "in":
			a, ok := sig.AttributeByWire(d.name)
			if !ok {
				return fmt.Errorf("%w: %s vertex input %q is not in the registry", ErrAttributeMismatch, sig.Family(), d.name)
			}
			if d.typeName != a.Kind.GLSL() {
				return fmt.Errorf("%w: %s vertex input %q is %s, registry says %s", ErrAttributeMismatch, sig.Family(), d.name, d.typeName, a.Kind.GLSL())
			}
			if d.location >= 0 && uint32(d.location) != a.Location {
				return fmt.Errorf("%w: %s vertex input %q has layout location %d, registry says %d", ErrAttributeMismatch, sig.Family(), d.name, d.location, a.Location)
			}
			declaredAttr[d.name] = true
		case "uniform":
			if err := confirmUniform(sig, d); err != nil {
				return err
			}
			declaredUniform[d.name] = true
		}
	}
	for _, d := range parseDeclarations(fragment) {
		if d.qualifier != "uniform" {
			continue
		}
		if err := confirmUniform(sig, d); err != nil {
			return err
		}
		declaredUniform[d.name] = true
	}

	for _, a := range sig.Attributes() {
		if !declaredAttr[a.Wire] {
			return fmt.Errorf("%w: %s attribute %q is not declared by the vertex source", ErrAttributeMismatch, sig.Family(), a.Wire)
		}
	}
	for _, u := range sig.Uniforms() {
		if !declaredUniform[u.Wire] {
			return fmt.Errorf("%w: %s uniform %q is not declared by either stage", ErrUniformNotFound, sig.Family(), u.Wire)
		}
	}
	return nil
}

func confirmUniform(sig signature.ShaderSignature, d parsedDecl) error {
	u, ok := sig.UniformByWire(d.name)
	if !ok {
		return fmt.Errorf("%w: %s uniform %q is not in the registry", ErrUniformNotFound, sig.Family(), d.name)
	}
	if d.typeName != u.Kind.GLSL() {
		return fmt.Errorf("%w: %s uniform %q is %s, registry says %s", ErrAnnotation, sig.Family(), d.name, d.typeName, u.Kind.GLSL())
	}
	return nil
}

// stripComments removes block and line comments from GLSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes /* ... */ comments. GLSL block comments do not nest.
// Newlines inside a comment are kept so line-anchored patterns still see line starts.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	inComment := false
	for i := 0; i < len(source); i++ {
		if !inComment && i+1 < len(source) && source[i] == '/' && source[i+1] == '*' {
			inComment = true
			i++
			continue
		}
		if inComment && i+1 < len(source) && source[i] == '*' && source[i+1] == '/' {
			inComment = false
			i++
			continue
		}
		if !inComment || source[i] == '\n' {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
