package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessExpandsFromRegistry(t *testing.T) {
	src := strings.Join([]string{
		"#version 330 core",
		"//@furl:attribute position",
		"  //@furl:attribute ia_curves",
		"//@furl:uniform u_timermix",
		"//@furl:include quaternion",
		"//@furl:include quaternion",
		"void main() {}",
	}, "\n")

	pp := NewPreProcessor(signature.For(signature.FamilyFurlBasic), StageVertex)
	out, err := pp.Process(src)
	require.NoError(t, err)

	assert.Contains(t, out, "\nin vec3 position;\n")
	assert.Contains(t, out, "\nin vec4 ia_curves;\n")
	assert.Contains(t, out, "\nuniform vec4 u_timermix;\n")
	assert.Equal(t, 1, strings.Count(out, "vec3 rotate_axis_angle("), "includes are spliced once")
	assert.NotContains(t, out, "@furl:")

	decls := pp.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, AnnotationTypeAttribute, decls[0].Type)
	assert.Equal(t, "position", decls[0].Arg)
	assert.Equal(t, 2, decls[0].Line)
	assert.Equal(t, AnnotationTypeUniform, decls[2].Type)
}

func TestProcessRejects(t *testing.T) {
	tests := []struct {
		name   string
		family signature.Family
		stage  Stage
		src    string
	}{
		{"attribute in fragment", signature.FamilyGuides, StageFragment, "//@furl:attribute position"},
		{"unknown attribute", signature.FamilyGuides, StageVertex, "//@furl:attribute ia_curves"},
		{"unknown uniform", signature.FamilyGuides, StageVertex, "//@furl:uniform u_pointsize"},
		{"duplicate", signature.FamilyGuides, StageVertex, "//@furl:uniform u_view_matrix\n//@furl:uniform u_view_matrix"},
		{"unknown type", signature.FamilyGuides, StageVertex, "//@furl:varying v_color"},
		{"missing argument", signature.FamilyGuides, StageVertex, "//@furl:uniform"},
		{"empty", signature.FamilyGuides, StageVertex, "//@furl:"},
		{"unknown snippet", signature.FamilyGuides, StageVertex, "//@furl:include noise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreProcessor(signature.For(tt.family), tt.stage).Process(tt.src)
			assert.ErrorIs(t, err, ErrAnnotation)
		})
	}
}

func TestProcessLeavesOrdinaryCommentsAlone(t *testing.T) {
	src := "// plain comment\nint x = 1; // @furl: is only honoured at line start"
	out, err := NewPreProcessor(signature.For(signature.FamilyGuides), StageVertex).Process(src)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestConfirmDeclarations(t *testing.T) {
	const frag = "#version 330 core\nout vec4 c;\n"
	guides := signature.For(signature.FamilyGuides)
	header := "#version 330 core\n"
	uniforms := "uniform mat4 u_projection_matrix;\nuniform mat4 u_view_matrix;\n"

	tests := []struct {
		name   string
		vertex string
		want   error
	}{
		{"ok", header + "in vec3 position;\nin vec3 color;\n" + uniforms, nil},
		{"ok with agreeing layout", header + "layout(location = 1) in vec3 color;\nin vec3 position;\n" + uniforms, nil},
		{"disagreeing layout", header + "layout(location = 0) in vec3 color;\nin vec3 position;\n" + uniforms, ErrAttributeMismatch},
		{"wrong attribute type", header + "in vec4 position;\nin vec3 color;\n" + uniforms, ErrAttributeMismatch},
		{"unregistered input", header + "in vec3 position;\nin vec3 color;\nin float extra;\n" + uniforms, ErrAttributeMismatch},
		{"missing attribute", header + "in vec3 position;\n" + uniforms, ErrAttributeMismatch},
		{"missing uniform", header + "in vec3 position;\nin vec3 color;\nuniform mat4 u_view_matrix;\n", ErrUniformNotFound},
		{"wrong uniform type", header + "in vec3 position;\nin vec3 color;\nuniform mat3 u_projection_matrix;\nuniform mat4 u_view_matrix;\n", ErrAnnotation},
		{"commented out", header + "in vec3 position;\n/* in vec3 color; */\n" + uniforms, ErrAttributeMismatch},
		{"old version", "#version 120\nin vec3 position;\nin vec3 color;\n" + uniforms, ErrAnnotation},
		{"compatibility profile", "#version 330 compatibility\nin vec3 position;\nin vec3 color;\n" + uniforms, ErrAnnotation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := confirmDeclarations(guides, tt.vertex, frag)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	decls := parseDeclarations("layout(location = 3) in vec3 color;\nout vec3 v_color;\n// uniform float gone;\nuniform float u_pointsize;")
	require.Len(t, decls, 3)
	assert.Equal(t, parsedDecl{qualifier: "in", typeName: "vec3", name: "color", location: 3}, decls[0])
	assert.Equal(t, parsedDecl{qualifier: "out", typeName: "vec3", name: "v_color", location: -1}, decls[1])
	assert.Equal(t, "u_pointsize", decls[2].name)

	v, profile := parseVersion("/* header */\n#version 330 core\n")
	assert.Equal(t, 330, v)
	assert.Equal(t, "core", profile)
}
