package shader

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strictChecker(ctx glapi.Context) glapi.Checker {
	return glapi.NewChecker(ctx, glapi.PolicyAllPhases)
}

func TestEveryKindLinks(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			rec := glapi.NewRecorder()
			p, err := New(rec, kind, strictChecker(rec))
			require.NoError(t, err)
			assert.Equal(t, kind, p.Kind())
			assert.Equal(t, kind.Family(), p.Signature().Family())

			for _, a := range p.Signature().Attributes() {
				assert.Equal(t, a.Location, p.AttributeLocation(a.Name))
				assert.Equal(t, int32(a.Location), rec.GetAttribLocation(p.Handle(), a.Wire), a.Wire)
			}
			for _, u := range p.Signature().Uniforms() {
				assert.GreaterOrEqual(t, p.UniformLocation(u.Name), int32(0), u.Wire)
			}
			assert.NotContains(t, p.Source(StageVertex), "@furl:")
			assert.NotContains(t, p.Source(StageVertex), "layout")
		})
	}
}

func TestSameFamilySharesLocations(t *testing.T) {
	rec := glapi.NewRecorder()
	blue, err := New(rec, KindBlueBox, strictChecker(rec))
	require.NoError(t, err)
	red, err := New(rec, KindRedBox, strictChecker(rec))
	require.NoError(t, err)

	for _, a := range blue.Signature().Attributes() {
		assert.Equal(t, blue.AttributeLocation(a.Name), red.AttributeLocation(a.Name))
		assert.Equal(t,
			rec.GetAttribLocation(blue.Handle(), a.Wire),
			rec.GetAttribLocation(red.Handle(), a.Wire), a.Wire)
	}
}

func TestFurlAndGuidesAgreeOnSharedAttributes(t *testing.T) {
	rec := glapi.NewRecorder()
	furl, err := New(rec, KindFurlBasic, strictChecker(rec))
	require.NoError(t, err)
	guides, err := New(rec, KindGuides, strictChecker(rec))
	require.NoError(t, err)

	for _, name := range []signature.AttributeName{signature.AttributePosition, signature.AttributeColor} {
		assert.Equal(t, furl.AttributeLocation(name), guides.AttributeLocation(name), name.String())
	}
}

func TestBuildOrder(t *testing.T) {
	rec := glapi.NewRecorder()
	p, err := New(rec, KindGuides, strictChecker(rec))
	require.NoError(t, err)

	index := func(name string) int {
		for i, c := range rec.Calls() {
			if c.Name == name {
				return i
			}
		}
		return -1
	}
	lastIndex := func(name string) int {
		last := -1
		for i, c := range rec.Calls() {
			if c.Name == name {
				last = i
			}
		}
		return last
	}

	link := index("LinkProgram")
	require.Positive(t, link)
	assert.Less(t, lastIndex("BindAttribLocation"), link, "locations must be bound before linking")
	assert.Less(t, lastIndex("AttachShader"), link)
	assert.Greater(t, index("DetachShader"), link)
	assert.Len(t, rec.CallsNamed("DetachShader"), 2)
	assert.Len(t, rec.CallsNamed("DeleteShader"), 2)
	assert.Len(t, rec.CallsNamed("BindAttribLocation"), len(p.Signature().Attributes()))
}

func TestCompileFailuresAreDistinct(t *testing.T) {
	tests := []struct {
		name  string
		stage uint32
		want  error
	}{
		{"vertex", glapi.VertexShader, ErrCompileVertex},
		{"fragment", glapi.FragmentShader, ErrCompileFragment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := glapi.NewRecorder()
			rec.FailCompile(tt.stage, "0:7(2): error: syntax error")
			_, err := New(rec, KindRainbowCactus, strictChecker(rec))
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "syntax error")
			programs, _, _ := rec.LiveObjects()
			assert.Zero(t, programs)
		})
	}
}

func TestLinkFailureCarriesLog(t *testing.T) {
	rec := glapi.NewRecorder()
	rec.FailLink("varying v_color not written")
	_, err := New(rec, KindFurlBasic, strictChecker(rec))
	require.ErrorIs(t, err, ErrLinkProgram)
	assert.Contains(t, err.Error(), "varying v_color not written")
	programs, _, _ := rec.LiveObjects()
	assert.Zero(t, programs)
}

// unboundRecorder drops BindAttribLocation so the driver places attributes itself.
type unboundRecorder struct {
	*glapi.Recorder
}

func (unboundRecorder) BindAttribLocation(uint32, uint32, string) {}

func TestMissingBindIsCaughtAfterLink(t *testing.T) {
	ctx := unboundRecorder{glapi.NewRecorder()}
	_, err := New(ctx, KindBlueBox, strictChecker(ctx))
	assert.ErrorIs(t, err, ErrAttributeMismatch)
}

func TestStrippedDeclarations(t *testing.T) {
	t.Run("inactive attribute is tolerated", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.Deactivate("a_instance_log_rev")
		_, err := New(rec, KindRainbowCactus, strictChecker(rec))
		assert.NoError(t, err)
	})
	t.Run("inactive uniform is fatal", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.Deactivate("u_pointsize")
		_, err := New(rec, KindBlueBox, strictChecker(rec))
		assert.ErrorIs(t, err, ErrUniformNotFound)
	})
}

func TestUndeclaredNamesPanic(t *testing.T) {
	rec := glapi.NewRecorder()
	p, err := New(rec, KindBlueBox, strictChecker(rec))
	require.NoError(t, err)

	assert.Panics(t, func() { p.UniformLocation(signature.UniformTimermix) })
	assert.Panics(t, func() { p.UniformLocation(signature.UniformCount) })
	assert.Panics(t, func() { p.AttributeLocation(signature.AttributeCurves) })
	assert.NotPanics(t, func() { p.UniformLocation(signature.UniformPointsize) })
	assert.Panics(t, func() { Kind(99).Family() })
}

func TestGLErrorsFollowPolicy(t *testing.T) {
	t.Run("checked", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.InjectError(glapi.InvalidOperation)
		_, err := New(rec, KindGuides, glapi.NewChecker(rec, glapi.PolicySetupAndSceneInit))
		var glErr *glapi.Error
		require.True(t, errors.As(err, &glErr))
		assert.Equal(t, uint32(glapi.InvalidOperation), glErr.Code)
		assert.Equal(t, glapi.PhaseSceneInit, glErr.Phase)
	})
	t.Run("ignored", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.InjectError(glapi.InvalidOperation)
		_, err := New(rec, KindGuides, glapi.NewChecker(rec, glapi.PolicySetupOnly))
		assert.NoError(t, err)
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	rec := glapi.NewRecorder()
	p, err := New(rec, KindGuides, strictChecker(rec))
	require.NoError(t, err)
	p.Delete()
	p.Delete()
	assert.Len(t, rec.CallsNamed("DeleteProgram"), 1)
	assert.Zero(t, p.Handle())
}
