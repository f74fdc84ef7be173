package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryFamilyValidates(t *testing.T) {
	for _, f := range Families() {
		t.Run(f.String(), func(t *testing.T) {
			sig := For(f)
			require.NoError(t, sig.Validate())

			attrs := sig.Attributes()
			require.NotEmpty(t, attrs)
			for i, a := range attrs {
				assert.Equal(t, uint32(i), a.Location, "locations must be packed from 0")
			}
		})
	}
}

func TestFamiliesIsClosed(t *testing.T) {
	assert.Equal(t, []Family{FamilyBlueRedBox, FamilyFurlBasic, FamilyGuides, FamilyRainbowCactus}, Families())
	assert.Panics(t, func() { For(Family(42)) })
}

func TestValidateRejectsGapsAndDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		attrs []Attribute
	}{
		{
			name: "gap",
			attrs: []Attribute{
				{AttributePosition, AttributeVec3, 0, "position"},
				{AttributeColor, AttributeVec3, 2, "color"},
			},
		},
		{
			name: "shared location",
			attrs: []Attribute{
				{AttributePosition, AttributeVec3, 0, "position"},
				{AttributeColor, AttributeVec3, 0, "color"},
			},
		},
		{
			name: "duplicate wire",
			attrs: []Attribute{
				{AttributePosition, AttributeVec3, 0, "position"},
				{AttributeColor, AttributeVec3, 1, "position"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := ShaderSignature{family: FamilyGuides, attributes: tt.attrs}
			assert.ErrorIs(t, sig.Validate(), ErrInvalidSignature)
		})
	}
}

func TestLookupPanicsOnUndeclaredNames(t *testing.T) {
	guides := For(FamilyGuides)
	assert.True(t, guides.HasAttribute(AttributePosition))
	assert.False(t, guides.HasAttribute(AttributeCurves))
	assert.Panics(t, func() { guides.Attribute(AttributeCurves) })
	assert.Panics(t, func() { guides.Uniform(UniformTimermix) })
	assert.Equal(t, "u_view_matrix", guides.Uniform(UniformViewMatrix).Wire)

	a, ok := For(FamilyRainbowCactus).AttributeByWire("a_instance_log_rev")
	require.True(t, ok)
	assert.Equal(t, uint32(4), a.Location)
	_, ok = guides.UniformByWire("u_pointsize")
	assert.False(t, ok)
}

func TestCompatible(t *testing.T) {
	assert.NoError(t, Compatible(FamilyFurlBasic, FamilyGuides))
	assert.NoError(t, Compatible(FamilyGuides, FamilyFurlBasic))

	// RainbowCactus puts color at 3, the guides keep it at 1.
	err := Compatible(FamilyRainbowCactus, FamilyGuides)
	require.ErrorIs(t, err, ErrInvalidSignature)
	assert.Contains(t, err.Error(), "Color")
}

func TestAttributesAreCopies(t *testing.T) {
	attrs := For(FamilyGuides).Attributes()
	attrs[0].Location = 9
	assert.Equal(t, uint32(0), For(FamilyGuides).Attribute(AttributePosition).Location)
}
