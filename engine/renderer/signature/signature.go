// Package signature is the single source of truth for the vertex attributes and uniforms each
// shader family consumes. The pre-processor, the program linker and the binding kit all read these
// tables; nothing else states an attribute location.
package signature

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidSignature is returned by Validate and Compatible.
var ErrInvalidSignature = errors.New("signature: invalid signature")

// Attribute declares one vertex attribute of a family.
type Attribute struct {
	Name     AttributeName
	Kind     AttributeKind
	Location uint32
	Wire     string
}

// Uniform declares one uniform of a family. Locations are resolved per linked program.
type Uniform struct {
	Name UniformName
	Kind UniformKind
	Wire string
}

// ShaderSignature is the immutable bundle of attributes and uniforms for one family.
type ShaderSignature struct {
	family     Family
	attributes []Attribute
	uniforms   []Uniform
}

var registry = [familyCount]ShaderSignature{
	FamilyBlueRedBox: {
		family: FamilyBlueRedBox,
		attributes: []Attribute{
			{AttributePositionX, AttributeFloat, 0, "a_position_x"},
			{AttributePositionY, AttributeFloat, 1, "a_position_y"},
			{AttributeInstanceStep, AttributeFloat, 2, "a_instance_step"},
		},
		uniforms: []Uniform{
			{UniformPointsize, UniformFloat, "u_pointsize"},
		},
	},
	FamilyFurlBasic: {
		family: FamilyFurlBasic,
		attributes: []Attribute{
			{AttributePosition, AttributeVec3, 0, "position"},
			{AttributeColor, AttributeVec3, 1, "color"},
			{AttributeCurves, AttributeVec4, 2, "ia_curves"},
		},
		uniforms: []Uniform{
			{UniformAngle, UniformMat4, "iu_angle"},
			{UniformBulge, UniformMat4, "iu_bulge"},
			{UniformLean, UniformMat4, "iu_lean"},
			{UniformRise, UniformMat4, "iu_rise"},
			{UniformScale, UniformMat4, "iu_scale"},
			{UniformTilt, UniformMat4, "iu_tilt"},
			{UniformPlacement, UniformVec3, "u_placement"},
			{UniformSlidermix, UniformVec4, "u_slidermix"},
			{UniformTimermix, UniformVec4, "u_timermix"},
			{UniformProjectionMatrix, UniformMat4, "u_projection_matrix"},
			{UniformViewMatrix, UniformMat4, "u_view_matrix"},
			{UniformQuaternionX, UniformVec4, "u_quaternion_x"},
			{UniformQuaternionY, UniformVec4, "u_quaternion_y"},
		},
	},
	FamilyGuides: {
		family: FamilyGuides,
		attributes: []Attribute{
			{AttributePosition, AttributeVec3, 0, "position"},
			{AttributeColor, AttributeVec3, 1, "color"},
		},
		uniforms: []Uniform{
			{UniformProjectionMatrix, UniformMat4, "u_projection_matrix"},
			{UniformViewMatrix, UniformMat4, "u_view_matrix"},
		},
	},
	FamilyRainbowCactus: {
		family: FamilyRainbowCactus,
		attributes: []Attribute{
			{AttributePosition, AttributeVec3, 0, "position"},
			{AttributeInstanceLog, AttributeFloat, 1, "a_instance_log"},
			{AttributeInstanceStep, AttributeFloat, 2, "a_instance_step"},
			{AttributeColor, AttributeVec3, 3, "color"},
			{AttributeInstanceLogRev, AttributeFloat, 4, "a_instance_log_rev"},
		},
		uniforms: []Uniform{
			{UniformProjectionMatrix, UniformMat4, "u_projection_matrix"},
			{UniformViewMatrix, UniformMat4, "u_view_matrix"},
			{UniformModelMatrix, UniformMat4, "u_model_matrix"},
			{UniformQuaternion, UniformVec4, "u_quaternion"},
		},
	},
}

// For returns the signature of a family. Unknown families panic.
//
// Parameters:
//   - family: the family to look up
//
// Returns:
//   - ShaderSignature: the registered signature
func For(family Family) ShaderSignature {
	if family < 0 || family >= familyCount {
		panic(fmt.Sprintf("signature: unknown family %d", int(family)))
	}
	return registry[family]
}

// Families returns every registered family in declaration order.
func Families() []Family {
	out := make([]Family, 0, familyCount)
	for f := Family(0); f < familyCount; f++ {
		out = append(out, f)
	}
	return out
}

// Family returns the family this signature describes.
func (s ShaderSignature) Family() Family {
	return s.family
}

// Attributes returns a copy of the declared attributes, ordered by location.
func (s ShaderSignature) Attributes() []Attribute {
	out := slices.Clone(s.attributes)
	slices.SortFunc(out, func(a, b Attribute) int { return int(a.Location) - int(b.Location) })
	return out
}

// Uniforms returns a copy of the declared uniforms.
func (s ShaderSignature) Uniforms() []Uniform {
	return slices.Clone(s.uniforms)
}

// HasAttribute reports whether name is declared.
func (s ShaderSignature) HasAttribute(name AttributeName) bool {
	_, ok := s.lookupAttribute(name)
	return ok
}

// Attribute returns the declaration of name and panics when the family does not declare it.
func (s ShaderSignature) Attribute(name AttributeName) Attribute {
	a, ok := s.lookupAttribute(name)
	if !ok {
		panic(fmt.Sprintf("signature: attribute %s is not declared by %s", name, s.family))
	}
	return a
}

// AttributeByWire finds an attribute by its GLSL name.
func (s ShaderSignature) AttributeByWire(wire string) (Attribute, bool) {
	for _, a := range s.attributes {
		if a.Wire == wire {
			return a, true
		}
	}
	return Attribute{}, false
}

// HasUniform reports whether name is declared.
func (s ShaderSignature) HasUniform(name UniformName) bool {
	_, ok := s.lookupUniform(name)
	return ok
}

// Uniform returns the declaration of name and panics when the family does not declare it.
func (s ShaderSignature) Uniform(name UniformName) Uniform {
	u, ok := s.lookupUniform(name)
	if !ok {
		panic(fmt.Sprintf("signature: uniform %s is not declared by %s", name, s.family))
	}
	return u
}

// UniformByWire finds a uniform by its GLSL name.
func (s ShaderSignature) UniformByWire(wire string) (Uniform, bool) {
	for _, u := range s.uniforms {
		if u.Wire == wire {
			return u, true
		}
	}
	return Uniform{}, false
}

// Validate checks that attribute locations are unique and packed from 0 and that no name or
// wire name is declared twice.
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalidSignature
func (s ShaderSignature) Validate() error {
	seenLoc := make(map[uint32]AttributeName, len(s.attributes))
	seenName := make(map[AttributeName]bool, len(s.attributes))
	seenWire := make(map[string]bool, len(s.attributes)+len(s.uniforms))
	for _, a := range s.attributes {
		if prev, ok := seenLoc[a.Location]; ok {
			return fmt.Errorf("%w: %s: %s and %s share location %d", ErrInvalidSignature, s.family, prev, a.Name, a.Location)
		}
		if seenName[a.Name] {
			return fmt.Errorf("%w: %s: attribute %s declared twice", ErrInvalidSignature, s.family, a.Name)
		}
		if seenWire[a.Wire] {
			return fmt.Errorf("%w: %s: wire name %q declared twice", ErrInvalidSignature, s.family, a.Wire)
		}
		seenLoc[a.Location] = a.Name
		seenName[a.Name] = true
		seenWire[a.Wire] = true
	}
	for loc := range uint32(len(s.attributes)) {
		if _, ok := seenLoc[loc]; !ok {
			return fmt.Errorf("%w: %s: attribute locations are not contiguous, %d is missing", ErrInvalidSignature, s.family, loc)
		}
	}
	seenUniform := make(map[UniformName]bool, len(s.uniforms))
	for _, u := range s.uniforms {
		if seenUniform[u.Name] {
			return fmt.Errorf("%w: %s: uniform %s declared twice", ErrInvalidSignature, s.family, u.Name)
		}
		if seenWire[u.Wire] {
			return fmt.Errorf("%w: %s: wire name %q declared twice", ErrInvalidSignature, s.family, u.Wire)
		}
		seenUniform[u.Name] = true
		seenWire[u.Wire] = true
	}
	return nil
}

// Compatible reports whether programs of families a and b can read the same vertex buffers:
// every attribute both declare must have the same location, kind and wire name.
//
// Parameters:
//   - a: the first family
//   - b: the second family
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalidSignature naming the first conflict
func Compatible(a, b Family) error {
	sa, sb := For(a), For(b)
	for _, x := range sa.attributes {
		y, ok := sb.lookupAttribute(x.Name)
		if !ok {
			continue
		}
		if x.Location != y.Location || x.Kind != y.Kind || x.Wire != y.Wire {
			return fmt.Errorf("%w: %s binds %s to %d (%s %q) but %s binds it to %d (%s %q)",
				ErrInvalidSignature, a, x.Name, x.Location, x.Kind.GLSL(), x.Wire, b, y.Location, y.Kind.GLSL(), y.Wire)
		}
	}
	return nil
}

func (s ShaderSignature) lookupAttribute(name AttributeName) (Attribute, bool) {
	for _, a := range s.attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

func (s ShaderSignature) lookupUniform(name UniformName) (Uniform, bool) {
	for _, u := range s.uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return Uniform{}, false
}
