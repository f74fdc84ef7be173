package signature

import "fmt"

// Family names one shader signature. Programs of the same family share a vertex buffer layout.
type Family int

const (
	FamilyBlueRedBox Family = iota
	FamilyFurlBasic
	FamilyGuides
	FamilyRainbowCactus

	familyCount
)

func (f Family) String() string {
	switch f {
	case FamilyBlueRedBox:
		return "BlueRedBox"
	case FamilyFurlBasic:
		return "FurlBasic"
	case FamilyGuides:
		return "Guides"
	case FamilyRainbowCactus:
		return "RainbowCactus"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// AttributeName is the semantic name of a vertex attribute.
type AttributeName int

const (
	AttributeColor AttributeName = iota
	AttributeCurves
	AttributeInstanceLog
	AttributeInstanceLogRev
	AttributeInstanceStep
	AttributePosition
	AttributePositionX
	AttributePositionY

	AttributeCount
)

func (a AttributeName) String() string {
	switch a {
	case AttributeColor:
		return "Color"
	case AttributeCurves:
		return "Curves"
	case AttributeInstanceLog:
		return "InstanceLog"
	case AttributeInstanceLogRev:
		return "InstanceLogRev"
	case AttributeInstanceStep:
		return "InstanceStep"
	case AttributePosition:
		return "Position"
	case AttributePositionX:
		return "PositionX"
	case AttributePositionY:
		return "PositionY"
	default:
		return fmt.Sprintf("AttributeName(%d)", int(a))
	}
}

// UniformName is the semantic name of a uniform.
type UniformName int

const (
	// Instance uniforms. Each column holds one parameter block.
	UniformAngle UniformName = iota
	UniformBulge
	UniformLean
	UniformRise
	UniformScale
	UniformTilt

	UniformModelMatrix
	UniformPlacement
	UniformPointsize
	UniformProjectionMatrix
	UniformQuaternion
	UniformQuaternionX
	UniformQuaternionY
	UniformSlidermix
	UniformTimermix
	UniformViewMatrix

	UniformCount
)

var uniformNames = [UniformCount]string{
	UniformAngle:            "Angle",
	UniformBulge:            "Bulge",
	UniformLean:             "Lean",
	UniformRise:             "Rise",
	UniformScale:            "Scale",
	UniformTilt:             "Tilt",
	UniformModelMatrix:      "ModelMatrix",
	UniformPlacement:        "Placement",
	UniformPointsize:        "Pointsize",
	UniformProjectionMatrix: "ProjectionMatrix",
	UniformQuaternion:       "Quaternion",
	UniformQuaternionX:      "QuaternionX",
	UniformQuaternionY:      "QuaternionY",
	UniformSlidermix:        "Slidermix",
	UniformTimermix:         "Timermix",
	UniformViewMatrix:       "ViewMatrix",
}

func (u UniformName) String() string {
	if u >= 0 && u < UniformCount {
		return uniformNames[u]
	}
	return fmt.Sprintf("UniformName(%d)", int(u))
}

// AttributeKind is the GLSL type of an attribute.
type AttributeKind int

const (
	AttributeFloat AttributeKind = iota
	AttributeVec3
	AttributeVec4
)

// Components returns the number of 32-bit floats one value occupies.
func (k AttributeKind) Components() int32 {
	switch k {
	case AttributeVec3:
		return 3
	case AttributeVec4:
		return 4
	default:
		return 1
	}
}

// GLSL returns the GLSL type keyword.
func (k AttributeKind) GLSL() string {
	switch k {
	case AttributeVec3:
		return "vec3"
	case AttributeVec4:
		return "vec4"
	default:
		return "float"
	}
}

// UniformKind is the GLSL type of a uniform.
type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformVec3
	UniformVec4
	UniformMat4
)

// GLSL returns the GLSL type keyword.
func (k UniformKind) GLSL() string {
	switch k {
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	case UniformMat4:
		return "mat4"
	default:
		return "float"
	}
}

func (k UniformKind) String() string {
	return k.GLSL()
}
