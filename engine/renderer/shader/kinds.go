package shader

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
)

var (
	//go:embed glsl/box.vert
	boxVertexSource string
	//go:embed glsl/cactus.vert
	cactusVertexSource string
	//go:embed glsl/guides.vert
	guidesVertexSource string
	//go:embed glsl/furl_basic.vert
	furlBasicVertexSource string

	//go:embed glsl/blue.frag
	blueFragmentSource string
	//go:embed glsl/red.frag
	redFragmentSource string
	//go:embed glsl/rainbow.frag
	rainbowFragmentSource string
	//go:embed glsl/passthru.frag
	passthruFragmentSource string

	//go:embed glsl/quaternion.glsl
	quaternionSnippet string
)

// Kind is the closed set of programs the engine can build. Adding a program means adding a Kind
// and a row to the kind table.
type Kind int

const (
	KindBlueBox Kind = iota
	KindRedBox
	KindFurlBasic
	KindGuides
	KindRainbowCactus

	kindCount
)

type kindDef struct {
	name     string
	family   signature.Family
	vertex   string
	fragment string
}

var kinds = [kindCount]kindDef{
	KindBlueBox:       {"BlueBox", signature.FamilyBlueRedBox, boxVertexSource, blueFragmentSource},
	KindRedBox:        {"RedBox", signature.FamilyBlueRedBox, boxVertexSource, redFragmentSource},
	KindFurlBasic:     {"FurlBasic", signature.FamilyFurlBasic, furlBasicVertexSource, passthruFragmentSource},
	KindGuides:        {"Guides", signature.FamilyGuides, guidesVertexSource, passthruFragmentSource},
	KindRainbowCactus: {"RainbowCactus", signature.FamilyRainbowCactus, cactusVertexSource, rainbowFragmentSource},
}

func kindDefinition(k Kind) kindDef {
	if k < 0 || k >= kindCount {
		panic(fmt.Sprintf("shader: unknown program kind %d", int(k)))
	}
	return kinds[k]
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kinds[k].name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Family returns the signature family programs of this kind are linked against.
func (k Kind) Family() signature.Family {
	return kindDefinition(k).family
}

// Kinds returns every program kind.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
