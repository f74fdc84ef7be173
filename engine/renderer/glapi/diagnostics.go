package glapi

import (
	"fmt"
	"strings"
)

// Phase identifies which part of the pipeline issued a GL call.
type Phase int

const (
	// PhaseSetup covers renderer construction (the cold path).
	PhaseSetup Phase = iota
	// PhaseSceneInit covers one-time scene setup (the cool path).
	PhaseSceneInit
	// PhaseFrame covers per-frame work (the warm path).
	PhaseFrame
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseSceneInit:
		return "scene-init"
	case PhaseFrame:
		return "frame"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Policy selects which phases pay for a GetError round trip after each state-changing call.
type Policy int

const (
	// PolicyOff never checks.
	PolicyOff Policy = iota
	// PolicySetupOnly checks during renderer construction.
	PolicySetupOnly
	// PolicySetupAndSceneInit checks during renderer construction and scene setup.
	PolicySetupAndSceneInit
	// PolicyAllPhases also checks after every per-frame call. Expect stalls.
	PolicyAllPhases
)

var policyNames = [...]string{
	PolicyOff:               "off",
	PolicySetupOnly:         "setup-only",
	PolicySetupAndSceneInit: "setup+scene-init",
	PolicyAllPhases:         "all-phases",
}

// Enabled reports whether calls made in phase should be checked under this policy.
func (p Policy) Enabled(phase Phase) bool {
	switch p {
	case PolicySetupOnly:
		return phase == PhaseSetup
	case PolicySetupAndSceneInit:
		return phase == PhaseSetup || phase == PhaseSceneInit
	case PolicyAllPhases:
		return true
	default:
		return false
	}
}

func (p Policy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses one of "off", "setup-only", "setup+scene-init" or "all-phases".
func ParsePolicy(s string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range policyNames {
		if key == name {
			return Policy(i), nil
		}
	}
	return PolicyOff, fmt.Errorf("glapi: unknown diagnostic policy %q (want one of %s)", s, strings.Join(policyNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so config files can name a policy.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Error is a GL error flag observed right after a named operation.
type Error struct {
	Phase Phase
	Op    string
	Code  uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("glapi: %s during %s: %s (0x%04X)", e.Op, e.Phase, ErrorName(e.Code), e.Code)
}

// Checker applies a Policy to a Context.
type Checker struct {
	ctx    Context
	policy Policy
}

// NewChecker creates a Checker reading errors from ctx under policy.
//
// Parameters:
//   - ctx: the context to query with GetError
//   - policy: the phases to check
//
// Returns:
//   - Checker: the checker
func NewChecker(ctx Context, policy Policy) Checker {
	return Checker{ctx: ctx, policy: policy}
}

// Policy returns the policy in force.
func (c Checker) Policy() Policy {
	return c.policy
}

// Check drains the GL error flag when phase is enabled and returns the first error seen, or nil.
// When phase is disabled Check does not touch the context.
//
// Parameters:
//   - phase: the phase the preceding call belongs to
//   - op: a short name for the preceding call, used in the error message
//
// Returns:
//   - error: a *Error, or nil
func (c Checker) Check(phase Phase, op string) error {
	if c.ctx == nil || !c.policy.Enabled(phase) {
		return nil
	}
	var first error
	// GL may hold several flags; drain them so the next check starts clean.
	for i := 0; i < 8; i++ {
		code := c.ctx.GetError()
		if code == NoError {
			break
		}
		if first == nil {
			first = &Error{Phase: phase, Op: op, Code: code}
		}
	}
	return first
}

// MustCheck is Check for the warm path: a non-nil result panics.
func (c Checker) MustCheck(phase Phase, op string) {
	if err := c.Check(phase, op); err != nil {
		panic(err.Error())
	}
}
