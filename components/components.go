// Package components defines ECS components for the sketches.
package components

// Position represents a point in screen space.
type Position struct {
	X, Y float32
}

// FlakeState is a flake's lifecycle stage.
type FlakeState uint8

const (
	FlakeAir     FlakeState = iota // Falling
	FlakeMelting                   // Landed and shrinking
)

// String returns the state name used in logs and stats.
func (s FlakeState) String() string {
	switch s {
	case FlakeAir:
		return "air"
	case FlakeMelting:
		return "melting"
	default:
		return "unknown"
	}
}

// FlakeBody holds the per-tick kinematics of a flake.
type FlakeBody struct {
	Pos       Position
	FallSpeed float32 // Pixels per tick while in the air
	Size      float32 // Current glyph size; shrinks while melting
	BaseSize  float32 // Size at spawn, fixed per incarnation
	Life      float32 // 1 at spawn, decays to 0 while melting
}

// Flake holds the identity of one flake incarnation.
type Flake struct {
	State       FlakeState
	Char        rune
	Ground      float32 // Y at which the flake lands
	Seed        float32 // Desynchronizes wobble between flakes
	Incarnation uint32  // Number of times this slot has been recycled
}
