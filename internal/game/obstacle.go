package game

import (
	"time"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
)

// Class is the geometric category of an obstacle kind.
type Class int

const (
	ClassLow    Class = iota // short and narrow (cactus)
	ClassMedium              // short and wide (rock)
	ClassWide                // wide and flat, needs a double jump (river)
	ClassTall                // tall (rival dino)
)

func (c Class) String() string {
	switch c {
	case ClassLow:
		return config.ClassLow
	case ClassMedium:
		return config.ClassMedium
	case ClassWide:
		return config.ClassWide
	case ClassTall:
		return config.ClassTall
	default:
		return "unknown"
	}
}

func parseClass(s string) Class {
	switch s {
	case config.ClassMedium:
		return ClassMedium
	case config.ClassWide:
		return ClassWide
	case config.ClassTall:
		return ClassTall
	default:
		return ClassLow
	}
}

// Kind is a category of hazard with fixed geometry.
type Kind struct {
	Name               string
	Class              Class
	Width              float64
	Height             float64
	Weight             int
	BaseDifficulty     float64
	RequiresDoubleJump bool
	ClearHeight        float64 // Minimum player bottom that clears a double-jump kind
	Description        string
}

// Simple reports whether the kind may appear in a group spawn.
func (k Kind) Simple() bool {
	return !k.RequiresDoubleJump && (k.Class == ClassLow || k.Class == ClassMedium)
}

// KindsFromConfig converts the configured kind table.
func KindsFromConfig(cfg []config.KindConfig) []Kind {
	kinds := make([]Kind, 0, len(cfg))
	for _, k := range cfg {
		kinds = append(kinds, Kind{
			Name:               k.Name,
			Class:              parseClass(k.Class),
			Width:              k.Width,
			Height:             k.Height,
			Weight:             k.Weight,
			BaseDifficulty:     k.Difficulty,
			RequiresDoubleJump: k.RequiresDoubleJump,
			ClearHeight:        k.ClearHeight,
			Description:        k.Description,
		})
	}
	return kinds
}

// Obstacle is a live hazard scrolling toward the player.
// Position is the distance travelled from the spawn edge; it starts at
// -Width so the obstacle enters fully off-screen.
type Obstacle struct {
	ID         int
	Kind       Kind
	Position   float64
	Speed      float64 // Position gained per simulation tick
	SpawnedAt  time.Duration
	Generation uint64
}

// Left returns the obstacle's left edge in world coordinates.
func (o Obstacle) Left(fieldWidth float64) float64 {
	return fieldWidth - o.Position - o.Kind.Width
}

// Hitbox returns the obstacle's box standing on the ground line.
func (o Obstacle) Hitbox(fieldWidth, ground float64) core.Rect {
	return core.NewRect(o.Left(fieldWidth), ground, o.Kind.Width, o.Kind.Height)
}

// OffScreen reports whether the obstacle has scrolled past the far edge.
func (o Obstacle) OffScreen(field config.FieldConfig) bool {
	return o.Position > field.Width+field.DespawnMargin
}
