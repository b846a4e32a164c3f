package game

import (
	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
)

// CollisionDetector decides whether the player hits an obstacle.
//
// Standard kinds use box overlap with both boxes shrunk by a small buffer.
// Double-jump kinds only collide while the player's bottom is under the
// kind's clear height, so a single jump still lands in the river while a
// double jump clears it.
type CollisionDetector struct {
	field  config.FieldConfig
	player config.PlayerConfig
	buffer float64
}

// NewCollisionDetector creates a detector for the configured geometry.
func NewCollisionDetector(cfg config.DinoConfig) CollisionDetector {
	return CollisionDetector{
		field:  cfg.Field,
		player: cfg.Player,
		buffer: cfg.Collision.Buffer,
	}
}

// PlayerBox returns the player's hitbox with its bottom edge at bottom.
func (d CollisionDetector) PlayerBox(bottom float64) core.Rect {
	return core.NewRect(d.player.X, bottom, d.player.Width, d.player.Height)
}

// Check reports whether the player box collides with the obstacle.
func (d CollisionDetector) Check(player core.Rect, o Obstacle) bool {
	box := o.Hitbox(d.field.Width, d.field.Ground).Inset(d.buffer)
	p := player.Inset(d.buffer)

	if o.Kind.RequiresDoubleJump {
		return player.Y < o.Kind.ClearHeight && p.OverlapsX(box)
	}
	return p.Intersects(box)
}

// Distance returns the horizontal gap from the player's left edge to the
// obstacle's left edge. Negative once the obstacle has reached the player.
func (d CollisionDetector) Distance(o Obstacle) float64 {
	return o.Left(d.field.Width) - d.player.X
}
