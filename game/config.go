package game

import (
	"io"
	"log"
	"time"
)

// Config controls a game session.
type Config struct {
	// Step is the time between gravity ticks.
	Step time.Duration
	// MaxCatchUp bounds the gravity ticks run in a single frame; any
	// further backlog is dropped.
	MaxCatchUp int
	// Seed seeds the piece dealer. Zero picks a random seed.
	Seed uint64
	// Name labels the session in logs. Empty generates one.
	Name string
	// Controls enables horizontal movement, rotation and soft drop input.
	Controls bool
	// ExitOnLoss ends the session as soon as the loss condition is reached.
	ExitOnLoss bool
	Logger     *log.Logger
}

// DefaultConfig returns the settings of the classic build: a 0.3s gravity
// tick, no movement controls, and exit on loss.
func DefaultConfig() Config {
	return Config{
		Step:       300 * time.Millisecond,
		MaxCatchUp: 5,
		ExitOnLoss: true,
		Logger:     log.New(io.Discard, "", 0),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Step <= 0 {
		c.Step = def.Step
	}
	if c.MaxCatchUp <= 0 {
		c.MaxCatchUp = def.MaxCatchUp
	}
	if c.Logger == nil {
		c.Logger = def.Logger
	}
	return c
}
