package workflow

import (
	"math/rand/v2"
	"time"

	"github.com/dmitrijs2005/docforge/internal/client/config"
)

// Options tunes the simulated progress and the success reveal.
type Options struct {
	// ProgressInterval is the tick period of the progress simulation.
	ProgressInterval time.Duration
	// ProgressStep is the largest increment per tick; each tick adds
	// Rand()*ProgressStep.
	ProgressStep float64
	// ProgressCeiling is where the simulation stops until the request resolves.
	ProgressCeiling float64
	// RevealDelay separates a successful response from the download becoming ready.
	RevealDelay time.Duration
	// Rand returns values in [0, 1).
	Rand func() float64
}

func DefaultOptions() Options {
	return Options{
		ProgressInterval: 300 * time.Millisecond,
		ProgressStep:     5,
		ProgressCeiling:  90,
		RevealDelay:      500 * time.Millisecond,
		Rand:             rand.Float64,
	}
}

// OptionsFromConfig copies the progress settings from cfg over the defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	o := DefaultOptions()
	if cfg.ProgressInterval > 0 {
		o.ProgressInterval = cfg.ProgressInterval
	}
	if cfg.ProgressStep > 0 {
		o.ProgressStep = cfg.ProgressStep
	}
	if cfg.ProgressCeiling > 0 && cfg.ProgressCeiling < 100 {
		o.ProgressCeiling = cfg.ProgressCeiling
	}
	if cfg.RevealDelay >= 0 {
		o.RevealDelay = cfg.RevealDelay
	}
	return o
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = d.ProgressInterval
	}
	if o.ProgressStep <= 0 {
		o.ProgressStep = d.ProgressStep
	}
	if o.ProgressCeiling <= 0 || o.ProgressCeiling >= 100 {
		o.ProgressCeiling = d.ProgressCeiling
	}
	if o.RevealDelay < 0 {
		o.RevealDelay = 0
	}
	if o.Rand == nil {
		o.Rand = d.Rand
	}
	return o
}
