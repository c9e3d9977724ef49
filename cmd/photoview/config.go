package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from PHOTOVIEW_* environment variables.
type Config struct {
	Width        int           `envconfig:"WIDTH" default:"800"`
	Height       int           `envconfig:"HEIGHT" default:"600"`
	Title        string        `envconfig:"TITLE" default:"photoview"`
	ScaleType    string        `envconfig:"SCALE_TYPE" default:"fit_center"`
	MinScale     float64       `envconfig:"MIN_SCALE" default:"1"`
	MidScale     float64       `envconfig:"MID_SCALE" default:"1.75"`
	MaxScale     float64       `envconfig:"MAX_SCALE" default:"3"`
	ZoomDuration time.Duration `envconfig:"ZOOM_DURATION" default:"200ms"`
	MaxTexture   int           `envconfig:"MAX_TEXTURE" default:"4096"`
	Script       string        `envconfig:"SCRIPT"`
	Debug        bool          `envconfig:"DEBUG"`
}

// Load reads the configuration from the environment, filling unset
// variables with their defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("photoview", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
