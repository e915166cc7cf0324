// Package dockconfig holds plain configuration data and validation for
// the CLI driver, mirroring the mapstructure-tagged struct layout of
// turtacn-KeyIP-Intelligence/internal/config/config.go. No core package
// imports this one (SPEC_FULL §4.11) — only cmd/vedidock.
package dockconfig

import "fmt"

// BoxConfig is the rectangular search region (§4.2, §6).
type BoxConfig struct {
	CenterX     float64 `mapstructure:"center_x"`
	CenterY     float64 `mapstructure:"center_y"`
	CenterZ     float64 `mapstructure:"center_z"`
	SpanX       float64 `mapstructure:"span_x"`
	SpanY       float64 `mapstructure:"span_y"`
	SpanZ       float64 `mapstructure:"span_z"`
	Granularity float64 `mapstructure:"granularity"`
}

// SearchConfig holds the Monte Carlo / BFGS tunables a user may override;
// defaults match §4.6's fixed constants.
type SearchConfig struct {
	NumMCIterations int     `mapstructure:"num_mc_iterations"`
	NumAlphas       int     `mapstructure:"num_alphas"`
	ShrinkFactor    float64 `mapstructure:"shrink_factor"`
	ArmijoC1        float64 `mapstructure:"armijo_c1"`
	CurvatureC2     float64 `mapstructure:"curvature_c2"`
	NumSeeds        int     `mapstructure:"num_seeds"`
}

// PoolConfig configures the per-ligand result container (§4.7).
type PoolConfig struct {
	Capacity         int     `mapstructure:"capacity"`
	RMSDSqrThreshold float64 `mapstructure:"rmsd_sqr_threshold"`
}

// Config is the CLI driver's full configuration tree, loaded from a
// YAML/JSON file via viper with flag overrides.
type Config struct {
	Receptor   string       `mapstructure:"receptor"`
	Ligands    []string     `mapstructure:"ligands"`
	OutDir     string       `mapstructure:"out_dir"`
	Workers    int          `mapstructure:"workers"`
	MetricsAddr string      `mapstructure:"metrics_addr"`
	Box        BoxConfig    `mapstructure:"box"`
	Search     SearchConfig `mapstructure:"search"`
	Pool       PoolConfig   `mapstructure:"pool"`
}

// Default returns a Config with every tunable at its spec default.
func Default() Config {
	return Config{
		OutDir:  "results",
		Workers: 0, // 0 means runtime.NumCPU()
		Box: BoxConfig{
			Granularity: 0.15625,
		},
		Search: SearchConfig{
			NumMCIterations: 50,
			NumAlphas:       5,
			ShrinkFactor:    0.1,
			ArmijoC1:        1e-4,
			CurvatureC2:     0.9,
			NumSeeds:        8,
		},
		Pool: PoolConfig{
			Capacity:         20,
			RMSDSqrThreshold: 4.0,
		},
	}
}

// Validate rejects a config that would produce an ill-formed box or an
// empty job before any work is dispatched.
func (c Config) Validate() error {
	if c.Receptor == "" {
		return fmt.Errorf("dockconfig: receptor path is required")
	}
	if len(c.Ligands) == 0 {
		return fmt.Errorf("dockconfig: at least one ligand path is required")
	}
	if c.Box.SpanX <= 0 || c.Box.SpanY <= 0 || c.Box.SpanZ <= 0 {
		return fmt.Errorf("dockconfig: box span must be positive on every axis")
	}
	if c.Search.NumSeeds <= 0 {
		return fmt.Errorf("dockconfig: num_seeds must be positive")
	}
	return nil
}
