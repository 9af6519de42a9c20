package fol

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EngineConfig tunes the clause store and engines: whether store inserts
// perform forward subsumption, how many workers the resolution engine's
// worker pool runs, how large the CNF normalizer's cache is, and an
// optional cap on resolution steps. Following the teacher pack's
// korel/config convention: a plain struct with yaml tags, loaded with
// os.ReadFile + yaml.Unmarshal.
type EngineConfig struct {
	// SubsumeOnAdd, if true, makes a clause store's Add reject a new clause
	// that an existing one already subsumes. Default false: spec.md §9's
	// Open Question is resolved here in favor of cheap inserts, since
	// forward subsumption costs O(n) per insert against the whole store and
	// the backward-chaining engine's tell path needs insert to stay cheap.
	SubsumeOnAdd bool `yaml:"subsumeOnAdd"`

	// MaxWorkers sizes the resolution engine's worker pool (resolution.go).
	MaxWorkers int `yaml:"maxWorkers"`

	// CNFCacheSize bounds the Normalize memoization cache (cnf.go). Zero
	// disables caching (KnowledgeBase.Tell/Ask then call Normalize directly).
	CNFCacheSize int `yaml:"cnfCacheSize"`

	// ResolutionLimit bounds the resolution engine's search: the count of
	// candidate resolvents considered is checked against it before each new
	// given clause is expanded, and once reached the engine stops with
	// OutcomeBudgetExhausted (reported by KnowledgeBase as ResultUnknown).
	// Zero means unbounded (the caller relies on context cancellation instead).
	ResolutionLimit int `yaml:"resolutionLimit"`
}

// DefaultEngineConfig returns the engine's out-of-the-box defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SubsumeOnAdd:    false,
		MaxWorkers:      runtime.NumCPU(),
		CNFCacheSize:    256,
		ResolutionLimit: 0,
	}
}

// LoadEngineConfig reads and unmarshals a YAML file into an EngineConfig,
// starting from DefaultEngineConfig so a caller's file only needs to
// mention the fields it wants to override.
func LoadEngineConfig(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("fol: read engine config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("fol: parse engine config %q: %w", path, err)
	}
	return cfg, nil
}
