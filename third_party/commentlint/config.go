package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// golangciConfig is the subset of .golangci.yml the linter honours.
type golangciConfig struct {
	Issues struct {
		MaxIssuesPerLinter int      `yaml:"max-issues-per-linter"`
		ExcludeDirs        []string `yaml:"exclude-dirs"`
		ExcludeFiles       []string `yaml:"exclude-files"`
	} `yaml:"issues"`
}

// filter decides which files are skipped.
type filter struct {
	dirs  []string
	files []*regexp.Regexp
}

// loadConfig reads the golangci-lint YAML; a missing file yields defaults.
func loadConfig(path string) (golangciConfig, error) {
	var cfg golangciConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// newFilter compiles the exclusions of cfg.
func newFilter(cfg golangciConfig) (filter, error) {
	var f filter
	for _, d := range cfg.Issues.ExcludeDirs {
		d = strings.TrimSpace(strings.TrimPrefix(d, "./"))
		if d != "" {
			f.dirs = append(f.dirs, filepath.ToSlash(d))
		}
	}
	for _, p := range cfg.Issues.ExcludeFiles {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rx, err := regexp.Compile(p)
		if err != nil {
			return filter{}, fmt.Errorf("invalid exclude regex %q: %w", p, err)
		}
		f.files = append(f.files, rx)
	}
	return f, nil
}

// excluded reports whether a repo-relative slash path is skipped.
func (f filter) excluded(rel string) bool {
	for _, d := range f.dirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	for _, rx := range f.files {
		if rx.MatchString(rel) {
			return true
		}
	}
	return false
}
