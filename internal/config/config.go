// Package config loads the lito CLI's YAML profile: which architecture
// to decode as, how to present output, and whether to stop on errors.
// The shape of the loader - read file, unmarshal, validate required
// fields - mirrors the profile loader the CLI commands already lean on
// for structured input.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Arch names one of the architectures lito can decode.
type Arch string

const (
	ArchX86    Arch = "x86"
	ArchX64    Arch = "x64"
	ArchARM    Arch = "arm"
	ArchThumb  Arch = "thumb"
	ArchThumb2 Arch = "thumb2"
)

// Profile is a reusable decode configuration: target architecture,
// whether to print each row's raw bytes and branch target and whether to
// color the error cell, and whether to stop after the first instruction
// that carries any error flag or keep decoding past it.
type Profile struct {
	Metadata struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description,omitempty"`
	} `yaml:"metadata"`

	Arch Arch `yaml:"arch"`

	Output struct {
		ShowBytes bool `yaml:"show_bytes"`
		ShowRel   bool `yaml:"show_rel"`
		Color     bool `yaml:"color"`
	} `yaml:"output"`

	StopOnError bool `yaml:"stop_on_error"`
}

// DefaultProfile returns the profile used when no --profile flag is given.
func DefaultProfile() *Profile {
	p := &Profile{Arch: ArchX64}
	p.Metadata.Name = "default"
	p.Output.ShowBytes = true
	p.Output.ShowRel = true
	p.Output.Color = true
	return p
}

// LoadProfile loads a decode profile from a YAML file at path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("invalid profile format: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Validate checks that the profile names a supported architecture.
func (p *Profile) Validate() error {
	switch p.Arch {
	case ArchX86, ArchX64, ArchARM, ArchThumb, ArchThumb2:
		return nil
	default:
		return fmt.Errorf("profile has unsupported arch: %q", p.Arch)
	}
}
