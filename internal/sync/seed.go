package sync

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skydz/manifest/internal/dropzone"
)

// seedDoc is the YAML roster used to bootstrap offline mode when no cached
// snapshot exists.
type seedDoc struct {
	Skydivers []struct {
		FirstName          string `yaml:"firstName"`
		LastName           string `yaml:"lastName"`
		Weight             int    `yaml:"weight"`
		LicenseLevel       string `yaml:"licenseLevel"`
		Role               string `yaml:"role"`
		IsAFFInstructor    bool   `yaml:"isAffInstructor"`
		IsTandemInstructor bool   `yaml:"isTandemInstructor"`
	} `yaml:"skydivers"`
	Passengers []struct {
		FirstName string `yaml:"firstName"`
		LastName  string `yaml:"lastName"`
		Weight    int    `yaml:"weight"`
	} `yaml:"passengers"`
	Parachutes []struct {
		Model      string `yaml:"model"`
		Size       int    `yaml:"size"`
		Type       string `yaml:"type"`
		CustomName string `yaml:"customName"`
	} `yaml:"parachutes"`
}

// LoadSeed reads a YAML roster and returns domain collections with ids
// allocated from 1. A missing file is not an error; it yields empty
// collections.
func LoadSeed(path string) (dropzone.People, []dropzone.Parachute, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dropzone.People{}, nil, nil
		}
		return dropzone.People{}, nil, fmt.Errorf("read seed: %w", err)
	}

	var doc seedDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return dropzone.People{}, nil, fmt.Errorf("parse seed: %w", err)
	}

	var people dropzone.People
	for i, s := range doc.Skydivers {
		people.Skydivers = append(people.Skydivers, dropzone.Person{
			ID:                 int64(i + 1),
			Kind:               dropzone.KindSkydiver,
			FirstName:          s.FirstName,
			LastName:           s.LastName,
			Weight:             s.Weight,
			LicenseLevel:       s.LicenseLevel,
			Role:               dropzone.Role(s.Role),
			IsAFFInstructor:    s.IsAFFInstructor,
			IsTandemInstructor: s.IsTandemInstructor,
		})
	}
	for i, p := range doc.Passengers {
		people.Passengers = append(people.Passengers, dropzone.Person{
			ID:        int64(i + 1),
			Kind:      dropzone.KindPassenger,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Weight:    p.Weight,
		})
	}

	var chutes []dropzone.Parachute
	for i, c := range doc.Parachutes {
		chutes = append(chutes, dropzone.Parachute{
			ID:         int64(i + 1),
			Model:      c.Model,
			Size:       c.Size,
			Type:       c.Type,
			CustomName: c.CustomName,
		})
	}

	return people, chutes, nil
}
