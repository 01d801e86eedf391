package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skydz/manifest/internal/dropzone"
)

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
skydivers:
  - firstName: Anna
    lastName: Ti
    weight: 70
    licenseLevel: D
    role: Instructor
    isTandemInstructor: true
  - firstName: Cora
    lastName: Fun
    weight: 62
    role: FunJumper
passengers:
  - firstName: Pia
    lastName: One
    weight: 80
parachutes:
  - model: Sigma
    size: 370
    type: Tandem
  - model: Sabre
    size: 170
    type: Sport
    customName: Little Blue
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	people, chutes, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}

	if len(people.Skydivers) != 2 {
		t.Fatalf("skydivers = %d, want 2", len(people.Skydivers))
	}
	first := people.Skydivers[0]
	if first.ID != 1 || first.Kind != dropzone.KindSkydiver || !first.IsTandemInstructor {
		t.Errorf("skydiver[0] = %+v", first)
	}
	if people.Skydivers[1].ID != 2 {
		t.Errorf("skydiver[1].ID = %d, want 2", people.Skydivers[1].ID)
	}
	if len(people.Passengers) != 1 || people.Passengers[0].Kind != dropzone.KindPassenger {
		t.Errorf("passengers = %+v", people.Passengers)
	}
	if len(chutes) != 2 || chutes[1].CustomName != "Little Blue" {
		t.Errorf("parachutes = %+v", chutes)
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	people, chutes, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSeed() error = %v for a missing file", err)
	}
	if len(people.Skydivers) != 0 || len(people.Passengers) != 0 || len(chutes) != 0 {
		t.Error("missing seed yielded non-empty collections")
	}
}

func TestLoadSeedMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("skydivers: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadSeed(path); err == nil {
		t.Error("LoadSeed() = nil error for malformed YAML")
	}
}
