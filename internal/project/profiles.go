package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// ProfilesFile is the custom profile store kept beside a config file.
const ProfilesFile = "profiles.json"

// ProfileStore holds the custom laser profiles that belong to one config
// file. Built-in profiles are never written to it.
type ProfileStore struct {
	Path string
}

// ProfileStoreFor returns the store next to configPath, or next to the
// default config when configPath is empty.
func ProfileStoreFor(configPath string) ProfileStore {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	return ProfileStore{Path: filepath.Join(filepath.Dir(configPath), ProfilesFile)}
}

// Load returns the stored profiles. A missing store is empty.
func (s ProfileStore) Load() ([]model.GCodeProfile, error) {
	var profiles []model.GCodeProfile
	found, err := readJSON(s.Path, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles %s: %w", s.Path, err)
	}
	if !found || profiles == nil {
		return []model.GCodeProfile{}, nil
	}
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// Save replaces the stored profiles.
func (s ProfileStore) Save(profiles []model.GCodeProfile) error {
	if profiles == nil {
		profiles = []model.GCodeProfile{}
	}
	return writeJSON(s.Path, profiles)
}

// Put validates p and stores it in front of the others, replacing any
// custom profile of the same name. It returns the new store contents.
func (s ProfileStore) Put(p model.GCodeProfile) ([]model.GCodeProfile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, builtIn := range model.GCodeProfiles {
		if builtIn.Name == p.Name {
			return nil, fmt.Errorf("%w: %q would shadow a built-in profile", model.ErrInvalidProfile, p.Name)
		}
	}

	existing, err := s.Load()
	if err != nil {
		return nil, err
	}
	p.IsBuiltIn = false
	profiles := []model.GCodeProfile{p}
	for _, e := range existing {
		if e.Name != p.Name {
			profiles = append(profiles, e)
		}
	}
	if err := s.Save(profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ExportProfile writes one profile to a standalone file for sharing.
func ExportProfile(path string, profile model.GCodeProfile) error {
	profile.IsBuiltIn = false
	return writeJSON(path, profile)
}

// ImportProfile reads a shared profile and checks that it can drive a laser.
func ImportProfile(path string) (model.GCodeProfile, error) {
	var profile model.GCodeProfile
	found, err := readJSON(path, &profile)
	if err != nil {
		return model.GCodeProfile{}, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if !found {
		return model.GCodeProfile{}, fmt.Errorf("profile %s: %w", path, os.ErrNotExist)
	}

	profile.IsBuiltIn = false
	if err := profile.Validate(); err != nil {
		return model.GCodeProfile{}, fmt.Errorf("import %s: %w", path, err)
	}
	return profile, nil
}
