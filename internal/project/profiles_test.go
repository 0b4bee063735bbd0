package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

func testProfile(name string) model.GCodeProfile {
	return model.GCodeProfile{
		Name:          name,
		Description:   "Diode laser on a Grbl board",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M4 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 2,
	}
}

func TestProfileStoreFor(t *testing.T) {
	store := ProfileStoreFor(filepath.Join("a", "b", "config.json"))
	if want := filepath.Join("a", "b", ProfilesFile); store.Path != want {
		t.Errorf("expected %s, got %s", want, store.Path)
	}
	if got := ProfileStoreFor("").Path; got != filepath.Join(DefaultConfigDir(), ProfilesFile) {
		t.Errorf("expected default store, got %s", got)
	}
}

func TestProfileStoreSaveAndLoad(t *testing.T) {
	store := ProfileStoreFor(filepath.Join(t.TempDir(), "config.json"))

	profiles := []model.GCodeProfile{testProfile("Diode"), testProfile("CO2")}
	profiles[1].LaserOn = "M3 S%d"

	if err := store.Save(profiles); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[1].Name != "CO2" || loaded[1].LaserOn != "M3 S%d" {
		t.Errorf("unexpected second profile %+v", loaded[1])
	}
	for _, p := range loaded {
		if p.IsBuiltIn {
			t.Errorf("profile %s should not be marked built-in", p.Name)
		}
	}
}

func TestProfileStoreLoadMissingFile(t *testing.T) {
	profiles, err := ProfileStore{Path: filepath.Join(t.TempDir(), "none.json")}.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", profiles)
	}
}

func TestProfileStoreLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProfilesFile)
	if err := os.WriteFile(path, []byte("[{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := (ProfileStore{Path: path}).Load(); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestProfileStorePutReplacesSameName(t *testing.T) {
	store := ProfileStoreFor(filepath.Join(t.TempDir(), "config.json"))

	if _, err := store.Put(testProfile("Diode")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(testProfile("CO2")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	updated := testProfile("Diode")
	updated.Description = "20W diode"
	profiles, err := store.Put(updated)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if len(profiles) != 2 || profiles[0].Description != "20W diode" || profiles[1].Name != "CO2" {
		t.Errorf("unexpected profiles %+v", profiles)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Description != "20W diode" {
		t.Errorf("store not updated: %+v", loaded)
	}
}

func TestProfileStorePutRejects(t *testing.T) {
	store := ProfileStoreFor(filepath.Join(t.TempDir(), "config.json"))

	noPower := testProfile("Diode")
	noPower.LaserOn = "M3"
	if _, err := store.Put(noPower); !errors.Is(err, model.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for a laser on command without power, got %v", err)
	}

	if _, err := store.Put(testProfile("Grbl")); !errors.Is(err, model.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for a built-in name, got %v", err)
	}

	if _, err := os.Stat(store.Path); !os.IsNotExist(err) {
		t.Errorf("rejected profiles must not create the store, stat err = %v", err)
	}
}

func TestExportAndImportProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diode.json")

	if err := ExportProfile(path, testProfile("Diode")); err != nil {
		t.Fatalf("ExportProfile: %v", err)
	}
	p, err := ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile: %v", err)
	}
	if p.Name != "Diode" || p.IsBuiltIn {
		t.Errorf("unexpected imported profile %+v", p)
	}
	if p.DecimalPlaces != 2 {
		t.Errorf("expected 2 decimal places, got %d", p.DecimalPlaces)
	}
}

func TestImportProfileValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		json string
	}{
		{"no name", `{"laser_on":"M3 S%d","laser_off":"M5"}`},
		{"no laser commands", `{"name":"Spindle"}`},
		{"no power placeholder", `{"name":"Diode","laser_on":"M3","laser_off":"M5"}`},
		{"two placeholders", `{"name":"Diode","laser_on":"M3 S%d P%d","laser_off":"M5"}`},
		{"other verb", `{"name":"Diode","laser_on":"M3 S%s","laser_off":"M5"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "profile.json")
			if err := os.WriteFile(path, []byte(tt.json), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := ImportProfile(path); !errors.Is(err, model.ErrInvalidProfile) {
				t.Errorf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}

	if _, err := ImportProfile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist for a missing file, got %v", err)
	}
}
