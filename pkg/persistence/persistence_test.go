package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type blob struct {
	Address string `json:"address"`
}

func TestSaveLoad(t *testing.T) {
	svc := NewJSONFileService(t.TempDir())
	store := svc.NewStore("account", "fuel", "snapshot")

	want := blob{Address: "0xaddr"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var got blob
	if err := store.Load(&got); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadMissingKey(t *testing.T) {
	svc := NewJSONFileService(t.TempDir())
	store := svc.NewStore("account", "fuel", "snapshot")

	var got blob
	if err := store.Load(&got); !errors.Is(err, ErrNotExists) {
		t.Errorf("Load() error = %v, want ErrNotExists", err)
	}
}

func TestKeySanitization(t *testing.T) {
	dir := t.TempDir()
	svc := NewJSONFileService(dir)
	store := svc.NewStore("account", "../../escape", "snap shot")

	if err := store.Save(blob{}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files, want 1 inside the base dir", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".json" {
		t.Errorf("file = %s, want a .json file", entries[0].Name())
	}
}

func TestSaveOverwrites(t *testing.T) {
	svc := NewJSONFileService(t.TempDir())
	store := svc.NewStore("account", "fuel", "snapshot")

	if err := store.Save(blob{Address: "0xold"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(blob{Address: "0xnew"}); err != nil {
		t.Fatal(err)
	}

	var got blob
	if err := store.Load(&got); err != nil {
		t.Fatal(err)
	}
	if got.Address != "0xnew" {
		t.Errorf("Address = %s, want 0xnew", got.Address)
	}
}
