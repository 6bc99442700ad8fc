package preset_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DaanHessen/envdeck/internal/preset"
)

func tempStore(t *testing.T) *preset.Store {
	t.Helper()
	return preset.NewStore(filepath.Join(t.TempDir(), "presets.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := tempStore(t)
	c, err := s.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(c) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(c))
	}
}

func TestRoundTrip(t *testing.T) {
	s := tempStore(t)
	c := preset.Collection{
		{Name: "prod", AuthToken: "t1", BaseURL: "https://api.example.com", Model: "m1", SmallFastModel: "m1-fast"},
		{Name: "local", BaseURL: "http://localhost:8080"},
	}
	if err := s.Save(c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Save(first); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second, err := s.Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !reflect.DeepEqual(first, c) || !reflect.DeepEqual(second, c) {
		t.Fatalf("round trip lost data: first=%+v second=%+v", first, second)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.json")
	content := `[{"name":"prod","auth_token":"t1","color":"blue","pinned":true}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := preset.NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c) != 1 || c[0].Name != "prod" || c[0].AuthToken != "t1" {
		t.Fatalf("unexpected collection: %+v", c)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"name":"prod"`},
		{"not an array", `{"name":"prod"}`},
		{"missing name", `[{"auth_token":"t1"}]`},
		{"empty name", `[{"name":""}]`},
		{"duplicate names", `[{"name":"prod"},{"name":"prod"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := preset.NewStore(path).Load()
			if !errors.Is(err, preset.ErrCorruptStore) {
				t.Fatalf("expected ErrCorruptStore, got %v", err)
			}
			// Load must never touch a corrupt file.
			data, err := os.ReadFile(path)
			if err != nil || string(data) != tc.content {
				t.Fatalf("corrupt file was modified: %q", data)
			}
		})
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	s := tempStore(t)
	c, err := s.Add(preset.Collection{}, preset.Record{Name: "prod", AuthToken: "t1"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.Add(c, preset.Record{Name: "prod", AuthToken: "t2"})
	if !errors.Is(err, preset.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("collection changed on rejected add: %+v", got)
	}
	// Names are case-sensitive, so "Prod" is a different preset.
	if _, err := s.Add(c, preset.Record{Name: "Prod"}); err != nil {
		t.Fatalf("case-differing name rejected: %v", err)
	}
}

func TestMutationsRejectEmptyName(t *testing.T) {
	s := tempStore(t)
	c := preset.Collection{{Name: "prod"}}
	if err := s.Save(c); err != nil {
		t.Fatal(err)
	}

	got, err := s.Add(c, preset.Record{AuthToken: "t1"})
	if !errors.Is(err, preset.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName from Add, got %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("collection changed on rejected add: %+v", got)
	}

	got, err = s.Update(c, "prod", preset.Record{Name: "", Model: "m"})
	if !errors.Is(err, preset.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName from Update, got %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("collection changed on rejected update: %+v", got)
	}

	// The file on disk must still load cleanly: the store never writes a
	// collection its own Load rejects.
	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load after rejected mutations: %v", err)
	}
	if !reflect.DeepEqual(reloaded, c) {
		t.Fatalf("backing file changed: %+v", reloaded)
	}
}

func TestSaveRejectsUnloadableCollections(t *testing.T) {
	s := tempStore(t)
	if err := s.Save(preset.Collection{{Name: ""}}); !errors.Is(err, preset.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if err := s.Save(preset.Collection{{Name: "a"}, {Name: "a"}}); !errors.Is(err, preset.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("rejected Save still wrote the backing file")
	}
}

func TestAddRemoveFindScenario(t *testing.T) {
	s := tempStore(t)
	rec := preset.Record{
		Name:           "prod",
		AuthToken:      "t1",
		BaseURL:        "https://api.example.com",
		Model:          "m1",
		SmallFastModel: "m1-fast",
	}
	c, err := s.Add(preset.Collection{}, rec)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	found, ok := c.Find("prod")
	if !ok || found != rec {
		t.Fatalf("Find returned %+v, ok=%v", found, ok)
	}
	c, err = s.Remove(c, "prod")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := c.Find("prod"); ok {
		t.Fatal("preset still found after Remove")
	}
	if _, err := s.Remove(c, "prod"); !errors.Is(err, preset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRename(t *testing.T) {
	s := tempStore(t)
	c := preset.Collection{{Name: "a"}, {Name: "b"}}
	if err := s.Save(c); err != nil {
		t.Fatal(err)
	}

	// Rename onto an existing name is rejected.
	got, err := s.Update(c, "a", preset.Record{Name: "b"})
	if !errors.Is(err, preset.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("collection changed on rejected rename: %+v", got)
	}

	// Legitimate rename keeps position and persists.
	c, err = s.Update(c, "a", preset.Record{Name: "c", Model: "m"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c[0].Name != "c" || c[0].Model != "m" {
		t.Fatalf("update not applied in place: %+v", c)
	}
	reloaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(reloaded, c) {
		t.Fatalf("update not persisted: %+v", reloaded)
	}

	if _, err := s.Update(c, "missing", preset.Record{Name: "missing"}); !errors.Is(err, preset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteThroughVisibleAfterReload(t *testing.T) {
	s := tempStore(t)
	c, err := s.Add(preset.Collection{}, preset.Record{Name: "prod"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = s.Add(c, preset.Record{Name: "staging"}); err != nil {
		t.Fatal(err)
	}
	// A second store over the same file sees both mutations.
	reloaded, err := preset.NewStore(s.Path()).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != 2 || reloaded[0].Name != "prod" || reloaded[1].Name != "staging" {
		t.Fatalf("unexpected reloaded collection: %+v", reloaded)
	}
}

func TestMutationRolledBackOnWriteFailure(t *testing.T) {
	// Point the store at a path whose parent is a file, so every Save fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := preset.NewStore(filepath.Join(blocker, "presets.json"))

	c := preset.Collection{{Name: "prod"}}
	got, err := s.Add(c, preset.Record{Name: "staging"})
	if !errors.Is(err, preset.ErrWriteStore) {
		t.Fatalf("expected ErrWriteStore, got %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("failed add leaked into collection: %+v", got)
	}
	got, err = s.Remove(c, "prod")
	if !errors.Is(err, preset.ErrWriteStore) {
		t.Fatalf("expected ErrWriteStore, got %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("failed remove leaked into collection: %+v", got)
	}
}
