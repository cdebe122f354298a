package profile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yllada/sshfs-manager/common"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "connections.toml"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	profiles, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no profiles, got %v", profiles)
	}
	if common.FileExists(s.Path()) {
		t.Fatal("Load should not create the backing file")
	}
}

func TestLoadMalformedFileReturnsEmptyAndParseError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[[connections]\nhost = 'db1'\n"},
		{"wrong type", "[[connections]]\nhost = 42\n"},
		{"missing host", "[[connections]]\nuser = 'admin'\n"},
		{"blank host", "[[connections]]\nhost = '   '\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if _, err := s.Add("existing", "", ""); err != nil {
				t.Fatalf("Add: %v", err)
			}
			writeFile(t, s.Path(), tt.content)

			profiles, err := s.Load()
			if err == nil {
				t.Fatal("expected a parse error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Path != s.Path() {
				t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, s.Path())
			}
			if len(profiles) != 0 || s.Len() != 0 {
				t.Fatalf("expected empty list after parse failure, got %v", profiles)
			}
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s.Path(), "[[connections]]\nhost = 'db1'\nuser = = 'admin'\n")

	_, err := s.Load()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Line != 3 {
		t.Errorf("Line = %d, want 3", parseErr.Line)
	}
	if !strings.Contains(parseErr.Error(), "line 3") {
		t.Errorf("Error() = %q, want line number", parseErr.Error())
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s.Path(), "[[connections]]\nhost = 'web1'\n\n[[connections]]\nhost = 'web2'\nuser = ''\nremote_dir = '/srv/'\n")

	profiles, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].User != "root" || profiles[0].RemoteDir != "/root/" {
		t.Errorf("profiles[0] = %+v, want defaults", profiles[0])
	}
	if profiles[1].User != "root" || profiles[1].RemoteDir != "/srv/" {
		t.Errorf("profiles[1] = %+v", profiles[1])
	}
	if profiles[0].ID == "" || profiles[0].ID == profiles[1].ID {
		t.Errorf("expected distinct IDs, got %q and %q", profiles[0].ID, profiles[1].ID)
	}
}

func TestAddAppliesDefaultsAndPersists(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("db1", "", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added == nil {
		t.Fatal("Add returned nil profile")
	}
	if added.Host != "db1" || added.User != "root" || added.RemoteDir != "/root/" {
		t.Fatalf("Add = %+v, want {db1 root /root/}", added)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"[[connections]]", "host = 'db1'", "user = 'root'", "remote_dir = '/root/'"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("expected %q in backing file, got:\n%s", want, data)
		}
	}
	if bytes.Contains(data, []byte(added.ID)) {
		t.Errorf("ID should not be persisted, got:\n%s", data)
	}
}

func TestAddTrimsInput(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("  db1 ", " admin ", "  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.Host != "db1" || added.User != "admin" || added.RemoteDir != "/root/" {
		t.Fatalf("Add = %+v", added)
	}
}

func TestAddBlankHostIsDiscarded(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("   ", "admin", "/srv/")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added != nil {
		t.Fatalf("expected nil profile, got %+v", added)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
	if common.FileExists(s.Path()) {
		t.Fatal("blank add should not write the backing file")
	}
}

func TestAddAllowsDuplicateHosts(t *testing.T) {
	s := newTestStore(t)

	first, _ := s.Add("db1", "", "")
	second, _ := s.Add("db1", "", "")
	if s.Len() != 2 {
		t.Fatalf("expected 2 profiles, got %d", s.Len())
	}
	if first.ID == second.ID {
		t.Fatal("duplicate hosts should get distinct IDs")
	}
}

func TestOrderPreservedAcrossSaveLoad(t *testing.T) {
	s := newTestStore(t)
	hosts := []string{"charlie", "alpha", "bravo", "alpha"}
	for _, h := range hosts {
		if _, err := s.Add(h, "", ""); err != nil {
			t.Fatalf("Add(%s): %v", h, err)
		}
	}

	reloaded, err := NewStore(s.Path()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded) != len(hosts) {
		t.Fatalf("expected %d profiles, got %d", len(hosts), len(reloaded))
	}
	for i, h := range hosts {
		if reloaded[i].Host != h {
			t.Errorf("reloaded[%d].Host = %q, want %q", i, reloaded[i].Host, h)
		}
	}
}

func TestSaveOfLoadIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	s.Add("db1", "", "")
	s.Add("web.example.com", "deploy", "/var/www/")
	s.Add("it's-quoted", "o'brien", "/home/o'brien/")

	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	fresh := NewStore(s.Path())
	if _, err := fresh.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := fresh.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("save(load()) changed the file:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestEditUpdatesInPlace(t *testing.T) {
	s := newTestStore(t)
	first, _ := s.Add("db1", "", "")
	s.Add("db2", "", "")

	ok, err := s.Edit(first.ID, "db1.internal", "admin", "")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !ok {
		t.Fatal("Edit should confirm a non-blank host")
	}

	reloaded, err := NewStore(s.Path()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded[0].Host != "db1.internal" || reloaded[0].User != "admin" || reloaded[0].RemoteDir != "/root/" {
		t.Fatalf("reloaded[0] = %+v", reloaded[0])
	}
	if reloaded[1].Host != "db2" {
		t.Fatalf("edit should not move entries, got %+v", reloaded)
	}

	got, err := s.Get(first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("Edit should keep the ID, got %q want %q", got.ID, first.ID)
	}
}

func TestEditBlankHostLeavesProfileUnchanged(t *testing.T) {
	s := newTestStore(t)
	added, _ := s.Add("db1", "admin", "/srv/")
	before, _ := os.ReadFile(s.Path())

	ok, err := s.Edit(added.ID, "  ", "other", "/tmp/")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if ok {
		t.Fatal("Edit with blank host should not be confirmed")
	}

	got, _ := s.Get(added.ID)
	if got.Host != "db1" || got.User != "admin" || got.RemoteDir != "/srv/" {
		t.Fatalf("profile changed: %+v", got)
	}
	after, _ := os.ReadFile(s.Path())
	if !bytes.Equal(before, after) {
		t.Fatal("blank edit should not rewrite the backing file")
	}
}

func TestEditUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Edit("missing", "db1", "", "")
	if !errors.Is(err, common.ErrProfileNotFound) {
		t.Fatalf("Edit error = %v, want ErrProfileNotFound", err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := newTestStore(t)
	s.Add("db1", "", "")
	target, _ := s.Add("db1", "", "")
	s.Add("db2", "", "")

	if err := s.Delete(target.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	reloaded, err := NewStore(s.Path()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded) != 2 {
		t.Fatalf("expected 2 profiles after delete, got %d", len(reloaded))
	}
	if reloaded[0].Host != "db1" || reloaded[1].Host != "db2" {
		t.Fatalf("unexpected profiles after delete: %+v", reloaded)
	}
	if _, err := s.Get(target.ID); !errors.Is(err, common.ErrProfileNotFound) {
		t.Fatalf("deleted profile still reachable: %v", err)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	s := newTestStore(t)
	s.Add("db1", "", "")

	if err := s.Delete("missing"); !errors.Is(err, common.ErrProfileNotFound) {
		t.Fatalf("Delete error = %v, want ErrProfileNotFound", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 profile, got %d", s.Len())
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	s := newTestStore(t)
	// A directory at the backing path makes the write fail for any user.
	if err := os.Mkdir(s.Path(), 0700); err != nil {
		t.Fatal(err)
	}

	added, err := s.Add("db1", "", "")
	if err == nil {
		t.Fatal("expected save error")
	}
	if !errors.Is(err, common.ErrConfigSave) {
		t.Fatalf("Add error = %v, want ErrConfigSave", err)
	}
	if added == nil || s.Len() != 1 {
		t.Fatal("in-memory list should keep the attempted addition")
	}

	if err := os.Remove(s.Path()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("retry Save: %v", err)
	}
	reloaded, err := NewStore(s.Path()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].Host != "db1" {
		t.Fatalf("retry did not persist: %+v", reloaded)
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "connections.toml")
	s := NewStore(path)

	if _, err := s.Add("db1", "", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !common.FileExists(path) {
		t.Fatal("expected backing file to be created")
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	s := newTestStore(t)
	s.Add("db1", "", "")

	snapshot := s.List()
	snapshot[0].Host = "mutated"

	got := s.List()
	if got[0].Host != "db1" {
		t.Fatalf("List should return a copy, store now has %q", got[0].Host)
	}
}

func TestFind(t *testing.T) {
	s := newTestStore(t)
	first, _ := s.Add("db1", "", "")
	second, _ := s.Add("Web.Example.com", "", "")
	s.Add("db1", "admin", "")

	tests := []struct {
		name   string
		ref    string
		wantID string
	}{
		{"index", "2", second.ID},
		{"host first match", "db1", first.ID},
		{"host case-insensitive", "web.example.COM", second.ID},
		{"surrounding space", " 1 ", first.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Find(tt.ref)
			if err != nil {
				t.Fatalf("Find(%q): %v", tt.ref, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("Find(%q) = %s, want %s", tt.ref, got.ID, tt.wantID)
			}
		})
	}

	for _, ref := range []string{"", "0", "4", "nope", first.ID, second.ID[:8]} {
		if _, err := s.Find(ref); !errors.Is(err, common.ErrProfileNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrProfileNotFound", ref, err)
		}
	}
}

func TestFindHostBeatsPosition(t *testing.T) {
	s := newTestStore(t)
	s.Add("db1", "", "")
	numeric, _ := s.Add("2", "", "")
	s.Add("db3", "", "")

	got, err := s.Find("2")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.ID != numeric.ID {
		t.Errorf("Find(\"2\") = %+v, want the host named 2", got)
	}
}

func TestFindReferencesSurviveReload(t *testing.T) {
	s := newTestStore(t)
	s.Add("db1", "", "")
	s.Add("web", "deploy", "")

	// Each CLI command runs in a fresh process with a freshly loaded store.
	for _, tt := range []struct{ ref, wantHost string }{
		{"2", "web"},
		{"WEB", "web"},
		{"1", "db1"},
	} {
		reopened, err := Open(s.Path())
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		got, err := reopened.Find(tt.ref)
		if err != nil {
			t.Fatalf("Find(%q) after reload: %v", tt.ref, err)
		}
		if got.Host != tt.wantHost {
			t.Errorf("Find(%q) = %s, want %s", tt.ref, got.Host, tt.wantHost)
		}
	}
}

func TestOpenReturnsStoreOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connections.toml")
	writeFile(t, path, "not toml at all = = =")

	s, err := Open(path)
	if s == nil {
		t.Fatal("Open should return a usable store")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Open error = %v, want *ParseError", err)
	}

	if _, err := s.Add("db1", "", ""); err != nil {
		t.Fatalf("store should remain usable: %v", err)
	}
}
