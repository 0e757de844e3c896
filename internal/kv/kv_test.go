package kv

import (
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	db, err := OpenSQLite(filepath.Join(dir, "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	fs, err := OpenFile(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	return map[string]Store{
		DriverMemory: NewMemory(),
		DriverSQLite: db,
		DriverFile:   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("dismissedNotifications"); err != nil || ok {
				t.Fatalf("Get missing = ok %v err %v, want false nil", ok, err)
			}
			if err := s.Set("dismissedNotifications", `["a"]`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set("dismissedNotifications", `["a","b"]`); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			v, ok, err := s.Get("dismissedNotifications")
			if err != nil || !ok {
				t.Fatalf("Get = ok %v err %v", ok, err)
			}
			if v != `["a","b"]` {
				t.Errorf("value = %q, want %q", v, `["a","b"]`)
			}
			if err := s.Delete("dismissedNotifications"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := s.Get("dismissedNotifications"); ok {
				t.Error("key still present after Delete")
			}
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := db.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	db.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	v, ok, err := db.Get("k")
	if err != nil || !ok || v != "v" {
		t.Errorf("Get = %q %v %v, want v true nil", v, ok, err)
	}
}

func TestFileRejectsPathKeys(t *testing.T) {
	fs, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	for _, k := range []string{"", "../x", "a/b", ".hidden"} {
		if err := fs.Set(k, "v"); err == nil {
			t.Errorf("Set(%q) should fail", k)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Error("expected error for unknown driver")
	}
}
