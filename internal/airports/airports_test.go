package airports

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	ap := writeFile(t, dir, "airports.json",
		`[{"code":"YUL","city_code":"YMQ"},{"code":"yhu","city_code":"YMQ"},{"code":"FRA","city_code":"FRA"},{"code":"XXX","city_code":"NOPE"}]`)
	ct := writeFile(t, dir, "cities.json",
		`[{"code":"YMQ","name":"Montreal"},{"code":"FRA","name":"Frankfurt"}]`)

	d, err := Load(ap, ct)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() != 4 {
		t.Errorf("Len = %d, want 4", d.Len())
	}

	tests := []struct{ code, want string }{
		{"YUL", "Montreal"},
		{"yul", "Montreal"},
		{"YHU", "Montreal"},
		{"FRA", "Frankfurt"},
		{"XXX", ""},
		{"ZZZ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := d.CityFor(tt.code); got != tt.want {
			t.Errorf("CityFor(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[]`)
	bad := writeFile(t, dir, "bad.json", `{not json`)

	if _, err := Load(filepath.Join(dir, "missing.json"), good); err == nil {
		t.Error("expected error for missing airports file")
	}
	if _, err := Load(good, bad); err == nil {
		t.Error("expected error for malformed cities file")
	}
}

func TestNilDirectory(t *testing.T) {
	var d *Directory
	if d.CityFor("YUL") != "" || d.Len() != 0 {
		t.Error("nil directory should know no airports")
	}
}

func TestConcurrentReads(t *testing.T) {
	d := New([]Airport{{Code: "GVA", CityCode: "GVA"}}, []City{{Code: "GVA", Name: "Geneva"}})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.CityFor("gva") != "Geneva" {
				t.Error("concurrent lookup failed")
			}
		}()
	}
	wg.Wait()
}
