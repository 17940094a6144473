package embedded

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/drug_effects.yaml":    {Data: []byte("drugs: {}\n")},
		"data/simulation.yaml":      {Data: []byte("seed: 7\n")},
		"data/models/bronchi.yaml":  {Data: []byte("meshes: []\n")},
		"data/models/alveolus.yaml": {Data: []byte("meshes: []\n")},
	}
}

// reset 恢复未初始化状态
func reset(t *testing.T) {
	t.Helper()
	dataFS, initialized = nil, false
	t.Cleanup(func() { dataFS, initialized = nil, false })
}

func TestNotInitialized(t *testing.T) {
	reset(t)

	if IsInitialized() {
		t.Fatal("IsInitialized() = true before Init()")
	}
	if _, err := ReadFile("data/simulation.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if _, err := Open("data/simulation.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if _, err := Glob("data/*.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob() error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/simulation.yaml") {
		t.Error("Exists() = true before Init()")
	}
}

func TestReadFile(t *testing.T) {
	reset(t)
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"普通路径", "data/simulation.yaml", "seed: 7\n", false},
		{"带 ./ 前缀", "./data/simulation.yaml", "seed: 7\n", false},
		{"未知前缀", "assets/simulation.yaml", "", true},
		{"文件不存在", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestGlobAndReadDir(t *testing.T) {
	reset(t)
	Init(testFS())

	matches, err := Glob("data/models/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() matched %v, want 2 files", matches)
	}

	entries, err := ReadDir("data")
	if err != nil {
		t.Fatalf("ReadDir(data) error = %v", err)
	}
	// drug_effects.yaml, models, simulation.yaml
	if len(entries) != 3 {
		t.Errorf("ReadDir(data) returned %d entries, want 3", len(entries))
	}
	entries, err = ReadDir("data/models")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ReadDir() returned %d entries, want 2", len(entries))
	}

	if !Exists("data/models/bronchi.yaml") {
		t.Error("Exists() = false for embedded model")
	}
}

func TestReadFileOrDisk(t *testing.T) {
	reset(t)
	Init(testFS())

	got, err := ReadFileOrDisk("data/simulation.yaml")
	if err != nil || string(got) != "seed: 7\n" {
		t.Errorf("embedded read = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte("disk"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = ReadFileOrDisk(path)
	if err != nil || string(got) != "disk" {
		t.Errorf("disk read = %q, %v", got, err)
	}

	if _, err := ReadFileOrDisk(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
