package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_ReadFile(t *testing.T) {
	fsys := OSFileSystem{}

	data, err := fsys.ReadFile("filesystem.go")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty file content")
	}
}

func TestOSFileSystem_CreateInMissingDir(t *testing.T) {
	fsys := OSFileSystem{}

	_, err := fsys.Create(filepath.Join(t.TempDir(), "nope", "out.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Create in missing dir: err = %v, want ErrNotExist", err)
	}
}

func TestMemoryFileSystem_CreateAndOpen(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if err := mfs.MkdirAll("/out", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	w, err := mfs.Create("/out/df.csv")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := io.WriteString(w, "RID\n1\n"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := mfs.Open("/out/df.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "RID\n1\n" {
		t.Errorf("content = %q", data)
	}

	info, err := f.Stat()
	if err != nil || info.Size() != 6 {
		t.Errorf("Stat() = %v, %v", info, err)
	}
}

func TestMemoryFileSystem_CreateRequiresParent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.Create("/missing/df.csv"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Create without parent: err = %v, want ErrNotExist", err)
	}
	if _, err := mfs.Create("df.csv"); err != nil {
		t.Errorf("Create in working dir failed: %v", err)
	}
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if err := mfs.WriteFile("/data/in/ADNIMERGE.csv", []byte("RID\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := mfs.Stat("/data/in")
	if err != nil {
		t.Fatalf("Stat dir failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected /data/in to be a directory")
	}

	info, err = mfs.Stat("/data/in/ADNIMERGE.csv")
	if err != nil {
		t.Fatalf("Stat file failed: %v", err)
	}
	if info.IsDir() || info.Size() != 4 {
		t.Errorf("unexpected file info: dir=%v size=%d", info.IsDir(), info.Size())
	}

	if _, err := mfs.Stat("/absent"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat absent: err = %v", err)
	}
}

func TestMemoryFileSystem_MkdirOverFile(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_ = mfs.WriteFile("/x", []byte("1"), 0644)

	if err := mfs.MkdirAll("/x", 0755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("MkdirAll over file: err = %v, want ErrExist", err)
	}
	if _, err := mfs.Create("/"); err == nil {
		t.Error("expected error creating a file over a directory")
	}
}

func TestMemoryFileSystem_Files(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_ = mfs.WriteFile("/b.csv", nil, 0644)
	_ = mfs.WriteFile("/a.csv", nil, 0644)

	got := mfs.Files()
	if len(got) != 2 || got[0] != "/a.csv" || got[1] != "/b.csv" {
		t.Errorf("Files() = %v", got)
	}
}

func TestMemoryFileSystem_OpenMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if _, err := mfs.Open("/nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open missing: err = %v", err)
	}
	if _, err := mfs.ReadFile("/nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile missing: err = %v", err)
	}
}
