package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func prepareReport(t *testing.T) (*Report, string) {
	t.Helper()

	dest := filepath.Join(t.TempDir(), "report.zip")
	conf := &ReporterConfig{Destination: dest}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("ReporterConfig.Prepare() error = %v", err)
	}
	return r, dest
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open archive entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read archive entry %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Finalize(t *testing.T) {
	r, dest := prepareReport(t)

	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "wallpaper.png"), []byte("not really an image"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	srcFile := filepath.Join(srcDir, "wallpaper.png")

	r.StoreData("config.yaml", []byte("version: 1\n"))
	r.Store("source-dir", srcDir)
	r.Store("source-file", srcFile)

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error = %v", err)
	}

	files := readArchive(t, dest)

	manifest, ok := files["MANIFEST"]
	if !ok {
		t.Fatal("report archive is missing MANIFEST")
	}
	for _, name := range []string{"config.yaml", "source-dir", "source-file"} {
		if !strings.Contains(manifest, name) {
			t.Errorf("MANIFEST does not mention %s:\n%s", name, manifest)
		}
	}

	if files["config.yaml"] != "version: 1\n" {
		t.Errorf("config.yaml content = %q, want %q", files["config.yaml"], "version: 1\n")
	}
	if _, ok := files["source-file"]; !ok {
		t.Error("report archive is missing source-file")
	}
	// Directories are stored recursively under the entry name
	if _, ok := files["source-dir/wallpaper.png"]; !ok {
		t.Errorf("report archive is missing source-dir/wallpaper.png, have %v", keys(files))
	}

	// Stored paths belong to the caller and must survive finalization
	if _, err := os.Stat(srcFile); err != nil {
		t.Errorf("stored file should not be removed, got: %v", err)
	}
	if _, err := os.Stat(srcDir); err != nil {
		t.Errorf("stored directory should not be removed, got: %v", err)
	}
}

func keys(m map[string]string) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	return res
}

func TestReport_StoreCopyVersionsNames(t *testing.T) {
	r, dest := prepareReport(t)

	src := filepath.Join(t.TempDir(), "plan.txt")
	if err := os.WriteFile(src, []byte("1080x2400"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := r.StoreCopy("plan", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// Same name again gets a timestamp suffix instead of panicking
	if err := r.StoreCopy("plan", src); err != nil {
		t.Fatalf("StoreCopy() second call error = %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error = %v", err)
	}

	var stored int
	for name, content := range readArchive(t, dest) {
		if name == "MANIFEST" {
			continue
		}
		if !strings.HasPrefix(name, "plan") {
			t.Errorf("unexpected archive entry %s", name)
			continue
		}
		if content != "1080x2400" {
			t.Errorf("entry %s content = %q, want %q", name, content, "1080x2400")
		}
		stored++
	}
	if stored != 2 {
		t.Errorf("archive has %d plan entries, want 2", stored)
	}
}

func TestReport_StoreCollisionPanics(t *testing.T) {
	r, _ := prepareReport(t)
	defer r.Close()

	r.Store("name", "/some/path")

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("Store should panic when overwriting a name with a different path")
		}
	}()
	r.Store("name", "/another/path")
}

func TestReport_Name(t *testing.T) {
	r, dest := prepareReport(t)
	defer r.Close()

	name := r.Name()
	if name == "" {
		t.Fatal("Name() returned empty string")
	}
	if !filepath.IsAbs(name) {
		t.Errorf("Name() = %s, want absolute path", name)
	}
	if filepath.Base(name) != filepath.Base(dest) {
		t.Errorf("Name() = %s, want file %s", name, filepath.Base(dest))
	}
}

func TestReport_NilReceiver(t *testing.T) {
	var r *Report

	// All operations on a nil report are ignored
	r.Store("name", "/some/path")
	r.StoreData("data", []byte("payload"))
	if err := r.StoreCopy("copy", "/some/path"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if n := r.Name(); n != "" {
		t.Errorf("Name on nil report = %q, want empty", n)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
