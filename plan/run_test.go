package plan

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"wpc/config"
	"wpc/crop"
	"wpc/state"
)

func setupTestEnvForRun(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	return ctx, env
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    crop.Size
		wantErr bool
	}{
		{"1080x2400", crop.Size{Width: 1080, Height: 2400}, false},
		{"3840X2160", crop.Size{Width: 3840, Height: 2160}, false},
		{" 1080 x 2400 ", crop.Size{Width: 1080, Height: 2400}, false},
		{"1080", crop.Size{}, true},
		{"0x2400", crop.Size{}, true},
		{"1080x-5", crop.Size{}, true},
		{"WxH", crop.Size{}, true},
		{"", crop.Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSize(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSize(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseSize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProcessImage_WritesPlan(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	dst := t.TempDir()

	if err := processImage(ctx, bytes.NewReader(pngBytes(t, 8, 4)), "wall.png", dst, env.Log); err != nil {
		t.Fatalf("processImage() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "wall.txt"))
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	want := "wall.png: 8x4 png\n" +
		"  phone: crop 2400x2400+1200+0 zoom 600 rest (660,0)\n"
	if string(data) != want {
		t.Errorf("plan content =\n%s\nwant\n%s", data, want)
	}
}

func TestProcessImage_RawSizeOverride(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	env.RawSize = crop.Size{Width: 4000, Height: 3000}
	dst := t.TempDir()

	// Geometry comes from the override, the actual pixel size is ignored
	// and no format is reported.
	if err := processImage(ctx, bytes.NewReader(pngBytes(t, 8, 4)), "wall.png", dst, env.Log); err != nil {
		t.Fatalf("processImage() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "wall.txt"))
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	want := "wall.png: 4000x3000\n" +
		"  phone: crop 2400x2400+400+0 zoom 0.8 rest (660,0)\n"
	if string(data) != want {
		t.Errorf("plan content =\n%s\nwant\n%s", data, want)
	}
}

func TestProcessImage_SkipsUnsupported(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	dst := t.TempDir()

	err := processImage(ctx, strings.NewReader("just words, no pixels"), "notes.txt", dst, env.Log)
	if !errors.Is(err, errSkip) {
		t.Fatalf("processImage() error = %v, want errSkip", err)
	}

	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("skipped input still produced output: %v", entries)
	}
}

func TestProcessImage_OverwriteGuard(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	dst := t.TempDir()

	if err := processImage(ctx, bytes.NewReader(pngBytes(t, 8, 4)), "wall.png", dst, env.Log); err != nil {
		t.Fatalf("first processImage() error = %v", err)
	}

	err := processImage(ctx, bytes.NewReader(pngBytes(t, 8, 4)), "wall.png", dst, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second processImage() error = %v, want existing file complaint", err)
	}

	env.Overwrite = true
	if err := processImage(ctx, bytes.NewReader(pngBytes(t, 8, 4)), "wall.png", dst, env.Log); err != nil {
		t.Fatalf("processImage() with overwrite error = %v", err)
	}
}

func TestProcess_SingleFile(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	path := filepath.Join(srcDir, "wall.png")
	if err := os.WriteFile(path, pngBytes(t, 8, 4), 0644); err != nil {
		t.Fatalf("write wallpaper: %v", err)
	}

	if err := process(ctx, path, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "wall.txt")); err != nil {
		t.Errorf("plan file missing: %v", err)
	}
}

func TestProcess_NotAWallpaper(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	path := filepath.Join(srcDir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	err := process(ctx, path, dst, env.Log)
	if err == nil || !strings.Contains(err.Error(), "not recognized") {
		t.Errorf("process() error = %v, want recognition failure", err)
	}
}

func TestProcess_MissingSource(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	err := process(ctx, filepath.Join(srcDir, "nope.png"), dst, env.Log)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("process() error = %v, want not found", err)
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	for _, name := range []string{"wall1.png", "wall2.png", filepath.Join("sub", "wall3.png")} {
		path := filepath.Join(srcDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, pngBytes(t, 8, 4), 0644); err != nil {
			t.Fatalf("write wallpaper: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(srcDir, "note.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatalf("write note: %v", err)
	}

	if err := process(ctx, srcDir, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, name := range []string{"wall1.txt", "wall2.txt", filepath.Join("sub", "wall3.txt")} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("plan %s missing: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "note.txt")); !os.IsNotExist(err) {
		t.Error("unsupported file was not skipped")
	}

	data, err := os.ReadFile(filepath.Join(dst, "wall1.txt"))
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	want := "wall1.png: 8x4 png\n" +
		"  phone: crop 2400x2400+1200+0 zoom 600 rest (660,0)\n"
	if string(data) != want {
		t.Errorf("plan content =\n%s\nwant\n%s", data, want)
	}
}

func TestProcess_SameNameInSubdirs(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	for _, name := range []string{filepath.Join("autumn", "wall.png"), filepath.Join("winter", "wall.png")} {
		path := filepath.Join(srcDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, pngBytes(t, 8, 4), 0644); err != nil {
			t.Fatalf("write wallpaper: %v", err)
		}
	}

	// Debug report is collecting results, identical base names must not clash.
	env.Cfg.Reporting.Destination = filepath.Join(t.TempDir(), "report.zip")
	rpt, err := env.Cfg.Reporting.Prepare()
	if err != nil {
		t.Fatalf("prepare report: %v", err)
	}
	env.Rpt = rpt

	if err := process(ctx, srcDir, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	for _, name := range []string{filepath.Join("autumn", "wall.txt"), filepath.Join("winter", "wall.txt")} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("plan %s missing: %v", name, err)
		}
	}

	if err := env.Rpt.Close(); err != nil {
		t.Fatalf("close report: %v", err)
	}
	zr, err := zip.OpenReader(env.Cfg.Reporting.Destination)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	var plans int
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "plan-") {
			plans++
		}
	}
	if plans != 2 {
		t.Errorf("report holds %d plans, want 2", plans)
	}
}

func TestProcess_DirectoryWithArchive(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	writeTestZip(t, filepath.Join(srcDir, "pack.zip"), map[string][]byte{
		"inner.png": pngBytes(t, 8, 4),
	})

	if err := process(ctx, srcDir, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "inner.txt")); err != nil {
		t.Errorf("plan for archived wallpaper missing: %v", err)
	}
}

func TestProcess_Archive(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	path := filepath.Join(srcDir, "walls.zip")
	writeTestZip(t, path, map[string][]byte{
		"cover.png":         pngBytes(t, 8, 4),
		"october/wall.png":  pngBytes(t, 8, 4),
		"october/notes.txt": []byte("skip me"),
	})

	if err := process(ctx, path, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, name := range []string{"cover.txt", filepath.Join("october", "wall.txt")} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("plan %s missing: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "october", "notes.txt")); !os.IsNotExist(err) {
		t.Error("unsupported archive entry was not skipped")
	}
}

func TestProcess_PathInsideArchive(t *testing.T) {
	ctx, env := setupTestEnvForRun(t)
	srcDir, dst := t.TempDir(), t.TempDir()

	path := filepath.Join(srcDir, "walls.zip")
	writeTestZip(t, path, map[string][]byte{
		"cover.png":        pngBytes(t, 8, 4),
		"october/wall.png": pngBytes(t, 8, 4),
	})

	if err := process(ctx, filepath.Join(path, "october"), dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "october", "wall.txt")); err != nil {
		t.Errorf("plan for selected entry missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "cover.txt")); !os.IsNotExist(err) {
		t.Error("entry outside the requested path was planned")
	}
}

func TestProcess_Cancelled(t *testing.T) {
	baseCtx, env := setupTestEnvForRun(t)
	ctx, cancel := context.WithCancel(baseCtx)
	cancel()

	err := process(ctx, t.TempDir(), t.TempDir(), env.Log)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("process() error = %v, want context.Canceled", err)
	}
}
