package plan

import (
	"archive/zip"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"wpc/archive"
	"wpc/crop"
	"wpc/state"
	"wpc/utils/images"
)

// errSkip marks input which is not a supported wallpaper image.
var errSkip = errors.New("not a supported wallpaper image")

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("plan")

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	dst := cmd.String("output")
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	if s := cmd.String("size"); len(s) > 0 {
		if env.RawSize, err = parseSize(s); err != nil {
			return fmt.Errorf("unable to parse raw size override: %w", err)
		}
		log.Debug("Forcing raw wallpaper size for all sources", zap.Stringer("size", env.RawSize))
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	dest := dst
	if len(dest) == 0 {
		dest = "stdout"
	}
	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()), zap.String("destination", dest))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var errs error
	for _, src := range cmd.Args().Slice() {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := process(ctx, src, dst, log); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// process resolves a single source argument independently of CLI framework.
// It determines the input type (directory, archive, possibly a path inside an
// archive, or a single image file) and processes accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var err error
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		bundle, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if bundle {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if len(tail) != 0 {
			// plain file cannot have tail
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		file, err := os.Open(head)
		if err != nil {
			return fmt.Errorf("unable to open file (%s): %w", head, err)
		}
		err = processImage(ctx, file, filepath.Base(head), dst, log)
		file.Close()
		if errors.Is(err, errSkip) {
			return fmt.Errorf("input was not recognized as wallpaper image (%s)", head)
		}
		return err
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding wallpaper images and bundles and
// processes them in natural name order.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	var files []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}

	sort.Sort(natural.StringSlice(files))

	var errs error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		bundle, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if bundle {
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
				errs = multierr.Append(errs, err)
			}
			continue
		}

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		perr := processImage(ctx, file, src, dst, log)
		file.Close()
		if errors.Is(perr, errSkip) {
			log.Debug("Skipping file, not recognized as wallpaper image or bundle", zap.String("file", path))
			continue
		}

		count++
		if perr != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(perr))
			errs = multierr.Append(errs, perr)
		}
	}
	return errs
}

// processArchive walks all files inside archive, finds wallpaper images under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	var errs error
	err = archive.Walk(path, pathIn, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			return nil
		}
		defer r.Close()

		cp := state.EnvFromContext(ctx).CodePage

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}

		perr := processImage(ctx, r, filepath.Join(pathOut, pathInArchive), dst, log)
		if errors.Is(perr, errSkip) {
			log.Debug("Skipping file, not recognized as wallpaper image",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++
		if perr != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(perr))
			errs = multierr.Append(errs, perr)
		}
		return nil
	})
	if err != nil {
		return multierr.Append(errs, err)
	}
	return errs
}

// processImage plans a single wallpaper. "src" is part of the source path
// (always including file name) relative to the original path. When an actual
// file was specified it will be just the base file name without a path. When
// looking inside archive or directory it will be the relative path inside the
// archive or directory (including base file name). "dst" is the destination
// directory where the plan should be written, empty dst sends rendered plans
// to stdout.
func processImage(ctx context.Context, r io.Reader, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	br := bufio.NewReaderSize(r, images.SniffLen)
	head, err := br.Peek(images.SniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("unable to read wallpaper header (%s): %w", src, err)
	}
	if !images.IsSupported(head) {
		return errSkip
	}

	var (
		refID      uuid.UUID
		outputName string
	)

	log.Info("Planning starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: when multiple wallpapers are being processed we do not want a
		// single decoding failure to stop the whole run.
		if r := recover(); r != nil {
			log.Error("Planning ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("planning panic: %v", r)
		} else {
			log.Info("Planning completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.Stringer("ref_id", refID))
		}
	}(time.Now())

	var (
		size   crop.Size
		format string
	)
	if env.RawSize.Width > 0 && env.RawSize.Height > 0 {
		size = env.RawSize
	} else if size, format, err = images.ReadSize(br); err != nil {
		return fmt.Errorf("unable to read wallpaper size (%s): %w", src, err)
	}

	doc, err := Build(src, format, size, &env.Cfg.Cropper)
	if err != nil {
		return fmt.Errorf("unable to build plan (%s): %w", src, err)
	}

	if refID, err = uuid.NewV7(); err != nil {
		return fmt.Errorf("unable to generate plan ID: %w", err)
	}

	data, err := doc.Render(env.Cfg.Plan.Format)
	if err != nil {
		return err
	}

	if len(dst) == 0 {
		outputName = "stdout"
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write plan to stdout: %w", err)
		}
		return nil
	}

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(doc, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write plan: %w", err)
	}

	// Store planning result for debugging. Output base names are not unique
	// across subdirectories, the reference id is.
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("plan-%s%s", refID, filepath.Ext(outputName)), outputName)
	}

	return nil
}

// parseSize parses a WxH size specification, both dimensions must be
// positive.
func parseSize(s string) (crop.Size, error) {
	w, h, found := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !found {
		return crop.Size{}, fmt.Errorf("size specification %q is not in WxH form", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return crop.Size{}, fmt.Errorf("bad width in size specification %q: %w", s, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return crop.Size{}, fmt.Errorf("bad height in size specification %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return crop.Size{}, fmt.Errorf("size specification %q must have positive dimensions", s)
	}
	return crop.Size{Width: width, Height: height}, nil
}
