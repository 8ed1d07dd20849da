package hierarchy

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/scan-io-git/apiprops/internal/classfile"
	"github.com/scan-io-git/apiprops/internal/jvm"
	apierrors "github.com/scan-io-git/apiprops/pkg/shared/errors"
)

// Resolver loads class files from jar archives and class directories.
// It uses an afero.Fs so tests can work on in-memory filesystems.
type Resolver struct {
	fs       afero.Fs
	logger   hclog.Logger
	baseline []string
}

// NewResolver creates a Resolver. Baseline entries (for example an extracted
// JDK class directory) are loaded ahead of every classpath.
func NewResolver(fs afero.Fs, logger hclog.Logger, baseline []string) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{
		fs:       fs,
		logger:   logger,
		baseline: baseline,
	}
}

// NewOsResolver creates a Resolver on the operating system filesystem.
func NewOsResolver(logger hclog.Logger, baseline []string) *Resolver {
	return NewResolver(afero.NewOsFs(), logger, baseline)
}

// Resolve builds a Hierarchy from the baseline and the given classpath
// entries. Any entry that cannot be read fails the whole resolution with a
// *errors.ResolutionError.
func (r *Resolver) Resolve(entries []string) (*Hierarchy, error) {
	h := New()
	all := make([]string, 0, len(r.baseline)+len(entries))
	all = append(all, r.baseline...)
	all = append(all, entries...)

	for _, entry := range all {
		before := h.Size()
		if err := r.addEntry(h, entry); err != nil {
			return nil, apierrors.NewResolutionError(entry, err)
		}
		r.logger.Debug("classpath entry loaded", "entry", entry, "types", h.Size()-before)
	}
	r.logger.Info("type hierarchy resolved", "entries", len(all), "types", h.Size())
	return h, nil
}

func (r *Resolver) addEntry(h *Hierarchy, entry string) error {
	info, err := r.fs.Stat(entry)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return r.addDirectory(h, entry)
	}
	return r.addArchive(h, entry, info.Size())
}

func (r *Resolver) addDirectory(h *Hierarchy, root string) error {
	return afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isClassEntry(filepath.ToSlash(path)) {
			return nil
		}
		file, err := r.fs.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		td, err := classfile.Parse(file, path)
		if err != nil {
			return err
		}
		r.define(h, td)
		return nil
	})
}

func (r *Resolver) addArchive(h *Hierarchy, path string, size int64) error {
	file, err := r.fs.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	archive, err := zip.NewReader(file, size)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || !isClassEntry(entry.Name) {
			continue
		}
		if strings.HasPrefix(entry.Name, "META-INF/") {
			continue
		}
		if err := r.addArchiveEntry(h, path, entry); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) addArchiveEntry(h *Hierarchy, archivePath string, entry *zip.File) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", entry.Name, err)
	}
	defer rc.Close()

	td, err := classfile.Parse(rc, archivePath+"!/"+entry.Name)
	if err != nil {
		return err
	}
	r.define(h, td)
	return nil
}

func (r *Resolver) define(h *Hierarchy, td *jvm.TypeDescriptor) {
	if !h.add(td) {
		r.logger.Trace("duplicate type ignored", "type", td.Name.QualifiedName(), "source", td.Source)
	}
}

// isClassEntry accepts class files but not module or package descriptors.
func isClassEntry(name string) bool {
	if !strings.HasSuffix(name, ".class") {
		return false
	}
	base := name[strings.LastIndex(name, "/")+1:]
	return base != "module-info.class" && base != "package-info.class"
}
