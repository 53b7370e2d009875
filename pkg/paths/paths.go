package paths

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/autobrr/regexmatcher/pkg/logger"
)

type Path struct {
	Path         string
	FileName     string
	Directory    string
	IsDir        bool
	Size         int64
	ModifiedTime time.Time
}

type callbackAllowed func(string) bool

var (
	log = logger.GetLogger("paths")
)

// InFolder traverses the provided folder and returns a list of paths and their total size.
// Files and folders can optionally be included in the results, and a custom accept function can be provided to
// filter the results further. The order of the returned paths is unspecified.
func InFolder(folder string, includeFiles bool, includeFolders bool, acceptFn callbackAllowed) ([]Path, uint64) {
	var paths []Path
	var size uint64 = 0
	var mutex sync.Mutex

	conf := fastwalk.Config{
		Follow: false,
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error accessing path %q during walk", path)
			if os.IsPermission(err) {
				log.Warnf("Permission error on %q, continuing walk if possible...", path)
			}
			return nil
		}

		if path == folder {
			return nil
		}

		isDir := d.IsDir()

		if acceptFn != nil && !acceptFn(path) {
			log.Tracef("Skipping rejected path: %s", path)
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if !includeFiles && !isDir {
			log.Tracef("Skipping file: %s", path)
			return nil
		}

		if !includeFolders && isDir {
			log.Tracef("Skipping folder: %s", path)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.WithError(err).Errorf("Failed to get file info for %s", path)
			return nil
		}

		foundPath := Path{
			Path:         path,
			FileName:     info.Name(),
			Directory:    filepath.Dir(path),
			IsDir:        isDir,
			Size:         info.Size(),
			ModifiedTime: info.ModTime(),
		}

		mutex.Lock()
		paths = append(paths, foundPath)
		size += uint64(info.Size())
		mutex.Unlock()

		return nil
	}

	err := fastwalk.Walk(&conf, folder, walkFn)
	if err != nil {
		log.WithError(err).Errorf("Failed to walk directory %s", folder)
	}

	return paths, size
}

// Files expands args into a sorted list of regular files: files are kept as given and directories are
// walked recursively. Paths starting with one of the ignore prefixes are skipped.
func Files(args []string, ignoreList []string) ([]Path, uint64, error) {
	var files []Path
	var size uint64

	accept := func(path string) bool {
		return !IsIgnored(path, ignoreList)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat: %w", err)
		}

		if !info.IsDir() {
			if !accept(arg) {
				continue
			}
			files = append(files, Path{
				Path:         arg,
				FileName:     info.Name(),
				Directory:    filepath.Dir(arg),
				Size:         info.Size(),
				ModifiedTime: info.ModTime(),
			})
			size += uint64(info.Size())
			continue
		}

		found, foundSize := InFolder(arg, true, false, accept)
		slices.SortFunc(found, func(a, b Path) int {
			return strings.Compare(a.Path, b.Path)
		})

		for _, p := range found {
			// skip sockets, devices and symlinks
			if p.IsDir || !isRegular(p.Path) {
				foundSize -= uint64(p.Size)
				continue
			}
			files = append(files, p)
		}
		size += foundSize
	}

	return files, size, nil
}

// IsIgnored checks if a path is in the provided ignore list
func IsIgnored(path string, ignoreList []string) bool {
	return slices.ContainsFunc(ignoreList, func(s string) bool {
		return strings.HasPrefix(path, s)
	})
}

func isRegular(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
