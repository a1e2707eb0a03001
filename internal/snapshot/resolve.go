package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	SchemeFile  = "file"
	SchemeExec  = "exec"
	SchemeStdin = "stdin"
)

// Source is a resolved snapshot location.
type Source struct {
	URI    string
	Path   string
	Scheme string
}

// Resolve resolves a snapshot URI.
//
// Supported schemes:
//   - file://name      → filepath.Join(dir, name)
//   - file:///abs/path → absolute path as-is
//   - exec://name      → executable at filepath.Join(dir, name), stdout is the snapshot
//   - -                → standard input
func Resolve(uri, dir string) (*Source, error) {
	switch {
	case uri == "-":
		return &Source{URI: uri, Scheme: SchemeStdin}, nil
	case strings.HasPrefix(uri, "file://"):
		return resolveFile(uri, dir)
	case strings.HasPrefix(uri, "exec://"):
		return resolveExec(uri, dir)
	case uri == "":
		return nil, fmt.Errorf("no snapshot source given")
	default:
		return nil, fmt.Errorf("unsupported snapshot URI scheme: %s", uri)
	}
}

func resolvePath(raw, dir string) string {
	if strings.HasPrefix(raw, "/") {
		return raw
	}
	return filepath.Join(dir, raw)
}

func resolveFile(uri, dir string) (*Source, error) {
	path := resolvePath(strings.TrimPrefix(uri, "file://"), dir)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("snapshot is a directory: %s", path)
	}

	return &Source{URI: uri, Path: path, Scheme: SchemeFile}, nil
}

func resolveExec(uri, dir string) (*Source, error) {
	path := resolvePath(strings.TrimPrefix(uri, "exec://"), dir)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot command not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("snapshot command is a directory: %s", path)
	}
	if info.Mode()&0111 == 0 {
		return nil, fmt.Errorf("snapshot command is not executable: %s", path)
	}

	return &Source{URI: uri, Path: path, Scheme: SchemeExec}, nil
}
