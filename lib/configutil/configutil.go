package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// LocalName returns the name of the local override file of name,
// "yfscrape.json5" becomes "yfscrape.local.json5".
func LocalName(name string) string {
	prefix, ext := splitExt(filepath.Base(name))
	local := fmt.Sprintf("%s.local", prefix)
	if ext != "" {
		local = fmt.Sprintf("%s.%s", local, ext)
	}
	return filepath.Join(filepath.Dir(name), local)
}

// readFile decodes path into out, it reports false when the file does not exist.
func readFile(path string, out any) (bool, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// readLayers decodes <name> and then <name>.local into out. Each file only
// sets the keys it names, so anything it leaves out keeps the value already in
// out, including false and zero values the file spells out.
func readLayers[T any](name string, out *T) (bool, error) {
	foundDefault, err := readFile(name, out)
	if err != nil {
		return false, err
	}

	localPath := LocalName(name)
	foundLocal, err := readFile(localPath, out)
	if err != nil {
		return false, err
	}
	if foundLocal {
		slog.Debug("merging config with local overrides", "local", localPath)
	}
	return foundDefault || foundLocal, nil
}

// ReadConfig reads a configuration file, `name` should come with a file extension.
// The following files are merged, where higher number is more prioritized.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// It returns os.ErrNotExist when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found, err := readLayers(name, &out)
	if err != nil {
		return out, err
	}
	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadConfigOr is ReadConfig with the files layered over defaults. Missing
// files are not an error.
func ReadConfigOr[T any](name string, defaults T) (T, error) {
	out := defaults
	_, err := readLayers(name, &out)
	if err != nil {
		return defaults, err
	}
	return out, nil
}

// ReadRecursively is ReadConfigOr but it goes up the filesystem from the
// working directory until the root to find a configuration file matching the
// name. It returns the defaults and os.ErrNotExist when there is none.
func ReadRecursively[T any](name string, defaults T) (T, error) {
	current, err := os.Getwd()
	if err != nil {
		return defaults, err
	}

	for {
		out := defaults
		found, err := readLayers(filepath.Join(current, name), &out)
		if err != nil {
			return defaults, err
		}
		if found {
			return out, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return defaults, os.ErrNotExist
		}
		current = parent
	}
}
