// Package engine binds the DuckDB shared library through purego FFI
// and exposes it as a columnar batch source. All value coercion
// happens above this layer; the engine delivers physical values plus
// the statement-kind signal the result assembler needs.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ebitengine/purego"
)

func libraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libduckdb.dylib"
	case "windows":
		return "duckdb.dll"
	default:
		return "libduckdb.so"
	}
}

// library is a loaded DuckDB shared library.
type library struct {
	handle uintptr
}

// loadLibrary loads libduckdb, preferring a DUCKDB_LIB_DIR override
// over the system search path.
func loadLibrary() (*library, error) {
	candidates := []string{libraryName()}
	if dir := os.Getenv("DUCKDB_LIB_DIR"); dir != "" {
		candidates = append([]string{filepath.Join(dir, libraryName())}, candidates...)
	}

	var lastErr error
	for _, name := range candidates {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return &library{handle: handle}, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("load duckdb library: %w", lastErr)
}

func (l *library) close() error {
	if l.handle != 0 {
		return purego.Dlclose(l.handle)
	}
	return nil
}

func (l *library) register(fn any, name string) error {
	// RegisterLibFunc panics on a missing symbol, so probe first.
	if _, err := purego.Dlsym(l.handle, name); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	purego.RegisterLibFunc(fn, l.handle, name)
	return nil
}
