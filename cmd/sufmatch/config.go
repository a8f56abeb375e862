package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// Config holds the three positional file arguments the CLI needs.
type Config struct {
	PartsFile       string
	MasterPartsFile string
	ResultsFile     string
}

// Validate checks that the parts and masterParts files exist and are
// regular files, and that the results file's directory exists. Whether
// that directory is writable is not checked. Every failing check is
// collected so the reported
// ConfigError names all of them, not just the first one found.
func (c Config) Validate() error {
	var errs error

	errs = multierr.Append(errs, checkReadableFile("partsFile", c.PartsFile))
	errs = multierr.Append(errs, checkReadableFile("masterPartsFile", c.MasterPartsFile))
	errs = multierr.Append(errs, checkWritableDir("resultsFile", c.ResultsFile))

	if errs != nil {
		return &ConfigError{Err: errs}
	}
	return nil
}

func checkReadableFile(name, path string) error {
	if path == "" {
		return fmt.Errorf("%s: not given", name)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %q is not a regular file", name, path)
	}
	return nil
}

func checkWritableDir(name, path string) error {
	if path == "" {
		return fmt.Errorf("%s: not given", name)
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%s: directory %q: %w", name, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %q is not a directory", name, dir)
	}
	return nil
}
