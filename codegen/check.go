package codegen

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
)

// CheckResult holds the result of comparing generated output with the file
// on disk.
type CheckResult struct {
	Path     string
	UpToDate bool
	// Missing is set when Path does not exist.
	Missing bool
	// FirstDiffLine is the 1-based line of the first difference, 0 when up to
	// date or missing.
	FirstDiffLine int
}

// Err returns nil when up to date, otherwise an error wrapping
// errors.ErrOutOfDate with a regeneration hint.
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	var err error
	if r.Missing {
		err = errors.Wrapf(errors.ErrOutOfDate, "%s does not exist", r.Path)
	} else {
		err = errors.Wrapf(errors.ErrOutOfDate, "%s differs from generated output at line %d", r.Path, r.FirstDiffLine)
	}
	return errors.WithHint(err, "run `rpcgen generate` and commit the result")
}

// Check compares generated against the file at path. Line endings are
// normalized first, so a checkout with CRLF endings still counts as fresh.
func Check(path string, generated []byte) (*CheckResult, error) {
	result := &CheckResult{Path: path}

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		result.Missing = true
		return result, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	a := normalizeLines(generated)
	b := normalizeLines(existing)
	if a == b {
		result.UpToDate = true
		return result, nil
	}
	result.FirstDiffLine = firstDifference(a, b)
	return result, nil
}

// normalizeLines rewrites content with "\n" line endings.
// Returns empty string if the scanner encounters an error.
func normalizeLines(content []byte) string {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		result.WriteString(strings.TrimSuffix(scanner.Text(), "\r"))
		result.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return ""
	}
	return result.String()
}

func firstDifference(a, b string) int {
	la := strings.Split(a, "\n")
	lb := strings.Split(b, "\n")
	for i := 0; i < len(la) && i < len(lb); i++ {
		if la[i] != lb[i] {
			return i + 1
		}
	}
	if len(la) < len(lb) {
		return len(la)
	}
	return len(lb)
}

// WriteFile writes content to path, creating parent directories. The file is
// written to a temporary sibling and renamed into place, so readers never see
// a partial file. An identical existing file is left untouched and changed
// is false.
func WriteFile(path string, content []byte) (changed bool, err error) {
	log := logger.ComponentLogger(logger.ComponentGenerate)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		log.Debugw("output unchanged", logger.FieldOutput, path)
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return false, errors.Wrapf(err, "failed to write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return false, errors.Wrapf(err, "failed to close %s", tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return false, errors.Wrapf(err, "failed to chmod %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", path)
	}
	log.Debugw("output written", logger.FieldOutput, path, logger.FieldBytes, len(content))
	return true, nil
}
