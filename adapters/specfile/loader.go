// Package specfile reads the GZoltar-style on-disk spectrum format:
// spectra.csv, tests.csv, matrix.txt; the same files produced by the VS
// Code GZoltar extension under .gzoltar/sfl/txt/.
package specfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/tdp-finder/tdp/domain"
)

// Loader is a ports.SpectraLoader reading spectra.csv/tests.csv/matrix.txt
// from Dir.
type Loader struct {
	Dir string
}

// New returns a Loader rooted at dir.
func New(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load implements ports.SpectraLoader.
func (l *Loader) Load(ctx context.Context) (*domain.Spectrum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elements, err := readElements(filepath.Join(l.Dir, "spectra.csv"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	tests, err := readTests(filepath.Join(l.Dir, "tests.csv"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	coverage, err := readMatrix(filepath.Join(l.Dir, "matrix.txt"), len(tests), len(elements))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}

	return domain.NewSpectrum(elements, tests, coverage)
}

// readNonEmptyLines returns every trimmed, non-blank line of path.
func readNonEmptyLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// readElements parses spectra.csv, dropping a header line if present.
func readElements(path string) ([]domain.ElementID, error) {
	lines, err := readNonEmptyLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), "name") {
		lines = lines[1:]
	}
	return lines, nil
}

// readTests parses tests.csv: "name,status[,...]" per line, a header
// line containing "name" is skipped once.
func readTests(path string) ([]domain.TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tests []domain.TestCase
	headerSkipped := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !headerSkipped && strings.Contains(strings.ToLower(line), "name") {
			headerSkipped = true
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
			continue
		}
		status := ""
		if len(fields) > 1 {
			status = strings.ToLower(strings.TrimSpace(fields[1]))
		}
		tests = append(tests, domain.TestCase{
			Name:   strings.TrimSpace(fields[0]),
			Failed: strings.Contains(status, "fail"),
		})
	}
	return tests, scanner.Err()
}

var matrixSplit = regexp.MustCompile(`[\s,]+`)

// readMatrix parses matrix.txt: one row per test, whitespace- or comma-
// separated 0/1 bits, one column per element.
func readMatrix(path string, numTests, numElements int) ([][]bool, error) {
	lines, err := readNonEmptyLines(path)
	if err != nil {
		return nil, err
	}

	coverage := make([][]bool, numTests)
	for i := 0; i < numTests; i++ {
		coverage[i] = make([]bool, numElements)
		if i >= len(lines) {
			continue
		}
		bits := matrixSplit.Split(strings.TrimSpace(lines[i]), -1)
		for j := 0; j < numElements && j < len(bits); j++ {
			coverage[i][j] = bits[j] == "1"
		}
	}
	return coverage, nil
}
