package hospitals

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/hospitals.txt
var dataFS embed.FS

const defaultListPath = "data/hospitals.txt"

var (
	defaultOnce sync.Once
	defaultList []string
	defaultErr  error
)

func DefaultHospitals() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		hospitals, err := LoadHospitals(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultList = hospitals
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultList...), nil
}

func LoadHospitals(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("hospitals: missing reader")
	}

	scanner := bufio.NewScanner(r)
	hospitals := make([]string, 0, 32)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		hospitals = append(hospitals, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(hospitals)
	return hospitals, nil
}
