package hospitals

import (
	"sort"
	"strings"
)

// Option is a value/label pair shaped for select inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func Search(hospitals []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(hospitals) <= limit {
				return append([]string{}, hospitals...)
			}
			return append([]string{}, hospitals[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedHospital, 0, 32)
	for _, hospital := range hospitals {
		lower := strings.ToLower(hospital)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, matchedHospital{
			name:     hospital,
			isPrefix: strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

func SearchOptions(hospitals []string, query string, limit int, opts Options) []Option {
	results := Search(hospitals, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, hospital := range results {
		out = append(out, Option{Value: hospital, Label: hospital})
	}
	return out
}

type matchedHospital struct {
	name     string
	isPrefix bool
}
