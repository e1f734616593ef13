package render

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/anthropics/platy/internal/extract"
)

// MarshalLibrary serializes a Library for inspection or diffing.
// Supported formats are "yaml" (default) and "json". Output is
// deterministic: the Library's lists are ordered and the leaf fields
// are plain strings.
func MarshalLibrary(lib *extract.Library, format string) ([]byte, error) {
	switch format {
	case "", "yaml":
		return yaml.Marshal(lib)
	case "json":
		data, err := json.MarshalIndent(lib, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}
