package watch

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFile reads a watch list from a YAML, JSON, or TOML file with a top-level "watches" key.
// Every entry must validate; duplicate entries are collapsed.
func LoadFile(path string) ([]Entry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read watch file: %w", err)
	}

	var entries []Entry
	if err := v.UnmarshalKey("watches", &entries); err != nil {
		return nil, fmt.Errorf("decode watches: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("watch %d: %w", i, err)
		}
		id := e.ID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, e)
	}
	return out, nil
}
