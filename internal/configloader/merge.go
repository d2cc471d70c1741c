package configloader

import (
	"fmt"
	"os"

	"github.com/yaklabco/mathdown/pkg/config"
)

// mergeFile overlays the config file at path onto base and returns the
// result. base is not modified. Keys the file sets win; keys it omits keep
// base's values, so a layer can turn a boolean off as well as on.
func mergeFile(base *config.Config, path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	result := base.Clone()
	if err := result.MergeYAML(content); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
