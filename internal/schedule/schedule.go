// Package schedule reads the per-account weekday caption file.
package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load parses a JSON file, or YAML for .yaml and .yml. Every failure wraps
// errors.ErrConfig so callers can fall back to the default caption.
func Load(path string) (domain.CaptionConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: schedule file not configured", errors.ErrConfig)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read schedule file: %v", errors.ErrConfig, err)
	}

	var captions domain.CaptionConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &captions)
	default:
		err = json.Unmarshal(data, &captions)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse schedule file %s: %v", errors.ErrConfig, path, err)
	}
	return captions, nil
}
