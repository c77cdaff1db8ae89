// Package config loads merge job definitions from TOML files.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// JobFile is the on-disk description of a merge job.
//
// Example:
//
//	tool = "pdal"
//	inputs = ["tiles/a.laz", "tiles/b.laz"]
//	output = "merged/survey.laz"
type JobFile struct {
	Tool   string   `toml:"tool"`
	Inputs []string `toml:"inputs"`
	Output string   `toml:"output"`
}

// Load reads and parses a TOML job file.
func Load(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var jf JobFile
	if err := toml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &jf, nil
}

// Merge overlays explicit command-line values on top of the file values.
// A non-empty override wins; file values fill the gaps.
func (jf *JobFile) Merge(tool string, inputs []string, output string) JobFile {
	merged := JobFile{Tool: jf.Tool, Inputs: jf.Inputs, Output: jf.Output}
	if tool != "" {
		merged.Tool = tool
	}
	if len(inputs) > 0 {
		merged.Inputs = inputs
	}
	if output != "" {
		merged.Output = output
	}
	return merged
}
