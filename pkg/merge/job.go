// Package merge implements the point-cloud tile merge invoker: it prepares
// the output location and drives an external merge utility with an ordered
// argument list.
package merge

import (
	"errors"
	"fmt"
)

// DefaultTool is the merge utility invoked when no tool is configured.
// PDAL's merge kernel follows the expected command-line contract:
// pdal merge <input1> ... <inputN> <output>.
const DefaultTool = "pdal"

// mergeSubcommand is the fixed first argument passed to the tool.
const mergeSubcommand = "merge"

// Job describes one merge invocation: an ordered set of input tile paths and
// exactly one output path. A Job is built once, validated, and consumed once.
type Job struct {
	Tool   string   // Merge tool binary name or path
	Inputs []string // Input tile files, in the order given
	Output string   // Consolidated output file path
}

// NewJob validates the paths and returns an immutable merge job.
// The input order is preserved exactly as given; the external tool may use
// it for deterministic tie-breaking of overlapping points.
func NewJob(tool string, inputs []string, output string) (*Job, error) {
	if len(inputs) == 0 {
		return nil, errors.New("merge job requires at least one input file")
	}
	for i, in := range inputs {
		if in == "" {
			return nil, fmt.Errorf("merge job input %d is empty", i)
		}
	}
	if output == "" {
		return nil, errors.New("merge job requires an output file path")
	}
	if tool == "" {
		tool = DefaultTool
	}
	job := &Job{
		Tool:   tool,
		Inputs: append([]string(nil), inputs...),
		Output: output,
	}
	return job, nil
}

// Args returns the tool's argument list: the merge subcommand, every input
// in its original order, and the output path last.
func (j *Job) Args() []string {
	args := make([]string, 0, len(j.Inputs)+2)
	args = append(args, mergeSubcommand)
	args = append(args, j.Inputs...)
	args = append(args, j.Output)
	return args
}
