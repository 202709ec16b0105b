package procmeta

import (
	"io"
	"strings"

	"github.com/mrzor/lilium-tools/internal/start"
)

// ProcessMetadata holds structured process information.
type ProcessMetadata struct {
	Program     string            // Display name, FallbackName when argv is empty
	Environ     map[string]string // Parsed environment variables, first entry wins
	Args        []string          // Command-line arguments, argv[0] included
	CmdlineFull string            // Full command line as single string
}

// FromProcess walks p's argument and environment vectors once.
// The returned issues describe entries that were skipped.
func FromProcess(p *start.Process) (*ProcessMetadata, []string) {
	var issues []string

	args := p.Args()
	var argv []string
	for {
		s, err := args.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			issues = append(issues, err.Error())
			continue
		}
		argv = append(argv, s)
	}

	vars := p.Environ()
	environ := make(map[string]string)
	for {
		v, err := vars.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			issues = append(issues, err.Error())
			continue
		}
		if v.Name == "" {
			continue
		}
		if _, seen := environ[v.Name]; !seen {
			environ[v.Name] = v.Value
		}
	}

	return &ProcessMetadata{
		Program:     p.DisplayName(),
		Environ:     environ,
		Args:        argv,
		CmdlineFull: strings.Join(argv, " "),
	}, issues
}
