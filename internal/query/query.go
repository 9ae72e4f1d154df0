package query

import (
	"fmt"
	"strings"

	"github.com/docsift/docsift/internal/config"
)

// Build combines the persona and job-to-be-done into the single query
// sentence that every chunk is ranked against. Both inputs are required;
// an empty one is a fatal configuration error.
func Build(persona, job string) (string, error) {
	persona = strings.TrimSpace(persona)
	job = strings.TrimSpace(job)
	if persona == "" {
		return "", fmt.Errorf("%w: persona is required", config.ErrConfig)
	}
	if job == "" {
		return "", fmt.Errorf("%w: job_to_be_done is required", config.ErrConfig)
	}
	return fmt.Sprintf("As a %s, I need to %s.", persona, job), nil
}
