// Package prompts carries the interview prompt material as data. Compiled-in
// defaults can be overridden from a YAML file so persona and rubric text vary
// without code changes.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed persona.md
var defaultPersona string

//go:embed rubric.md
var defaultRubric string

//go:embed evaluation_format.md
var defaultEvaluationFormat string

// Templates holds the textual building blocks of the model prompts.
type Templates struct {
	// Persona is the tonality description guiding the style of generated questions.
	Persona string `yaml:"persona"`
	// Rubric is the weighted scoring criteria used by the evaluation call.
	Rubric string `yaml:"rubric"`
	// EvaluationFormat is the output-format instruction for the evaluation call.
	EvaluationFormat string `yaml:"evaluation_format"`
}

// Default returns the compiled-in prompt templates.
func Default() *Templates {
	return &Templates{
		Persona:          defaultPersona,
		Rubric:           defaultRubric,
		EvaluationFormat: defaultEvaluationFormat,
	}
}

// Load reads template overrides from a YAML file. An empty path returns the
// defaults; fields left empty in the file keep their default value.
func Load(path string) (*Templates, error) {
	templates := Default()
	if path == "" {
		return templates, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt file %s: %w", path, err)
	}

	var overrides Templates
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse prompt file %s: %w", path, err)
	}

	if strings.TrimSpace(overrides.Persona) != "" {
		templates.Persona = overrides.Persona
	}
	if strings.TrimSpace(overrides.Rubric) != "" {
		templates.Rubric = overrides.Rubric
	}
	if strings.TrimSpace(overrides.EvaluationFormat) != "" {
		templates.EvaluationFormat = overrides.EvaluationFormat
	}

	return templates, nil
}
