package wizard

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	Input   string
	Format  string
	Output  string
	Service string
	Vars    map[string]string

	// CMDB lookup settings
	EnableLookup bool
	Credentials  string
	Concurrency  int

	LogLevel string
}

// Var is a rendered key/value pair. Templates iterate over a sorted slice so
// output is stable.
type Var struct {
	Key   string
	Value string
}

// SortedVars returns Vars ordered by key.
func (a WizardAnswers) SortedVars() []Var {
	out := make([]Var, 0, len(a.Vars))
	for k, v := range a.Vars {
		out = append(out, Var{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Free-text answers go through quote so that values such as "no", "null" or
// "a #b.csv" stay strings when the file is read back.
const configTemplate = `# invgen configuration

input: {{ quote .Input }}
{{- if .Format }}
format: {{ .Format }}
{{- end }}
output: {{ quote .Output }}
service: {{ quote .Service }}
{{- with .SortedVars }}

vars:
{{- range . }}
  {{ quote .Key }}: {{ quote .Value }}
{{- end }}
{{- end }}

{{- if .EnableLookup }}

lookup:
  credentials: {{ quote .Credentials }}
  concurrency: {{ .Concurrency }}
{{- end }}

log:
  level: {{ .LogLevel }}
`

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	if answers.Output == "" {
		answers.Output = "inventory.yml"
	}
	if answers.LogLevel == "" {
		answers.LogLevel = "warn"
	}
	if answers.Concurrency < 1 {
		answers.Concurrency = 1
	}
	if answers.EnableLookup && answers.Credentials == "" {
		answers.Credentials = "credentials.txt"
	}

	tmpl, err := template.New("config").Funcs(template.FuncMap{
		"quote": func(s string) string { return fmt.Sprintf("%q", s) },
	}).Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", err
	}

	return buf.String(), nil
}
