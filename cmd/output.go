package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/autobrr/regexmatcher/pkg/stringutils"
)

const textWidth = 80

type lineResult struct {
	Source string   `json:"source" yaml:"source"`
	Line   int      `json:"line" yaml:"line"`
	IDs    []int64  `json:"ids" yaml:"ids,flow"`
	Rules  []string `json:"rules,omitempty" yaml:"rules,omitempty,flow"`
	Text   string   `json:"text" yaml:"text"`
}

type resultWriter interface {
	Write(r lineResult) error
	Flush() error
}

func newResultWriter(format string, w io.Writer) (resultWriter, error) {
	switch format {
	case "", "text":
		return &textWriter{w: w}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}

type textWriter struct {
	w io.Writer
}

func (t *textWriter) Write(r lineResult) error {
	ids := "-"
	if len(r.IDs) > 0 {
		parts := make([]string, len(r.IDs))
		for i, id := range r.IDs {
			parts[i] = strconv.FormatInt(id, 10)
		}
		ids = strings.Join(parts, ",")
	}

	rules := "-"
	if len(r.Rules) > 0 {
		rules = strings.Join(r.Rules, ",")
	}

	_, err := fmt.Fprintf(t.w, "%s:%d: ids=%s rules=%s %q\n", r.Source, r.Line, ids, rules,
		stringutils.Truncate(r.Text, textWidth))
	return err
}

func (t *textWriter) Flush() error {
	return nil
}

// jsonWriter writes one object per line.
type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) Write(r lineResult) error {
	return j.enc.Encode(r)
}

func (j *jsonWriter) Flush() error {
	return nil
}

// yamlWriter writes one document per line.
type yamlWriter struct {
	enc *yaml.Encoder
}

func (y *yamlWriter) Write(r lineResult) error {
	return y.enc.Encode(r)
}

func (y *yamlWriter) Flush() error {
	return y.enc.Close()
}
