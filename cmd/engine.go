package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/autobrr/regexmatcher/pkg/config"
	"github.com/autobrr/regexmatcher/pkg/engine"
	"github.com/autobrr/regexmatcher/pkg/matcher"
	"github.com/autobrr/regexmatcher/pkg/regex"
	"github.com/autobrr/regexmatcher/pkg/source"
)

const inlineSource = "config"

// loadDefinitions returns the inline patterns followed by every source, in config order.
func loadDefinitions(ctx context.Context, cfg *config.Configuration, loader *source.Loader) ([]source.Definition, error) {
	definitions := make([]source.Definition, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		definitions = append(definitions, source.Definition{
			Definition: matcher.Definition{
				ID:            p.ID,
				Text:          p.Pattern,
				CaseSensitive: p.CaseSensitive,
			},
			Source: inlineSource,
		})
	}

	loaded, err := loader.LoadAll(ctx, cfg.Sources)
	if err != nil {
		return nil, err
	}

	return append(definitions, loaded...), nil
}

// buildEngine registers definitions and prepares the engine. The engine is closed on failure.
func buildEngine(log *logrus.Entry, opts []engine.Option, definitions []source.Definition) (*engine.Engine, error) {
	e := engine.New(append(slices.Clone(opts), engine.WithLogger(log))...)

	for _, d := range definitions {
		if err := e.AddPattern(d.ID, d.Text, d.CaseSensitive); err != nil {
			e.Close()
			return nil, fmt.Errorf("%s: %w", d.Source, err)
		}
	}

	if err := e.Prepare(); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// describeFailure names the definition blamed by a compilation error.
func describeFailure(definitions []source.Definition, err error) (string, bool) {
	var cerr *engine.PatternCompilationError
	if !errors.As(err, &cerr) || !cerr.Attributed() {
		return "", false
	}

	for _, d := range definitions {
		if d.ID != cerr.PatternID {
			continue
		}
		// several definitions may share the id
		if _, err := regex.CompileDefinition(d.ID, d.Text, d.CaseSensitive, regex.Options{}); err != nil {
			return fmt.Sprintf("pattern %d from %s: %q", d.ID, d.Source, d.Text), true
		}
	}

	return fmt.Sprintf("pattern %d", cerr.PatternID), true
}
