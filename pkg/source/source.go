// Package source loads pattern definitions from local files and remote lists.
//
// A list holds one definition per line: a numeric id, a single tab or space, then the pattern.
// Blank lines and lines starting with # are ignored.
package source

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/autobrr/regexmatcher/pkg/config"
	"github.com/autobrr/regexmatcher/pkg/engine"
	"github.com/autobrr/regexmatcher/pkg/httputils"
	"github.com/autobrr/regexmatcher/pkg/logger"
	"github.com/autobrr/regexmatcher/pkg/matcher"
)

const maxLineSize = 1 << 20

// Definition is a pattern definition tagged with the name of the source it came from.
type Definition struct {
	matcher.Definition
	Source string
}

type Loader struct {
	client *http.Client
	log    *logrus.Entry
}

// NewLoader returns a loader fetching remote lists with client. A nil client gets a retrying,
// rate limited default.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = httputils.NewRetryableHttpClient(30*time.Second, ratelimit.New(2))
	}

	return &Loader{
		client: client,
		log:    logger.GetLogger("source"),
	}
}

// Load reads every definition of src.
func (l *Loader) Load(ctx context.Context, src config.SourceConfig) ([]matcher.Definition, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case src.Path != "":
		data, err = os.ReadFile(src.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "source %q: read file", src.Name)
		}
	case src.URL != "":
		data, err = httputils.Fetch(ctx, l.client, src.URL)
		if err != nil {
			return nil, errors.Wrapf(err, "source %q: fetch %s", src.Name, src.URL)
		}
	default:
		return nil, errors.Errorf("source %q: no path or url", src.Name)
	}

	definitions, err := Parse(src.Name, bytes.NewReader(data), src.CaseSensitive)
	if err != nil {
		return nil, err
	}

	l.log.Debugf("Loaded %s definitions from %q (%s)", humanize.Comma(int64(len(definitions))), src.Name,
		humanize.IBytes(uint64(len(data))))
	return definitions, nil
}

// LoadAll loads sources in order and concatenates their definitions.
func (l *Loader) LoadAll(ctx context.Context, sources []config.SourceConfig) ([]Definition, error) {
	var definitions []Definition
	for _, src := range sources {
		loaded, err := l.Load(ctx, src)
		if err != nil {
			return nil, err
		}

		for _, d := range loaded {
			definitions = append(definitions, Definition{Definition: d, Source: src.Name})
		}
	}
	return definitions, nil
}

// Parse reads a pattern list. name is only used in error messages.
func Parse(name string, r io.Reader, caseSensitive bool) ([]matcher.Definition, error) {
	var definitions []matcher.Definition

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		d, err := parseLine(line, caseSensitive)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", name, lineNo)
		}
		definitions = append(definitions, d)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s:%d", name, lineNo+1)
	}

	return definitions, nil
}

func parseLine(line string, caseSensitive bool) (matcher.Definition, error) {
	line = strings.TrimLeft(line, " \t")

	sep := strings.IndexAny(line, " \t")
	if sep < 0 {
		return matcher.Definition{}, errors.New("missing pattern after id")
	}

	id, err := strconv.ParseInt(line[:sep], 10, 64)
	if err != nil {
		return matcher.Definition{}, errors.Errorf("invalid id %q", line[:sep])
	}
	if id <= 0 || id > engine.MaxPatternID {
		return matcher.Definition{}, errors.Errorf("id %d outside [1, %d]", id, engine.MaxPatternID)
	}

	return matcher.Definition{
		ID:            id,
		Text:          line[sep+1:],
		CaseSensitive: caseSensitive,
	}, nil
}
