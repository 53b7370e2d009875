package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/autobrr/regexmatcher/pkg/config"
	"github.com/autobrr/regexmatcher/pkg/engine"
	"github.com/autobrr/regexmatcher/pkg/expression"
	"github.com/autobrr/regexmatcher/pkg/logger"
	"github.com/autobrr/regexmatcher/pkg/paths"
	"github.com/autobrr/regexmatcher/pkg/source"
)

const (
	stdinName   = "stdin"
	maxLineSize = 4 << 20
)

var (
	flagNormalize   bool
	flagOutput      string
	flagOnlyMatches bool
	flagExclude     []string
)

type scanOptions struct {
	normalize   bool
	onlyMatches bool
}

type scanStats struct {
	lines   int
	matched int
	limited int
}

func (s *scanStats) add(o scanStats) {
	s.lines += o.lines
	s.matched += o.matched
	s.limited += o.limited
}

var scanCmd = &cobra.Command{
	Use:   "scan [PATH...]",
	Short: "Match every input line against the configured patterns",
	Long: `This command reports, for every line of the given files, the ids of the patterns that match it and the rules that fired.
Directories are walked recursively. Without arguments, or with "-", stdin is scanned.`,

	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore(true)

		// set log
		log := logger.GetLogger("scan")

		// flags override config
		opts := scanOptions{
			normalize:   config.Config.Scan.Normalize,
			onlyMatches: flagOnlyMatches,
		}
		if cmd.Flags().Changed("normalize") {
			opts.normalize = flagNormalize
		}
		output := config.Config.Scan.Output
		if cmd.Flags().Changed("output") {
			output = flagOutput
		}

		out, err := newResultWriter(output, cmd.OutOrStdout())
		if err != nil {
			log.WithError(err).Fatal("Failed initialising output")
		}

		// load patterns
		definitions, err := loadDefinitions(cmd.Context(), config.Config, source.NewLoader(nil))
		if err != nil {
			log.WithError(err).Fatal("Failed loading patterns")
		}

		// compile rules
		rules, err := expression.Compile(config.Config.Rules)
		if err != nil {
			log.WithError(err).Fatal("Failed compiling rules")
		}

		// compile patterns
		e, err := buildEngine(log, config.Config.Engine.Options(), definitions)
		if err != nil {
			if culprit, ok := describeFailure(definitions, err); ok {
				log.WithError(err).Fatalf("Failed compiling %s", culprit)
			}
			log.WithError(err).Fatal("Failed compiling patterns")
		}
		defer e.Close()

		start := time.Now()
		var total scanStats

		if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
			stats, err := scanInput(log, e, rules, stdinName, os.Stdin, opts, out)
			if err != nil {
				log.WithError(err).Fatal("Failed scanning stdin")
			}
			total.add(stats)
		} else {
			files, size, err := paths.Files(args, flagExclude)
			if err != nil {
				log.WithError(err).Fatal("Failed resolving input paths")
			}
			log.Debugf("Scanning %d files (%s)", len(files), humanize.IBytes(size))

			for _, f := range files {
				stats, err := scanFile(log, e, rules, f.Path, opts, out)
				if err != nil {
					log.WithError(err).Errorf("Failed scanning %q", f.Path)
					continue
				}
				total.add(stats)
			}
		}

		if err := out.Flush(); err != nil {
			log.WithError(err).Fatal("Failed writing output")
		}

		log.WithField("engine", e.ID()).Infof("Scanned %s lines in %s: %s matched, %s hit the match limit",
			humanize.Comma(int64(total.lines)), time.Since(start).Round(time.Millisecond),
			humanize.Comma(int64(total.matched)), humanize.Comma(int64(total.limited)))
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&flagNormalize, "normalize", false, "Apply Unicode NFC normalisation to every line before matching")
	scanCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text, json or yaml)")
	scanCmd.Flags().BoolVar(&flagOnlyMatches, "only-matches", false, "Only print lines matching at least one pattern or rule")
	scanCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "Skip paths starting with these prefixes")
}

func scanFile(log *logrus.Entry, e *engine.Engine, rules *expression.Rules, path string, opts scanOptions,
	out resultWriter) (scanStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return scanStats{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	return scanInput(log, e, rules, path, f, opts, out)
}

// scanInput matches every line of r and writes a result per line.
func scanInput(log *logrus.Entry, e *engine.Engine, rules *expression.Rules, name string, r io.Reader,
	opts scanOptions, out resultWriter) (scanStats, error) {
	var stats scanStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		stats.lines++

		line := scanner.Text()
		if opts.normalize {
			line = norm.NFC.String(line)
		}

		matched, err := e.Match(line)
		if err != nil {
			var lerr *engine.MatchLimitError
			if !errors.As(err, &lerr) {
				return stats, fmt.Errorf("%s:%d: %w", name, stats.lines, err)
			}

			log.WithError(err).Warnf("Skipping %s:%d", name, stats.lines)
			stats.limited++
			continue
		}

		fired, err := rules.Evaluate(line, matched)
		if err != nil {
			return stats, fmt.Errorf("%s:%d: %w", name, stats.lines, err)
		}

		ids := matched.List()
		slices.Sort(ids)

		if len(ids) > 0 || len(fired) > 0 {
			stats.matched++
		} else if opts.onlyMatches {
			continue
		}

		if err := out.Write(lineResult{
			Source: name,
			Line:   stats.lines,
			IDs:    ids,
			Rules:  fired,
			Text:   line,
		}); err != nil {
			return stats, fmt.Errorf("write result: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("%s:%d: %w", name, stats.lines+1, err)
	}

	return stats, nil
}
