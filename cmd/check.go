package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/scylladb/go-set/i64set"
	"github.com/spf13/cobra"

	"github.com/autobrr/regexmatcher/pkg/config"
	"github.com/autobrr/regexmatcher/pkg/expression"
	"github.com/autobrr/regexmatcher/pkg/logger"
	"github.com/autobrr/regexmatcher/pkg/source"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every configured pattern and rule compiles",
	Long:  `This command loads the configured patterns and pattern sources, compiles them and reports the first pattern that fails.`,

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore(true)

		// set log
		log := logger.GetLogger("check")

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

		log.Infof("OK: %s patterns with %s distinct ids, %s rules",
			humanize.Comma(int64(e.Len())), humanize.Comma(int64(distinctIDs(definitions))),
			humanize.Comma(int64(rules.Len())))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func distinctIDs(definitions []source.Definition) int {
	ids := i64set.NewWithSize(len(definitions))
	for _, d := range definitions {
		ids.Add(d.ID)
	}
	return ids.Size()
}
