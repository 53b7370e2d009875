package matcher

import (
	"github.com/scylladb/go-set/i64set"

	"github.com/autobrr/regexmatcher/pkg/prefilter"
	"github.com/autobrr/regexmatcher/pkg/regex"
)

type backtrackSet struct {
	patterns  []*regex.Pattern
	prefilter *prefilter.Prefilter
}

func (s *backtrackSet) Scan(input string) (*i64set.Set, error) {
	matched := i64set.New()

	check := func(p *regex.Pattern) error {
		// another definition with the same id already matched
		if matched.Has(p.ID) {
			return nil
		}

		ok, err := p.Match(input)
		if err != nil {
			return &MatchLimitError{PatternID: p.ID, Err: err}
		}
		if ok {
			matched.Add(p.ID)
		}
		return nil
	}

	if s.prefilter == nil {
		for _, p := range s.patterns {
			if err := check(p); err != nil {
				return nil, err
			}
		}
		return matched, nil
	}

	for _, idx := range s.prefilter.Candidates(input) {
		if err := check(s.patterns[idx]); err != nil {
			return nil, err
		}
	}

	return matched, nil
}

func (s *backtrackSet) Len() int {
	return len(s.patterns)
}

func (s *backtrackSet) Close() {
	s.patterns = nil
	s.prefilter = nil
}
