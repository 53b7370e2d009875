// Package prefilter narrows a pattern set down to the definitions that can possibly match an input.
//
// Every definition with a provable literal prefix is indexed in one of two Aho-Corasick automatons
// (case sensitive literals against the raw input, case insensitive literals against a lower cased
// copy). A single pass over the input yields the definitions whose literal occurs; definitions
// without a literal are always candidates.
package prefilter

import (
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

type Builder struct {
	size        int
	always      []int
	sensitive   map[string][]int
	insensitive map[string][]int
}

func NewBuilder() *Builder {
	return &Builder{
		sensitive:   make(map[string][]int),
		insensitive: make(map[string][]int),
	}
}

// Add registers the definition at index.
func (b *Builder) Add(index int, text string, caseSensitive bool) {
	b.size++

	literal, ok := RequiredLiteral(text, caseSensitive)
	switch {
	case !ok:
		b.always = append(b.always, index)
	case literal.CaseSensitive:
		b.sensitive[literal.Text] = append(b.sensitive[literal.Text], index)
	default:
		b.insensitive[literal.Text] = append(b.insensitive[literal.Text], index)
	}
}

func (b *Builder) Build() *Prefilter {
	pf := &Prefilter{
		size:   b.size,
		always: b.always,
	}

	pf.sensitive = newDictionary(b.sensitive)
	pf.insensitive = newDictionary(b.insensitive)
	return pf
}

// Prefilter is not safe for concurrent use.
type Prefilter struct {
	size        int
	always      []int
	sensitive   *dictionary
	insensitive *dictionary
}

// Candidates returns the ascending indexes of the definitions that may match input.
func (p *Prefilter) Candidates(input string) []int {
	candidates := make([]int, 0, len(p.always))
	candidates = append(candidates, p.always...)

	if p.sensitive != nil {
		candidates = p.sensitive.lookup([]byte(input), candidates)
	}
	if p.insensitive != nil {
		candidates = p.insensitive.lookup([]byte(strings.ToLower(input)), candidates)
	}

	sort.Ints(candidates)
	return candidates
}

// Indexed returns how many definitions are guarded by a literal.
func (p *Prefilter) Indexed() int {
	return p.size - len(p.always)
}

// Len returns the number of definitions known to the prefilter.
func (p *Prefilter) Len() int {
	return p.size
}

type dictionary struct {
	matcher *ahocorasick.Matcher
	// owners maps a dictionary position to the definitions sharing that literal
	owners [][]int
}

func newDictionary(literals map[string][]int) *dictionary {
	if len(literals) == 0 {
		return nil
	}

	words := make([]string, 0, len(literals))
	for literal := range literals {
		words = append(words, literal)
	}
	sort.Strings(words)

	owners := make([][]int, len(words))
	for i, word := range words {
		owners[i] = literals[word]
	}

	return &dictionary{
		matcher: ahocorasick.NewStringMatcher(words),
		owners:  owners,
	}
}

func (d *dictionary) lookup(input []byte, dst []int) []int {
	for _, hit := range d.matcher.Match(input) {
		dst = append(dst, d.owners[hit]...)
	}
	return dst
}
