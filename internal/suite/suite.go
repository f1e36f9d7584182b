// Package suite loads YAML position suites and checks the move generator
// against their expected counts and move lists.
package suite

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"github.com/jfredett/hazel-sub002/internal/movegen"
	"github.com/jfredett/hazel-sub002/internal/position"
)

//go:embed default.yaml
var builtin []byte

// TotalKey is the expect key for the number of moves across all groups.
const TotalKey = "total"

// ErrInvalidSuite wraps every suite validation failure.
var ErrInvalidSuite = errors.New("invalid suite")

// Case is one position with the counts and moves it should produce.
type Case struct {
	Name string `yaml:"name"`
	FEN  string `yaml:"fen"`
	// Expect maps a group name, or TotalKey, to a move count.
	Expect map[string]int `yaml:"expect"`
	// Moves maps a group name to its moves in generation order, written
	// the way board.Move.Describe prints them.
	Moves map[string][]string `yaml:"moves,omitempty"`
}

// Result is the outcome of running one Case.
type Result struct {
	Case       *Case
	Census     movegen.Census
	Mismatches []string
	Err        error
}

func (r Result) Passed() bool {
	return r.Err == nil && len(r.Mismatches) == 0
}

// Load reads a suite from a YAML file.
func Load(filename string) ([]*Case, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	cases, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	return cases, nil
}

// Builtin returns the suite embedded in the binary.
func Builtin() []*Case {
	cases, err := Parse(builtin)
	if err != nil {
		panic(err)
	}
	return cases
}

// Parse decodes and validates a YAML suite.
func Parse(data []byte) ([]*Case, error) {
	var cases []*Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSuite, err)
	}

	groups := movegen.GroupNames()
	seen := make(map[string]struct{})
	for i, c := range cases {
		if c == nil || c.Name == "" {
			return nil, fmt.Errorf("%w: case %d has no name", ErrInvalidSuite, i)
		}
		if c.FEN == "" {
			return nil, fmt.Errorf("%w: case '%s' has no fen", ErrInvalidSuite, c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate case '%s'", ErrInvalidSuite, c.Name)
		}
		seen[c.Name] = struct{}{}

		for key := range c.Expect {
			if key != TotalKey && !slices.Contains(groups, key) {
				return nil, fmt.Errorf("%w: case '%s': unknown expect key '%s'", ErrInvalidSuite, c.Name, key)
			}
		}
		for key := range c.Moves {
			if !slices.Contains(groups, key) {
				return nil, fmt.Errorf("%w: case '%s': unknown moves key '%s'", ErrInvalidSuite, c.Name, key)
			}
		}
	}

	return cases, nil
}

// Run checks every case against gen. A case whose FEN does not parse gets
// its Err set; the rest of the suite still runs.
func Run(gen *movegen.Generator, cases []*Case) []Result {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		r := runCase(gen, c)
		ctx := log.WithFields(log.Fields{
			"case":  c.Name,
			"total": r.Census.Total,
		})
		switch {
		case r.Err != nil:
			ctx.WithError(r.Err).Error("case failed to run")
		case len(r.Mismatches) > 0:
			ctx.WithField("mismatches", len(r.Mismatches)).Warn("case failed")
		default:
			ctx.Debug("case passed")
		}
		results = append(results, r)
	}
	return results
}

func runCase(gen *movegen.Generator, c *Case) Result {
	r := Result{Case: c}

	pos, err := position.ParseFENWith(c.FEN, gen.Table())
	if err != nil {
		r.Err = err
		return r
	}
	r.Census = gen.Census(pos)

	keys := make([]string, 0, len(c.Expect))
	for k := range c.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		want := c.Expect[k]
		got := r.Census.Total
		if k != TotalKey {
			got = r.Census.ByGroup[k]
		}
		if got != want {
			r.Mismatches = append(r.Mismatches, fmt.Sprintf("%s: got %d moves, want %d", k, got, want))
		}
	}

	groups := make([]string, 0, len(c.Moves))
	for k := range c.Moves {
		groups = append(groups, k)
	}
	sort.Strings(groups)
	for _, name := range groups {
		grp, err := gen.Group(name)
		if err != nil {
			r.Err = err
			return r
		}
		var got []string
		for m := range grp.Generate(pos) {
			got = append(got, m.Describe())
		}
		if want := c.Moves[name]; !slices.Equal(got, want) {
			r.Mismatches = append(r.Mismatches, fmt.Sprintf("%s: got %v, want %v", name, got, want))
		}
	}

	return r
}

// Summary counts passing results and names the failing cases.
func Summary(results []Result) (passed int, failed []string) {
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed = append(failed, r.Case.Name)
		}
	}
	return passed, failed
}
