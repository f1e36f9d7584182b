package main

import (
	"errors"
	"flag"
	"fmt"
	"iter"
	"os"
	"runtime/pprof"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/jfredett/hazel-sub002/internal/attacks"
	"github.com/jfredett/hazel-sub002/internal/board"
	"github.com/jfredett/hazel-sub002/internal/movegen"
	"github.com/jfredett/hazel-sub002/internal/position"
	"github.com/jfredett/hazel-sub002/internal/storage"
	"github.com/jfredett/hazel-sub002/internal/suite"
)

var (
	fen        = flag.String("fen", position.StartFEN, "position to generate moves for")
	piece      = flag.String("piece", "all", "generator: knight|bishop|rook|queen|king|pawn|castle|all")
	divide     = flag.Bool("divide", false, "print every generated move with its type")
	suitePath  = flag.String("suite", "", "run a YAML suite file, or \"builtin\"")
	benchN     = flag.Int("bench", 0, "time N random slider lookups on the slow and fast paths")
	verify     = flag.Bool("verify", false, "check every attack table entry against ray casting")
	extractor  = flag.String("extractor", "", "bit extraction: auto|hardware|software (env HAZEL_EXTRACTOR)")
	dbDir      = flag.String("db", "", "cache census results in this directory (env HAZEL_DB)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file (env CPUPROFILE)")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(); err != nil {
		log.WithError(err).Fatal("hazel-movegen")
	}
}

// envOr returns value, or the environment variable key when value is empty.
func envOr(value, key string) string {
	if value == "" {
		return os.Getenv(key)
	}
	return value
}

func run() error {
	// Start CPU profiling if requested (via flag or environment variable)
	if profilePath := envOr(*cpuprofile, "CPUPROFILE"); profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.WithField("file", profilePath).Info("CPU profiling enabled")
	}

	ext, err := attacks.ByName(envOr(*extractor, "HAZEL_EXTRACTOR"))
	if errors.Is(err, attacks.ErrNoHardware) {
		return fmt.Errorf("%w (use -extractor software or auto)", err)
	}
	if err != nil {
		return err
	}

	start := time.Now()
	table := attacks.NewTable(ext)
	log.WithFields(log.Fields{
		"extractor": ext.Name(),
		"elapsed":   time.Since(start),
	}).Info("attack table ready")
	gen := movegen.New(table)

	var store *storage.Storage
	if dir := envOr(*dbDir, "HAZEL_DB"); dir != "" {
		store, err = storage.Open(dir)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	switch {
	case *verify:
		return runVerify(table)
	case *benchN > 0:
		return runBench(table, *benchN)
	case *suitePath != "":
		return runSuite(gen, store, *suitePath)
	}
	return runPosition(gen, store, *fen, *piece)
}

func runVerify(table *attacks.Table) error {
	start := time.Now()
	if err := table.Verify(); err != nil {
		return err
	}
	fmt.Printf("attack table OK: %d rook + %d bishop entries (%s extractor, %v)\n",
		table.Size(board.Rook), table.Size(board.Bishop), table.Extractor().Name(), time.Since(start))
	return nil
}

func runSuite(gen *movegen.Generator, store *storage.Storage, path string) error {
	cases := suite.Builtin()
	if path != "builtin" {
		var err error
		if cases, err = suite.Load(path); err != nil {
			return err
		}
	}

	results := suite.Run(gen, cases)
	for _, r := range results {
		status := "ok  "
		if !r.Passed() {
			status = "FAIL"
		}
		fmt.Printf("%s %-40s %3d moves\n", status, r.Case.Name, r.Census.Total)
		if r.Err != nil {
			fmt.Printf("     error: %v\n", r.Err)
		}
		for _, m := range r.Mismatches {
			fmt.Printf("     %s\n", m)
		}
	}

	passed, failed := suite.Summary(results)
	fmt.Printf("\n%d/%d cases passed\n", passed, len(results))

	if store != nil {
		if err := store.RecordRun(passed, failed); err != nil {
			return err
		}
		stats, err := store.LoadStats()
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"runs":      stats.Runs,
			"pass_rate": fmt.Sprintf("%.1f%%", stats.PassRate()),
		}).Info("suite history")
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d cases failed", len(failed), len(results))
	}
	return nil
}

func runPosition(gen *movegen.Generator, store *storage.Storage, fen, piece string) error {
	pos, err := position.ParseFENWith(fen, gen.Table())
	if err != nil {
		return err
	}
	if err := pos.Validate(); err != nil {
		log.WithError(err).Warn("generating for an unreachable position")
	}

	var seq iter.Seq[board.Move]
	if piece == "all" {
		seq = gen.All(pos)
	} else {
		grp, err := gen.Group(piece)
		if err != nil {
			return err
		}
		seq = grp.Generate(pos)
	}

	if *divide {
		n := 0
		for m := range seq {
			fmt.Println(m.Describe())
			n++
		}
		fmt.Printf("\n%d moves\n", n)
		return nil
	}

	if piece != "all" {
		n := 0
		for range seq {
			n++
		}
		fmt.Printf("%s: %d moves\n", piece, n)
		return nil
	}

	rec, err := census(gen, store, pos)
	if err != nil {
		return err
	}
	printCensus(rec)
	return nil
}

// census returns the cached record for pos when store has one, otherwise it
// generates and (if store is set) saves a fresh one.
func census(gen *movegen.Generator, store *storage.Storage, pos *position.Position) (*storage.Record, error) {
	fen := pos.ToFEN()
	name := gen.Table().Extractor().Name()

	if store != nil {
		rec, err := store.LoadCensus(fen, name)
		if err == nil {
			log.WithField("created", rec.Created).Debug("census cache hit")
			return rec, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	start := time.Now()
	rec := &storage.Record{
		FEN:       fen,
		Extractor: name,
		Census:    gen.Census(pos),
	}
	rec.Elapsed = time.Since(start)

	if store != nil {
		if err := store.SaveCensus(rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func printCensus(rec *storage.Record) {
	fmt.Println(rec.FEN)
	for _, name := range movegen.GroupNames() {
		fmt.Printf("  %-7s %d\n", name, rec.Census.ByGroup[name])
	}
	fmt.Printf("captures %d, quiets %d, special %d\n", rec.Census.Captures, rec.Census.Quiets, rec.Census.Special)
	fmt.Printf("total %d (%v, %s extractor)\n", rec.Census.Total, rec.Elapsed, rec.Extractor)
}
