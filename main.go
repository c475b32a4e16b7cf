package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"ringwars/agent"
	"ringwars/logger"
	"ringwars/meta"
	"ringwars/ring"
	"ringwars/stats"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg := meta.Load()

	flags := flag.NewFlagSet("ringwars", flag.ContinueOnError)
	flags.SetOutput(stderr)
	tuningPath := flags.String("tuning", cfg.TuningPath, "YAML file overriding the default thresholds")
	statsPath := flags.String("stats", cfg.StatsPath, "SQLite file for the win/loss record, relative to the agent directory, empty to disable")
	seed := flags.Uint64("seed", cfg.Seed, "Seed for breaking ties between equal nodes")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: ringwars [-tuning file] [-stats file] [-seed n] <round> <agent directory>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return 2
	}
	round, err := strconv.Atoi(flags.Arg(0))
	if err != nil || round < 1 {
		fmt.Fprintf(stderr, "invalid round %q\n", flags.Arg(0))
		flags.Usage()
		return 2
	}
	dir := flags.Arg(1)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(stderr, "agent directory %q does not exist\n", dir)
		flags.Usage()
		return 2
	}

	logger.Init(cfg.LogLevel, stderr)

	options := []agent.Option{agent.WithPicker(ring.NewPicker(*seed))}
	if *tuningPath != "" {
		tuning, err := meta.LoadTuning(*tuningPath)
		if err != nil {
			log.Error().Err(err).Msg("could not load tuning, using defaults")
		} else {
			options = append(options, agent.WithTuning(tuning))
		}
	}
	if *statsPath != "" {
		store, err := stats.Open(meta.InDir(dir, *statsPath))
		if err != nil {
			log.Warn().Err(err).Msg("statistics disabled")
		} else {
			defer store.Close()
			options = append(options, agent.WithStats(store))
		}
	}

	report, err := agent.New(dir, options...).PlayRound(context.Background(), round)
	if err != nil {
		log.Error().Err(err).Msgf("round %d failed", round)
		return 1
	}
	log.Info().Msgf("round %d done: %s with %d entries", report.Round, report.Kind, report.Move.Len())
	return 0
}
