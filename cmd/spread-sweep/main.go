package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"wildfire/internal/core"
	"wildfire/internal/scenario"
	"wildfire/internal/sims/wildfire"
)

type caseSummary struct {
	name        string
	runs        int
	meanFrac    float64
	maxFrac     float64
	meanSteps   float64
	extinctRuns int
}

// buildCases expands every speed/direction pair into runs seeded cases.
// groupOf[i] is the index in groups of the summary case i belongs to. A zero
// speed produces a single calm group, since direction is irrelevant without
// wind.
func buildCases(speeds, dirs []float64, runs int, seed int64) (groups []*caseSummary, cases []wildfire.SweepCase, groupOf []int) {
	for _, speed := range speeds {
		for _, dir := range dirs {
			w := wildfire.NewWind(speed, dir)
			name := fmt.Sprintf("speed=%g from=%g", speed, dir)
			if speed == 0 {
				w = wildfire.Calm()
				name = "calm"
			}
			g := len(groups)
			groups = append(groups, &caseSummary{name: name})
			for i := 0; i < runs; i++ {
				cases = append(cases, wildfire.SweepCase{Name: name, Wind: w, Seed: seed + int64(i)})
				groupOf = append(groupOf, g)
			}
			if speed == 0 {
				break
			}
		}
	}
	return groups, cases, groupOf
}

// summarize folds results (in case order) into their groups and returns the
// groups ranked by mean burnt fraction, ties broken by name.
func summarize(groups []*caseSummary, groupOf []int, results []wildfire.SweepResult) []*caseSummary {
	for i, res := range results {
		s := groups[groupOf[i]]
		s.runs++
		s.meanFrac += res.Fraction
		s.meanSteps += float64(res.Steps)
		if res.Fraction > s.maxFrac {
			s.maxFrac = res.Fraction
		}
		if res.Extinct {
			s.extinctRuns++
		}
	}
	ranked := make([]*caseSummary, 0, len(groups))
	for _, s := range groups {
		if s.runs > 0 {
			s.meanFrac /= float64(s.runs)
			s.meanSteps /= float64(s.runs)
		}
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].meanFrac != ranked[j].meanFrac {
			return ranked[i].meanFrac > ranked[j].meanFrac
		}
		return ranked[i].name < ranked[j].name
	})
	return ranked
}

func parseFloats(list string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	scenarioPath := flag.String("scenario", "", "scenario file (INI); empty uses the built-in grid")
	steps := flag.Int("steps", 300, "step budget per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	runs := flag.Int("runs", 8, "seeded runs per wind case")
	speeds := flag.String("speeds", "0,3,6,12", "comma separated wind speeds (m/s)")
	directions := flag.String("directions", "0,45,90,135,180,225,270,315", "comma separated wind-from bearings")
	seed := flag.Int64("seed", 1337, "base seed; run i of every case uses seed+i")
	flag.Parse()

	logger := core.NewLogger(os.Stderr, slog.LevelInfo)

	sc := scenario.Default()
	if *scenarioPath != "" {
		var err error
		sc, err = scenario.ReadFile(*scenarioPath)
		if err != nil {
			logger.Error("read scenario", "path", *scenarioPath, "err", err)
			os.Exit(1)
		}
	}

	speedList, err := parseFloats(*speeds)
	if err != nil {
		logger.Error("parse speeds", "err", err)
		os.Exit(2)
	}
	dirList, err := parseFloats(*directions)
	if err != nil {
		logger.Error("parse directions", "err", err)
		os.Exit(2)
	}

	sim := wildfire.NewSimulation(sc.WildfireConfig())
	if err := sim.Load(sc.Records()); err != nil {
		logger.Error("load points", "err", err)
		os.Exit(1)
	}

	groups, cases, groupOf := buildCases(speedList, dirList, *runs, *seed)

	logger.Info("sweeping", "cases", len(groups), "runs", len(cases), "workers", *workers, "steps", *steps, "points", len(sim.Points()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sim.Sweep(ctx, cases, *steps, *workers)
	if err != nil {
		logger.Error("sweep", "err", err)
		os.Exit(1)
	}

	summaries := summarize(groups, groupOf, results)

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, s := range summaries {
		fmt.Printf("%2d) %-24s mean=%.4f max=%.4f steps=%.1f extinct=%d/%d\n",
			i+1, s.name, s.meanFrac, s.maxFrac, s.meanSteps, s.extinctRuns, s.runs)
	}
}
