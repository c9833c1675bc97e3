package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"gridbattle/internal/combat"
	"gridbattle/internal/config"
	"gridbattle/internal/logger"
	"gridbattle/internal/render"
	"gridbattle/internal/util"
)

type options struct {
	input   string
	cfgPath string
	out     string
	saveLog bool
	watch   bool
	delay   time.Duration
	random  string
	seed    int64
}

func main() {
	var o options
	flag.StringVar(&o.input, "input", "", "battlefield file (default stdin)")
	flag.StringVar(&o.cfgPath, "config", "", "rules yaml file (default built-in rules)")
	flag.StringVar(&o.out, "out", "", "write a JSON report to this file")
	flag.BoolVar(&o.saveLog, "log", false, "include the baseline event log in the report")
	flag.BoolVar(&o.watch, "watch", false, "replay the baseline battle in the terminal")
	flag.DurationVar(&o.delay, "delay", 150*time.Millisecond, "pause between ticks in -watch mode")
	flag.StringVar(&o.random, "random", "", "generate a WxH arena instead of reading input")
	flag.Int64Var(&o.seed, "seed", 0, "seed for -random (0 = clock)")
	flag.Parse()

	logger.Init()
	if err := run(o, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options, stdin io.Reader, stdout io.Writer) error {
	rules, err := config.Load(o.cfgPath)
	if err != nil {
		return err
	}
	searchOpts, err := combat.SearchOptionsFromRules(rules)
	if err != nil {
		return err
	}

	text, err := readInput(o, stdin)
	if err != nil {
		return err
	}
	sys, err := combat.Parse(text, rules)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"width":   sys.Map().Width(),
		"height":  sys.Map().Height(),
		"elves":   sys.Count(combat.Elf),
		"goblins": sys.Count(combat.Goblin),
	}).Info("Battlefield loaded.")

	baseline := sys.Clone()
	var events []combat.Event
	if o.saveLog {
		baseline.OnEvent = func(ev combat.Event) { events = append(events, ev) }
	}
	var out combat.Outcome
	if o.watch {
		out, err = watch(baseline, o.delay)
	} else {
		out, err = baseline.Run()
	}
	if err != nil {
		return err
	}

	tuned, err := combat.SearchPower(sys, searchOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Checksum: %d\n", out.Checksum)
	fmt.Fprintf(stdout, "Checksum(%d): %d\n", tuned.Power, tuned.Outcome.Checksum)

	if o.out != "" {
		report := combat.Report{
			Input:    text,
			Note:     rules.Note,
			Baseline: out,
			Tuned:    tuned,
			Final:    baseline.String(),
			Events:   events,
		}
		if err := os.WriteFile(o.out, combat.MarshalPretty(report), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Log.WithField("path", o.out).Info("Report written.")
	}
	return nil
}

func readInput(o options, stdin io.Reader) (string, error) {
	if o.random != "" {
		w, h, err := util.ParseSize(o.random)
		if err != nil {
			return "", err
		}
		return util.Arena(util.New(o.seed), util.DefaultArenaOptions(w, h))
	}
	if o.input == "" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(o.input)
	return string(b), err
}

func watch(sys *combat.System, delay time.Duration) (combat.Outcome, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return combat.Outcome{}, err
	}
	if err := screen.Init(); err != nil {
		return combat.Outcome{}, err
	}
	defer screen.Fini()

	v := render.NewViewer(screen, delay)
	out, err := v.Watch(sys)
	v.WaitKey()
	return out, err
}
