package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"pdfcal/internal/config"
	"pdfcal/internal/example"
	"pdfcal/internal/ics"
	appLog "pdfcal/internal/log"
	"pdfcal/internal/model"
	"pdfcal/internal/render"
	"pdfcal/internal/source"
)

const usageText = `usage:
  pdfcal show-example [OUT_FILE] [--print]
  pdfcal use-json OUTPUT --events FILE... [--yearly FILE...] [--ics SRC...]
                  [--settings FILE] --year_first Y [--month_first M]
                  [--year_last Y2] [--month_last M2] [--timezone TZ]
                  [--ics-cache DIR] [--cron SPEC]
  pdfcal init-settings FILE

All commands accept --debug. PDFCAL_LOG_LEVEL (debug, info, error) sets
the level when --debug is absent.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "show-example":
		err = runShowExample(args)
	case "use-json":
		err = runUseJSON(args)
	case "init-settings":
		err = runInitSettings(args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usageText)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usageText)
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		appLog.Error("pdfcal failed", err, "command", cmd)
		os.Exit(1)
	}
}

func runShowExample(args []string) error {
	fs := flag.NewFlagSet("show-example", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "Enable debug logging")
	printEvents := fs.Bool("print", false, "Also print the demo events file to stdout")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	setDebug(*debug)

	out := "example.pdf"
	if len(pos) > 0 {
		out = pos[0]
	}

	ev := example.Events()
	if *printEvents {
		if err := source.WriteEvents(os.Stdout, ev); err != nil {
			return err
		}
	}

	rng := render.DateRange{
		YearFirst:  example.YearFirst,
		MonthFirst: example.MonthFirst,
		MonthLast:  example.MonthLast,
	}
	appLog.Info("rendering example", "output", out)
	return render.GenerateFile(out, rng, ev, example.Settings())
}

func runInitSettings(args []string) error {
	fs := flag.NewFlagSet("init-settings", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "Enable debug logging")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	setDebug(*debug)
	if len(pos) != 1 {
		return errors.New("init-settings: expected exactly one FILE argument")
	}

	if err := config.Save(pos[0], config.Defaults()); err != nil {
		return err
	}
	appLog.Info("default settings written", "path", pos[0])
	return nil
}

// useJSONOptions holds the use-json flag values.
type useJSONOptions struct {
	output     string
	events     stringList
	yearly     stringList
	icsSources stringList
	settings   string
	icsCache   string
	timezone   string
	cronSpec   string
	rng        render.DateRange
}

func runUseJSON(args []string) error {
	var opts useJSONOptions

	fs := flag.NewFlagSet("use-json", flag.ContinueOnError)
	fs.Var(&opts.events, "events", "Events file (year -> month -> day -> text -> style); repeatable")
	fs.Var(&opts.yearly, "yearly", "Yearly events file (month -> day -> text -> style); repeatable")
	fs.Var(&opts.icsSources, "ics", "ICS file path or http(s) URL; repeatable")
	fs.StringVar(&opts.settings, "settings", "", "Settings file")
	fs.IntVar(&opts.rng.YearFirst, "year_first", 0, "First year to print (required)")
	fs.IntVar(&opts.rng.MonthFirst, "month_first", 1, "First month in year_first")
	fs.IntVar(&opts.rng.YearLast, "year_last", 0, "Last year to print (default year_first)")
	fs.IntVar(&opts.rng.MonthLast, "month_last", 12, "Last month in year_last")
	fs.StringVar(&opts.timezone, "timezone", "", "IANA timezone for ICS events (default local)")
	fs.StringVar(&opts.icsCache, "ics-cache", "", "Directory for the ICS HTTP cache (disabled if empty)")
	fs.StringVar(&opts.cronSpec, "cron", "", "Regenerate OUTPUT on this cron schedule until interrupted")
	debug := fs.Bool("debug", false, "Enable debug logging")

	pos, err := parseInterspersed(fs, expandMulti(args, "events", "yearly", "ics"))
	if err != nil {
		return err
	}
	setDebug(*debug)

	if len(pos) != 1 {
		return errors.New("use-json: expected exactly one OUTPUT argument")
	}
	opts.output = pos[0]
	if len(opts.events) == 0 {
		return errors.New("use-json: at least one --events file is required")
	}
	if err := opts.rng.Validate(); err != nil {
		return err
	}

	if opts.cronSpec == "" {
		return generate(context.Background(), opts)
	}
	return runScheduled(opts)
}

// runScheduled renders once immediately, then on every cron tick until
// SIGINT/SIGTERM.
func runScheduled(opts useJSONOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			appLog.Info("signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	c := cron.New()
	if _, err := c.AddFunc(opts.cronSpec, func() {
		if err := generate(ctx, opts); err != nil {
			appLog.Error("scheduled render failed", err, "output", opts.output)
		}
	}); err != nil {
		return fmt.Errorf("use-json: invalid --cron %q: %w", opts.cronSpec, err)
	}

	if err := generate(ctx, opts); err != nil {
		return err
	}

	appLog.Info("schedule started", "cron", opts.cronSpec, "output", opts.output)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("schedule stopped")
	return nil
}

// generate re-reads every input and writes the calendar.
func generate(ctx context.Context, opts useJSONOptions) error {
	overrides, err := config.LoadOverrides(opts.settings)
	if err != nil {
		return err
	}
	ev, err := loadEvents(ctx, opts)
	if err != nil {
		return err
	}
	return render.GenerateFile(opts.output, opts.rng, ev, overrides)
}

// loadEvents layers the inputs: yearly files stamped into every year of the
// range, then ICS feeds, then explicit event files, later ones merging over
// earlier ones.
func loadEvents(ctx context.Context, opts useJSONOptions) (model.Events, error) {
	yearFirst := opts.rng.YearFirst
	yearLast := opts.rng.YearLast
	if yearLast == 0 {
		yearLast = yearFirst
	}

	ev := model.Events{}
	for _, path := range opts.yearly {
		y, err := source.LoadYearly(path)
		if err != nil {
			return nil, err
		}
		ev.ApplyYearly(y, yearFirst, yearLast)
	}

	if len(opts.icsSources) > 0 {
		loc, err := loadLocation(opts.timezone)
		if err != nil {
			return nil, err
		}
		start, end := opts.rng.Bounds(loc)
		sources := make([]ics.Source, 0, len(opts.icsSources))
		for i, s := range opts.icsSources {
			sources = append(sources, ics.Source{ID: fmt.Sprintf("ics-%d", i+1), Location: s})
		}
		imported, err := ics.Import(ctx, ics.NewFetcher(opts.icsCache), sources, ics.ImportConfig{
			Expand: ics.ExpandConfig{
				DisplayLocation: loc,
				RangeStart:      start,
				RangeEnd:        end,
			},
		})
		if err != nil {
			return nil, err
		}
		ev.Merge(imported)
	}

	for _, path := range opts.events {
		e, err := source.LoadEvents(path)
		if err != nil {
			return nil, err
		}
		ev.Merge(e)
	}
	return ev, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("use-json: timezone %q: %w", name, err)
	}
	return loc, nil
}

// setDebug applies --debug, falling back to PDFCAL_LOG_LEVEL.
func setDebug(on bool) {
	switch {
	case on:
		appLog.SetLevel(appLog.LevelDebug)
	case os.Getenv("PDFCAL_LOG_LEVEL") != "":
		appLog.SetLevel(appLog.ParseLevel(os.Getenv("PDFCAL_LOG_LEVEL")))
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments, returning the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

// expandMulti rewrites "--name a b c" into "--name a --name b --name c" for
// the given flag names so they accept several values after one flag.
func expandMulti(args []string, names ...string) []string {
	multi := make(map[string]bool, len(names))
	for _, n := range names {
		multi[n] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		name := strings.TrimLeft(a, "-")
		if a == "--" || !strings.HasPrefix(a, "-") || strings.Contains(name, "=") || !multi[name] {
			out = append(out, a)
			continue
		}
		n := 0
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, a, args[i+1])
			i++
			n++
		}
		// A flag without values is left for flag to report.
		if n == 0 {
			out = append(out, a)
		}
	}
	return out
}
