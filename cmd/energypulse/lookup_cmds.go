package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goodnatureofminers/energypulse/internal/citysearch"
	"github.com/goodnatureofminers/energypulse/internal/clock"
	"github.com/goodnatureofminers/energypulse/internal/dashboard"
	"github.com/goodnatureofminers/energypulse/internal/metrics"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"github.com/goodnatureofminers/energypulse/internal/poller"
)

type weatherCmd struct {
	app      *app
	City     string        `long:"city" required:"true" description:"city name"`
	Watch    bool          `long:"watch" description:"keep refreshing until interrupted"`
	Interval time.Duration `long:"interval" default:"5m" description:"refresh period with --watch"`
}

func (c *weatherCmd) Execute([]string) error {
	out := c.app.out
	render := func(s poller.Snapshot[model.Weather]) {
		if !s.Has {
			fmt.Fprintf(out, "Weather unavailable: %v\n", s.LastErr)
			return
		}
		w := s.Value
		line := fmt.Sprintf("%s  %.1f°C  %s  wind %.1f km/h  (updated %s)",
			w.City, w.Temperature, w.Condition(), w.WindSpeed, s.UpdatedAt.Format("15:04"))
		if s.LastErr != nil {
			line += "  [stale]"
		}
		fmt.Fprintln(out, line)
	}

	p, err := dashboard.NewWeatherWidget(c.app.services.Weather, c.City, c.Interval,
		metrics.NewPoller("weather"), render, c.app.logger)
	if err != nil {
		return err
	}
	if !c.Watch {
		if err := p.Poll(c.app.ctx); err != nil && !p.Current().Has {
			return explain(err, "Weather unavailable")
		}
		return nil
	}
	if err := p.Run(c.app.ctx); err != nil && c.app.ctx.Err() == nil {
		return err
	}
	return nil
}

type citiesCmd struct {
	app         *app
	Interactive bool   `long:"interactive" short:"i" description:"read keystrokes line by line from stdin"`
	URL         string `long:"nominatim-url" env:"ENERGYPULSE_NOMINATIM_URL" default:"https://nominatim.openstreetmap.org"`
	Args        struct {
		Query []string `positional-arg-name:"query"`
	} `positional-args:"true"`
}

func (c *citiesCmd) Execute([]string) error {
	searcher, err := citysearch.NewNominatim(citysearch.Config{BaseURL: c.URL}, metrics.NewAPIClient(), c.app.logger)
	if err != nil {
		return err
	}
	if c.Interactive {
		return c.interactive(searcher)
	}

	query := strings.TrimSpace(strings.Join(c.Args.Query, " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}
	places, err := searcher.Search(c.app.ctx, query)
	if err != nil {
		return err
	}
	c.print(places)
	return nil
}

func (c *citiesCmd) print(places []citysearch.Place) {
	if len(places) == 0 {
		fmt.Fprintln(c.app.out, "No cities found")
		return
	}
	w := newTable(c.app.out)
	fmt.Fprintln(w, "CITY\tREGION\tLAT\tLON")
	for _, p := range places {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.City(), p.Region(), p.Lat, p.Lon)
	}
	_ = w.Flush()
}

func (c *citiesCmd) interactive(searcher citysearch.Searcher) error {
	ac := citysearch.NewAutocomplete(searcher, c.app.clock, func(s citysearch.State) {
		switch {
		case s.Searching || utf8.RuneCountInString(s.Query) < citysearch.MinQueryLength:
		case s.Err != nil:
			fmt.Fprintf(c.app.out, "Search failed: %v\n", s.Err)
		default:
			c.print(s.Results)
		}
	}, c.app.logger)
	defer ac.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		ac.Input(c.app.ctx, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	// Wait for the last debounced search.
	for ac.State().Searching {
		if err := clock.SleepWithContext(c.app.ctx, 100*time.Millisecond); err != nil {
			return nil
		}
	}
	return nil
}
