// cmd/sweeper/main.go
//
// Entry point for the interactive viewer. Running `sweeper` animates a
// cleaning run in the terminal.
//
// Flow:
// 1. Load the scenario (the bundled office floor when none is given)
// 2. Pick the surface: -plain animates on stdout with ANSI clears, a
//    non-terminal stdout gets a headless run plus the report summary,
//    and a terminal gets the bubbletea viewer

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/sweeper/internal/logbook"
	"github.com/kingrea/sweeper/internal/render"
	"github.com/kingrea/sweeper/internal/scenario"
	"github.com/kingrea/sweeper/internal/sim"
	"github.com/kingrea/sweeper/internal/tui"
	"golang.org/x/term"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a scenario YAML file (bundled office floor when empty)")
	plain := flag.Bool("plain", false, "render to stdout without the interactive viewer")
	delayMS := flag.Int("delay", -1, "frame delay in milliseconds (-1 keeps the scenario's)")
	logPath := flag.String("log", "", "append the run journal to this file")
	flag.Parse()

	scn := scenario.Default()
	if *scenarioPath != "" {
		loaded, err := scenario.LoadFile(*scenarioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
			os.Exit(1)
		}
		scn = loaded
	}

	book, err := logbook.New(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *plain:
		if err := runPlain(scn, book, *delayMS, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
			os.Exit(1)
		}
		return
	case !term.IsTerminal(int(os.Stdout.Fd())):
		// Piped or redirected stdout: no animation, no pacing, just the
		// report summary.
		if err := runHeadless(scn, book, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := []tui.AppOption{tui.WithLogbook(book)}
	if *delayMS >= 0 {
		opts = append(opts, tui.WithFrameDelay(time.Duration(*delayMS)*time.Millisecond))
	}
	app, err := tui.NewApp(scn, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing viewer: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

// runPlain animates on out with ANSI clears instead of bubbletea, then
// prints the report summary.
func runPlain(scn scenario.Scenario, book *logbook.Logbook, delayMS int, out io.Writer) error {
	delay := scn.FrameDelay()
	if delay <= 0 {
		delay = render.DefaultFrameDelay
	}
	if delayMS >= 0 {
		delay = time.Duration(delayMS) * time.Millisecond
	}

	runner, err := sim.NewRunner(scn,
		sim.WithRenderer(render.NewConsole(out, render.WithDelay(delay))),
		sim.WithLogbook(book),
	)
	if err != nil {
		return err
	}
	rep, err := runner.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprint(out, rep.Summary())
	return nil
}

// runHeadless runs without a renderer and prints only the report summary.
func runHeadless(scn scenario.Scenario, book *logbook.Logbook, out io.Writer) error {
	runner, err := sim.NewRunner(scn, sim.WithLogbook(book))
	if err != nil {
		return err
	}
	rep, err := runner.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprint(out, rep.Summary())
	return nil
}
