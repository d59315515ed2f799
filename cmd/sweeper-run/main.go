package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kingrea/sweeper/internal/agent"
	"github.com/kingrea/sweeper/internal/logbook"
	"github.com/kingrea/sweeper/internal/scenario"
	"github.com/kingrea/sweeper/internal/sim"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a scenario YAML file, or - for stdin (bundled office floor when empty)")
	check := flag.Bool("check", false, "validate the scenario file and exit")
	initScenario := flag.Bool("init", false, "write the bundled office floor to -scenario and exit")
	jsonOut := flag.Bool("json", false, "print the report as JSON")
	steps := flag.Int("steps", 0, "move attempt budget (0 derives it from the floor size)")
	timeout := flag.Duration("timeout", 0, "abort the run after this duration")
	logPath := flag.String("log", "", "append the run journal to this file")
	quiet := flag.Bool("quiet", false, "suppress the report, exit code only")
	flag.Parse()

	if *check && *initScenario {
		usage("-check and -init are mutually exclusive")
	}
	if *initScenario {
		runInit(strings.TrimSpace(*scenarioPath))
		return
	}
	if *check {
		runCheck(strings.TrimSpace(*scenarioPath))
		return
	}

	scn := scenario.Default()
	if path := strings.TrimSpace(*scenarioPath); path != "" {
		loaded, err := loadScenario(path)
		if err != nil {
			die("load scenario: %v", err)
		}
		scn = loaded
	}

	book, err := logbook.New(*logPath)
	if err != nil {
		die("open log: %v", err)
	}

	opts := []sim.Option{sim.WithLogbook(book)}
	if *steps > 0 {
		opts = append(opts, sim.WithStepBudget(*steps))
	}
	runner, err := sim.NewRunner(scn, opts...)
	if err != nil {
		die("prepare run: %v", err)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	rep, err := runner.Run(ctx)
	if err != nil {
		die("run: %v", err)
	}

	if !*quiet {
		if *jsonOut {
			raw, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				die("encode report: %v", err)
			}
			fmt.Println(string(raw))
		} else {
			fmt.Print(rep.Summary())
		}
	}
	if rep.Reason == string(agent.HaltCanceled) {
		os.Exit(1)
	}
}

// loadScenario resolves the -scenario flag; "-" streams the YAML from stdin.
func loadScenario(path string) (scenario.Scenario, error) {
	if path == "-" {
		return scenario.LoadReader(os.Stdin)
	}
	return scenario.LoadFile(path)
}

func runInit(path string) {
	if path == "" {
		usage("-init requires -scenario to name the destination file")
	}
	if err := scenario.WriteDefault(path); err != nil {
		die("write scenario: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func runCheck(path string) {
	if path == "" {
		usage("-check requires -scenario to name the file to validate")
	}
	report, err := scenario.CheckFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	if report.IsValid() {
		fmt.Printf("OK: %s (%s)\n", report.Path, report.Name)
		return
	}
	fmt.Printf("Invalid: %s (%s)\n", report.Path, report.Name)
	for _, validationErr := range report.Errors {
		fmt.Printf("- %v\n", validationErr)
	}
	os.Exit(1)
}

func usage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	flag.Usage()
	os.Exit(2)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
