// shadow-compare runs this service's analysis and the legacy Node analysis on
// the same case fixture, compares the outputs section by section, and
// produces a JSON diff report.
// Exit code 0 = all sections match. Exit code 1 = divergence detected. Exit code 2 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/landlord-heaven/wizard-go/internal/shadow"
)

func main() {
	casePath := flag.String("case", "", "path to case JSON fixture (required)")
	nodePath := flag.String("node-path", "node", "path to Node interpreter")
	scriptPath := flag.String("legacy-script", "analyze.js", "path to the legacy analyze script")
	goOnly := flag.Bool("go-only", false, "run only the Go analysis (skip legacy comparison)")
	flag.Parse()

	if *casePath == "" {
		fmt.Fprintln(os.Stderr, "error: --case is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("running Go analysis", "case", *casePath)
	goRunner := &shadow.GoRunner{}
	goJSON, err := goRunner.Run(*casePath)
	if err != nil {
		logger.Error("Go analysis failed", "error", err)
		os.Exit(2)
	}

	if *goOnly {
		fmt.Println(string(goJSON))
		return
	}

	logger.Info("running legacy analysis", "node", *nodePath, "script", *scriptPath)
	legacyRunner := &shadow.LegacyRunner{
		NodePath:   *nodePath,
		ScriptPath: *scriptPath,
	}
	legacyJSON, err := legacyRunner.Run(ctx, *casePath)
	if err != nil {
		logger.Error("legacy analysis failed", "error", err)
		os.Exit(2)
	}

	result, err := shadow.Compare(goJSON, legacyJSON)
	if err != nil {
		logger.Error("comparison failed", "error", err)
		os.Exit(2)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("marshal result failed", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(out))

	if !result.AllMatch {
		logger.Warn("divergence detected", "summary", result.Summary)
		os.Exit(1)
	}

	logger.Info("all sections match")
}
