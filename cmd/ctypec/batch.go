package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ctypes/internal/builder"
	"ctypes/internal/catalog"
	"ctypes/internal/diag"
	"ctypes/internal/driver"
	"ctypes/internal/layout"
	"ctypes/internal/source"
	"ctypes/internal/trace"
	"ctypes/internal/types"
	"ctypes/internal/ui"
)

type batchOutcome struct {
	results []driver.Result
	err     error
}

var batchJobs int

func init() {
	batchCmd.Flags().IntVar(&batchJobs, "jobs", 0, "max concurrent layouts (default GOMAXPROCS)")
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "lay out every *.spec file in a directory concurrently",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}

	entries, err := filepath.Glob(filepath.Join(args[0], "*.spec"))
	if err != nil {
		return fmt.Errorf("ctypec batch: %w", err)
	}
	sort.Strings(entries)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "ctypec batch: no *.spec files found")
		return nil
	}

	tracer := trace.FromContext(cmd.Context())
	strs := source.NewInterner()
	arena := types.NewInterner(strs)
	bag := diag.NewBag(256)
	rep := diag.BagReporter{Bag: bag}

	samples := make([]catalog.Sample, 0, len(entries))
	for _, path := range entries {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("ctypec batch: %w", err)
		}
		b := builder.New(profile.Target, profile.LangOpts, tracer)
		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			applySpecifierLine(b, strings.ToLower(line), rep)
		}
		ty, fatal := b.Finish(arena, rep)
		if fatal != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, fatal.Error())
			continue
		}
		samples = append(samples, catalog.Sample{Name: filepath.Base(path), Type: ty})
	}

	eng := layout.New(arena, profile.Target, profile.LangOpts).WithTracer(tracer)

	names := make([]string, len(samples))
	for i, s := range samples {
		names[i] = s.Name
	}

	var results []driver.Result
	if isTerminal(os.Stdout) {
		events := make(chan driver.Event, len(samples))
		outcomeCh := make(chan batchOutcome, 1)
		go func() {
			r, err := driver.Batch(context.Background(), eng, samples, batchJobs, events)
			outcomeCh <- batchOutcome{results: r, err: err}
			close(events)
		}()

		model := ui.NewProgressModel(fmt.Sprintf("batch: %s", profile.Target.Triple), names, events)
		program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
		_, uiErr := program.Run()
		outcome := <-outcomeCh
		if uiErr != nil {
			return fmt.Errorf("ctypec batch: %w", uiErr)
		}
		if outcome.err != nil {
			return fmt.Errorf("ctypec batch: %w", outcome.err)
		}
		results = outcome.results
	} else {
		results, err = driver.Batch(context.Background(), eng, samples, batchJobs, nil)
		if err != nil {
			return fmt.Errorf("ctypec batch: %w", err)
		}
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s error: %s\n", r.Name, r.Err.Error())
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s size=%-6d align=%-4d bits=%d\n", r.Name, r.Layout.SizeBytes, r.Layout.Align, r.Layout.SizeBits)
	}
	for _, d := range bag.Items() {
		printDiagnostic(cmd, d)
	}
	return nil
}
