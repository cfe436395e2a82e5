package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ctypes/internal/layout"
	"ctypes/internal/printer"
	"ctypes/internal/trace"
	"ctypes/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "browse the built-in sample catalog's types and layouts",
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("ctypec inspect: requires an interactive terminal")
	}

	in, strs, samples := buildCatalog()
	eng := layout.New(in, profile.Target, profile.LangOpts).WithTracer(trace.FromContext(cmd.Context()))
	p := printer.New(in, printer.DefaultMapper(strs), profile.LangOpts).WithSizer(eng.SizeOf)

	entries := ui.BuildInspectEntries(samples, p, eng)
	model := ui.NewInspectModel(fmt.Sprintf("ctypec inspect: %s", profile.Target.Triple), entries)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ctypec inspect: %w", err)
	}
	return nil
}
