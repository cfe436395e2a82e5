package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ctypes/internal/driver"
	"ctypes/internal/layout"
	"ctypes/internal/trace"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "export/import the catalog's computed layouts as a disk cache",
}

var cacheExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "lay out the built-in catalog and write it to path via msgpack",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheExport,
}

var cacheImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "read a previously exported cache and print its entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheImport,
}

func init() {
	cacheCmd.AddCommand(cacheExportCmd)
	cacheCmd.AddCommand(cacheImportCmd)
}

func runCacheExport(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}
	in, _, samples := buildCatalog()
	eng := layout.New(in, profile.Target, profile.LangOpts).WithTracer(trace.FromContext(cmd.Context()))

	results, err := driver.Batch(context.Background(), eng, samples, 0, nil)
	if err != nil {
		return fmt.Errorf("ctypec cache export: %w", err)
	}

	payload := &driver.ReportPayload{
		Target:  profile.Target.Triple,
		Lang:    profile.LangOpts.DialectKind().String(),
		Results: toReportEntries(results),
	}
	if err := driver.ExportTo(args[0], payload); err != nil {
		return fmt.Errorf("ctypec cache export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", len(payload.Results), args[0])
	return nil
}

func runCacheImport(cmd *cobra.Command, args []string) error {
	payload, err := driver.ImportFrom(args[0])
	if err != nil {
		return fmt.Errorf("ctypec cache import: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "target=%s lang=%s entries=%d\n", payload.Target, payload.Lang, len(payload.Results))
	for _, e := range payload.Results {
		if !e.Ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s error: %s\n", e.Name, e.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s size=%-6d align=%-4d bits=%d\n", e.Name, e.SizeBytes, e.Align, e.SizeBits)
	}
	return nil
}

func toReportEntries(results []driver.Result) []driver.ReportEntry {
	entries := make([]driver.ReportEntry, len(results))
	for i, r := range results {
		e := driver.ReportEntry{Name: r.Name, Ok: r.Err == nil}
		if r.Err != nil {
			e.Err = r.Err.Error()
		} else {
			e.SizeBytes, e.SizeBits, e.Align = r.Layout.SizeBytes, r.Layout.SizeBits, r.Layout.Align
		}
		entries[i] = e
	}
	return entries
}
