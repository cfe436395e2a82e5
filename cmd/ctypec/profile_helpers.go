package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ctypes/internal/catalog"
	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/types"
)

func resolveProfile(cmd *cobra.Command) (target.Profile, error) {
	profileFile, err := cmd.Root().PersistentFlags().GetString("profile-file")
	if err != nil {
		return target.Profile{}, fmt.Errorf("failed to get profile-file flag: %w", err)
	}

	var profile target.Profile
	if profileFile != "" {
		profile, err = target.LoadProfileFile(profileFile)
		if err != nil {
			return target.Profile{}, err
		}
	} else {
		triple, err := cmd.Root().PersistentFlags().GetString("target")
		if err != nil {
			return target.Profile{}, fmt.Errorf("failed to get target flag: %w", err)
		}
		var ok bool
		profile, ok = target.Lookup(triple)
		if !ok {
			return target.Profile{}, fmt.Errorf("unknown target %q (known: %v)", triple, target.Names())
		}
	}

	dialect, err := cmd.Root().PersistentFlags().GetString("dialect")
	if err != nil {
		return target.Profile{}, fmt.Errorf("failed to get dialect flag: %w", err)
	}
	if dialect != "" {
		d, err := target.ParseDialect(dialect)
		if err != nil {
			return target.Profile{}, err
		}
		profile.LangOpts.Dialect = d
	}
	return profile, nil
}

// buildCatalog constructs a fresh arena and its catalog.Build samples, so
// every subcommand sees the same type universe without sharing mutable state
// across invocations.
func buildCatalog() (*types.Interner, *source.Interner, []catalog.Sample) {
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	return in, strs, catalog.Build(in, strs)
}

func findSample(samples []catalog.Sample, name string) (catalog.Sample, bool) {
	for _, s := range samples {
		if s.Name == name {
			return s, true
		}
	}
	return catalog.Sample{}, false
}

func sampleNames(samples []catalog.Sample) []string {
	names := make([]string, len(samples))
	for i, s := range samples {
		names[i] = s.Name
	}
	return names
}
