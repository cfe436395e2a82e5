package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ctypes/internal/builder"
	"ctypes/internal/diag"
	"ctypes/internal/layout"
	"ctypes/internal/source"
	"ctypes/internal/trace"
	"ctypes/internal/types"
)

var sizeofCmd = &cobra.Command{
	Use:   "sizeof <type-expr>",
	Short: "print sizeof/alignof/bitSizeof for a type expression",
	Long: `sizeof accepts the same whitespace-separated specifier vocabulary as
"dump", but as a single argument instead of a file, e.g.:

  ctypec sizeof "unsigned long long const"
  ctypec sizeof "_BitInt(17)"

or, prefixed with "@", a catalog sample name (see "ctypec inspect"):

  ctypec sizeof @struct_bitfields`,
	Args: cobra.ExactArgs(1),
	RunE: runSizeof,
}

func runSizeof(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}

	tracer := trace.FromContext(cmd.Context())
	expr := args[0]
	var (
		ty   types.TypeID
		arena *types.Interner
	)

	if strings.HasPrefix(expr, "@") {
		in, _, samples := buildCatalog()
		sample, ok := findSample(samples, strings.TrimPrefix(expr, "@"))
		if !ok {
			return fmt.Errorf("ctypec sizeof: unknown catalog sample %q (known: %v)", expr, sampleNames(samples))
		}
		ty, arena = sample.Type, in
	} else {
		strs := source.NewInterner()
		arena = types.NewInterner(strs)
		b := builder.New(profile.Target, profile.LangOpts, tracer)
		bag := diag.NewBag(32)
		rep := diag.BagReporter{Bag: bag}
		for _, tok := range strings.Fields(strings.ToLower(expr)) {
			applySpecifierLine(b, tok, rep)
		}
		finished, fatal := b.Finish(arena, rep)
		if fatal != nil {
			return fmt.Errorf("ctypec sizeof: %s", fatal.Error())
		}
		ty = finished
	}

	eng := layout.New(arena, profile.Target, profile.LangOpts).WithTracer(tracer)
	lay, layErr := eng.LayoutOf(ty)
	if layErr != nil {
		return fmt.Errorf("ctypec sizeof: %s", layErr.Error())
	}
	if !lay.Ok {
		fmt.Fprintln(cmd.OutOrStdout(), "size=<unknown>")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sizeof=%d alignof=%d bitSizeof=%d\n", lay.SizeBytes, lay.Align, lay.SizeBits)
	return nil
}
