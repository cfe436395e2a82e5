package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ctypes/internal/builder"
	"ctypes/internal/diag"
	"ctypes/internal/layout"
	"ctypes/internal/printer"
	"ctypes/internal/source"
	"ctypes/internal/trace"
	"ctypes/internal/types"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <spec-file>",
	Short: "parse a toy specifier stream and dump the resulting type",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

// keywordTable maps the one-specifier-per-line vocabulary "dump" accepts
// onto the builder's Keyword enum. A real C front end would tokenize and
// feed Combine from its parser; this is the declarator-free slice of that
// that's enough to exercise every combine* path end to end.
var keywordTable = map[string]builder.Keyword{
	"signed":   builder.KwSigned,
	"unsigned": builder.KwUnsigned,
	"short":    builder.KwShort,
	"long":     builder.KwLong,
	"char":     builder.KwChar,
	"int":      builder.KwInt,
	"__int128": builder.KwInt128,
	"complex":  builder.KwComplex,
	"void":     builder.KwVoid,
	"bool":     builder.KwBool,
	"float":    builder.KwFloat,
	"double":   builder.KwDouble,
	"_fp16":    builder.KwFP16,
	"float80":  builder.KwFloat80,
	"float128": builder.KwFloat128,
	"nullptr_t": builder.KwNullptrT,
	"atomic":   builder.KwAtomicQualifier,
}

func runDump(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("ctypec dump: %w", err)
	}
	defer f.Close()

	tracer := trace.FromContext(cmd.Context())
	strs := source.NewInterner()
	arena := types.NewInterner(strs)
	b := builder.New(profile.Target, profile.LangOpts, tracer)
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		applySpecifierLine(b, strings.ToLower(line), rep)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("ctypec dump: %w", err)
	}

	ty, fatal := b.Finish(arena, rep)
	if fatal != nil {
		return fmt.Errorf("ctypec dump: %s", fatal.Error())
	}

	eng := layout.New(arena, profile.Target, profile.LangOpts).WithTracer(tracer)
	p := printer.New(arena, printer.DefaultMapper(strs), profile.LangOpts).WithSizer(eng.SizeOf)
	lay, layErr := eng.LayoutOf(ty)

	fmt.Fprintln(cmd.OutOrStdout(), p.Print(ty))
	fmt.Fprintln(cmd.OutOrStdout(), p.Dump(ty))
	switch {
	case layErr != nil:
		fmt.Fprintf(cmd.OutOrStdout(), "size=<unknown>: %s\n", layErr.Error())
	case lay.Ok:
		fmt.Fprintf(cmd.OutOrStdout(), "size=%d align=%d bits=%d\n", lay.SizeBytes, lay.Align, lay.SizeBits)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "size=<unknown>")
	}

	for _, d := range bag.Items() {
		printDiagnostic(cmd, d)
	}
	return nil
}

func applySpecifierLine(b *builder.Builder, line string, rep diag.Reporter) {
	switch {
	case line == "const":
		b.Quals.AddConst(source.Span{})
	case line == "volatile":
		b.Quals.AddVolatile(source.Span{})
	case line == "restrict":
		b.Quals.AddRestrict(source.Span{})
	case strings.HasPrefix(line, "_bitint("):
		body := strings.TrimSuffix(strings.TrimPrefix(line, "_bitint("), ")")
		n, err := strconv.Atoi(body)
		if err != nil {
			return
		}
		b.CombineBitInt(uint16(n), source.Span{}, rep)
	default:
		if kw, ok := keywordTable[line]; ok {
			b.Combine(kw, source.Span{}, rep)
		}
	}
}

func printDiagnostic(cmd *cobra.Command, d diag.Diagnostic) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", severityLabel(d.Severity), d.Code, d.Message)
}
