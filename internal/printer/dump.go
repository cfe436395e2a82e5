package printer

import (
	"fmt"
	"strings"

	"ctypes/internal/types"
)

// Dump renders ty as a depth-indented diagnostic tree showing every
// specifier/qualifier/payload field the engine tracks, rather than the
// surface C syntax Print produces. Used by the CLI's "inspect"/"dump"
// subcommands, the way a compiler's
// -ast-dump flag complements its normal -E/-S output.
func (p *Printer) Dump(ty types.TypeID) string {
	var sb strings.Builder
	p.dumpNode(&sb, ty, 0)
	return sb.String()
}

func (p *Printer) dumpNode(sb *strings.Builder, ty types.TypeID, depth int) {
	indent := strings.Repeat("  ", depth)
	if depth > maxDepth {
		sb.WriteString(indent + "...\n")
		return
	}
	t, ok := p.Types.Lookup(ty)
	if !ok {
		fmt.Fprintf(sb, "%s<invalid #%d>\n", indent, ty)
		return
	}

	fmt.Fprintf(sb, "%s%s", indent, t.Specifier)
	if q := qualSuffix(t.Quals); q != "" {
		fmt.Fprintf(sb, " quals=[%s]", strings.TrimSpace(q))
	}

	switch {
	case t.Specifier == types.Pointer:
		sb.WriteString("\n")
		p.dumpNode(sb, t.Elem, depth+1)
	case types.IsArrayKind(t.Specifier):
		if info, ok := p.Types.ArrayInfo(ty); ok {
			fmt.Fprintf(sb, " len=%d", info.Len)
		}
		sb.WriteString("\n")
		p.dumpNode(sb, t.Elem, depth+1)
	case isFuncKind(t.Specifier):
		ret, _ := types.ReturnType(p.Types, ty)
		params, _ := types.Params(p.Types, ty)
		fmt.Fprintf(sb, " params=%d\n", len(params))
		for i, param := range params {
			name := "?"
			if n, ok := p.Mapper.Name(param.Name); ok {
				name = n
			}
			fmt.Fprintf(sb, "%s  param[%d] %s:\n", indent, i, name)
			p.dumpNode(sb, param.Type, depth+2)
		}
		fmt.Fprintf(sb, "%sreturn:\n", indent)
		p.dumpNode(sb, ret, depth+1)
	case t.Specifier == types.Attributed:
		if info, ok := p.Types.AttributedInfo(ty); ok {
			fmt.Fprintf(sb, " attrs=%d\n", len(info.Attrs))
			p.dumpNode(sb, info.Base, depth+1)
		} else {
			sb.WriteString("\n")
		}
	case t.Specifier == types.TypeofType, t.Specifier == types.DecayedTypeofType:
		sb.WriteString(" typeof-type\n")
		p.dumpNode(sb, t.Elem, depth+1)
	case t.Specifier == types.TypeofExpr, t.Specifier == types.DecayedTypeofExpr:
		sb.WriteString(" typeof-expr\n")
	case t.Specifier == types.StructTy || t.Specifier == types.UnionTy:
		if info, ok := p.Types.RecordInfo(ty); ok {
			fmt.Fprintf(sb, " name=%s complete=%v fields=%d\n", p.tagName(ty), info.Complete, len(info.Fields))
		} else {
			sb.WriteString("\n")
		}
	case t.Specifier == types.EnumTy:
		if info, ok := p.Types.EnumInfo(ty); ok {
			fmt.Fprintf(sb, " name=%s complete=%v fields=%d\n", p.tagName(ty), info.Complete, len(info.Fields))
		} else {
			sb.WriteString("\n")
		}
	case t.Specifier == types.BitInt || t.Specifier == types.ComplexBitInt:
		if info, ok := p.Types.BitIntInfo(ty); ok {
			fmt.Fprintf(sb, " bits=%d signed=%v\n", info.Bits, info.Signed)
		} else {
			sb.WriteString("\n")
		}
	default:
		sb.WriteString("\n")
	}
}
