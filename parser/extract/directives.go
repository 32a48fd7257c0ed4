package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/model"
	"github.com/misha-mad/vercel-rpc-sub000/parser/syntax"
)

const (
	queryAttr    = "rpc_query"
	mutationAttr = "rpc_mutation"
)

// rpcAttr finds the procedure attribute on a function.
func rpcAttr(attrs syntax.Attrs) (syntax.Attribute, model.ProcedureKind, bool) {
	for _, attr := range attrs {
		switch attr.BaseName() {
		case queryAttr:
			return attr, model.Query, true
		case mutationAttr:
			return attr, model.Mutation, true
		}
	}
	return syntax.Attribute{}, model.Query, false
}

// procedureOptions are the arguments of #[rpc_query(...)] / #[rpc_mutation(...)]
// that matter to generated types.
type procedureOptions struct {
	Timeout    time.Duration
	Idempotent bool
	Init       bool
}

func (x *extractor) parseProcedureOptions(attr syntax.Attribute, kind model.ProcedureKind, item string) procedureOptions {
	var opts procedureOptions
	switch attr.Kind {
	case syntax.MetaPath:
		return opts
	case syntax.MetaList:
	default:
		x.warn(attr.Line, item, diag.KindStructure, "cannot read arguments of #[%s]: %s", attr.BaseName(), attrText(attr))
		return opts
	}

	for _, m := range attr.List {
		switch m.Path {
		case "timeout":
			v, ok := x.stringValue(m, attr.Line, item)
			if !ok {
				continue
			}
			d, err := ParseDuration(v)
			if err != nil {
				x.warn(attr.Line, item, diag.KindDirective, "%v, timeout ignored", err)
				continue
			}
			opts.Timeout = d

		case "idempotent":
			if kind != model.Mutation {
				x.warn(attr.Line, item, diag.KindDirective, "idempotent is only valid on mutations, ignored")
				continue
			}
			if m.Kind == syntax.MetaNameValue && m.Value.Kind == syntax.LitBool {
				opts.Idempotent = m.Value.Text == "true"
				continue
			}
			opts.Idempotent = true

		case "cache", "stale":
			if kind != model.Query {
				x.warn(attr.Line, item, diag.KindDirective, "%s is only valid on queries, ignored", m.Path)
			}

		case "init":
			opts.Init = true

		default:
			x.warn(attr.Line, item, diag.KindDirective, "unknown #[%s] argument %q", attr.BaseName(), m.Path)
		}
	}
	return opts
}

// ParseDuration reads a positive whole number with an s, m, h or d suffix.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("duration cannot be empty")
	}

	var unit time.Duration
	switch s[len(s)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return 0, errors.Newf("invalid duration suffix in %q, expected s/m/h/d", s)
	}

	n, err := strconv.ParseUint(s[:len(s)-1], 10, 32)
	if err != nil {
		return 0, errors.Newf("invalid number in duration %q", s)
	}
	if n == 0 {
		return 0, errors.Newf("duration cannot be zero: %q", s)
	}
	return time.Duration(n) * unit, nil
}

// docs joins doc lines with one leading space stripped from each. Hidden docs
// and docs with only blank lines yield "".
func docs(attrs syntax.Attrs) string {
	lines, hidden := attrs.Docs()
	if hidden {
		return ""
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimPrefix(line, " "), " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
