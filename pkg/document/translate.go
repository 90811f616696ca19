package document

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/mathlist"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

// Options controls a Translator.
type Options struct {
	// Layout is passed to the layout engine. Location is set per formula.
	Layout layout.Options

	// Parse is passed to the formula parser.
	Parse texmath.Options

	// DisplayAll renders every formula in display style.
	DisplayAll bool

	// Trace, if set, receives the layout passes of every formula.
	Trace func(f *Formula, pass layout.PassTrace)
}

// Translator turns the formulas of a document into laid-out math lists.
// A Translator holds no mutable state and may be shared between goroutines.
type Translator struct {
	opts Options
}

// NewTranslator creates a translator.
func NewTranslator(opts Options) *Translator {
	return &Translator{opts: opts}
}

// FormulaResult is the outcome of one formula.
type FormulaResult struct {
	Formula *Formula

	// ID is the document-unique identifier of the formula ("f1", "f2" ...).
	ID string

	// Math is the laid-out list, nil when Err is set.
	Math *mathlist.List

	// Layout summarizes the layout passes.
	Layout layout.Result

	Err error
}

// Translation is a translated document.
type Translation struct {
	Document    *Document
	Formulas    []FormulaResult
	Diagnostics []Diagnostic

	// DisplayAll mirrors Options.DisplayAll for the writer.
	DisplayAll bool
}

// Stats counts the work done on a document.
type Stats struct {
	Formulas int
	Failed   int
	Groups   int
	Passes   int
}

// Stats summarizes the translation.
func (t *Translation) Stats() Stats {
	var s Stats
	for _, r := range t.Formulas {
		s.Formulas++
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Groups += r.Layout.Groups
		s.Passes += r.Layout.Passes
	}
	return s
}

// Translate translates every formula of doc. A formula that fails is
// recorded with its error and a diagnostic; the returned error is only set
// when ctx is cancelled.
func (tr *Translator) Translate(ctx context.Context, doc *Document) (*Translation, error) {
	out := &Translation{Document: doc, DisplayAll: tr.opts.DisplayAll}

	for i, f := range doc.Formulas() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("translate %s: %w", doc.Path, err)
		}

		res := tr.TranslateFormula(doc.Path, f)
		res.ID = "f" + strconv.Itoa(i+1)
		if res.Err != nil {
			out.Diagnostics = append(out.Diagnostics, formulaDiagnostic(doc.Path, f, res.Err))
		}
		out.Formulas = append(out.Formulas, res)
	}
	return out, nil
}

// TranslateFormula parses and lays out one formula of the document at path.
func (tr *Translator) TranslateFormula(path string, f *Formula) FormulaResult {
	res := FormulaResult{Formula: f}

	list, err := texmath.Parse(f.Source, tr.opts.Parse)
	if err != nil {
		res.Err = err
		return res
	}

	opts := tr.opts.Layout
	opts.Location = layout.Location{Source: path, Line: f.Line, Column: f.Column}
	if tr.opts.Trace != nil {
		opts.Trace = func(pt layout.PassTrace) { tr.opts.Trace(f, pt) }
	}

	out, lres, err := layout.ApplyTree(list, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Math = out
	res.Layout = lres
	return res
}

// formulaDiagnostic converts a formula error into a diagnostic located in
// the document.
func formulaDiagnostic(path string, f *Formula, err error) Diagnostic {
	d := Diagnostic{
		Path:     path,
		Line:     f.Line,
		Column:   f.Column,
		Severity: SeverityError,
		Message:  err.Error(),
		Formula:  strings.TrimSpace(f.Source),
	}

	var perr *texmath.ParseError
	switch {
	case errors.As(err, &perr):
		d.Cause = CauseParse
		d.Message = perr.Msg
		if perr.Pos.IsValid() {
			d.Line, d.Column = f.Locate(perr.Pos.Line, perr.Pos.Column)
		}
	case errors.Is(err, layout.ErrLayoutInvariant):
		d.Cause = CauseLayout
	default:
		d.Cause = CauseInternal
	}
	return d
}
