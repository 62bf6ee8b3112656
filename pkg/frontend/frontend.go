// Package frontend runs source text through the lexer, the parser and the
// semantic passes and reports the first error with its stage.
package frontend

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"asmfront/pkg/lexer"
	"asmfront/pkg/parser"
	"asmfront/pkg/sema"
)

// Source is one named piece of assembly text.
type Source struct {
	Name string
	Text string
}

// Options tunes a pipeline run. The zero value is silent.
type Options struct {
	// Logger receives one line when a stage starts and one when it
	// succeeds. Nil disables logging.
	Logger *log.Logger
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// Unit holds every intermediate product of a successful run.
type Unit struct {
	Source  Source
	Tokens  []lexer.Token
	CST     *parser.Node
	File    *sema.File // resolved
	Elapsed time.Duration
}

// Process lexes, parses, builds and resolves src. On failure the stage
// error is wrapped with the source name; use Stage or errors.Cause to get
// it back.
func Process(src Source, opts Options) (*Unit, error) {
	start := time.Now()
	u := &Unit{Source: src}

	opts.logf("%s: *** Starting lexical analysis.", src.Name)
	tokens, err := lexer.Tokenise(src.Text)
	if err != nil {
		return nil, errors.Wrap(err, src.Name)
	}
	u.Tokens = tokens
	opts.logf("%s: *** Lexer success (%d tokens, %v).", src.Name, len(tokens), time.Since(start))

	opts.logf("%s: *** Starting syntactic analysis.", src.Name)
	t := time.Now()
	root, err := parser.Parse(tokens)
	if err != nil {
		return nil, errors.Wrap(err, src.Name)
	}
	u.CST = root
	opts.logf("%s: *** Syntactic analysis success (%v).", src.Name, time.Since(t))

	opts.logf("%s: *** Starting semantic analysis.", src.Name)
	t = time.Now()
	f := sema.Build(root)
	if err := sema.Resolve(f); err != nil {
		return nil, errors.Wrap(err, src.Name)
	}
	u.File = f
	opts.logf("%s: *** Semantic analysis success (%d statements, %v).", src.Name, len(f.Statements), time.Since(t))

	u.Elapsed = time.Since(start)
	return u, nil
}

// Report is the outcome of processing one source in ProcessAll. Exactly one
// of Unit and Err is set.
type Report struct {
	Source Source
	Unit   *Unit
	Err    error
}

// ProcessAll runs Process over srcs with at most jobs files in flight
// (unlimited when jobs <= 0). Files share no state. Reports come back in
// the order of srcs; a failing file does not stop the others. The returned
// error is only set when ctx is done before every file was processed.
func ProcessAll(ctx context.Context, srcs []Source, jobs int, opts Options) ([]Report, error) {
	reports := make([]Report, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u, err := Process(src, opts)
			reports[i] = Report{Source: src, Unit: u, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "process")
	}
	return reports, nil
}
