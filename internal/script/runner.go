package script

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"lfucache/internal/cache"
	"lfucache/internal/logging"
)

// Cache is the part of the cache API a script can reach.
type Cache interface {
	Put(key, value string) error
	Get(key string) (string, bool)
	Snapshot() []cache.Entry[string, string]
	Stats() cache.Stats
}

// Renderer formats a snapshot for the dump operation.
type Renderer func(entries []cache.Entry[string, string]) string

// Runner executes parsed operations against a cache, writing results to Out.
type Runner struct {
	Cache  Cache
	Out    io.Writer
	Render Renderer // nil means PlainText
}

//go:embed demo.lfu
var demo string

// Demo returns the built-in demonstration script.
func Demo() []Op {
	ops, err := Parse(strings.NewReader(demo))
	if err != nil {
		panic(fmt.Sprintf("embedded demo script: %v", err))
	}
	return ops
}

// Run executes ops in order. It stops at the first failing put or when ctx
// is done.
func (r *Runner) Run(ctx context.Context, ops []Op) error {
	log := logging.FromContext(ctx)
	render := r.Render
	if render == nil {
		render = PlainText
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug().Int("line", op.Line).Stringer("op", op.Kind).Str("key", op.Key).Msg("run")

		switch op.Kind {
		case KindEcho:
			fmt.Fprintln(r.Out, op.Value)
		case KindPut:
			if err := r.Cache.Put(op.Key, op.Value); err != nil {
				return fmt.Errorf("line %d: put %s: %w", op.Line, op.Key, err)
			}
		case KindGet:
			v, ok := r.Cache.Get(op.Key)
			if !ok {
				v = "(nil)"
			}
			fmt.Fprintf(r.Out, "%s: %s\n", op.Key, v)
		case KindDump:
			fmt.Fprintln(r.Out, "Current cache:")
			fmt.Fprint(r.Out, render(r.Cache.Snapshot()))
		case KindStats:
			st := r.Cache.Stats()
			fmt.Fprintf(r.Out, "hits=%d misses=%d inserts=%d updates=%d evictions=%d hit_ratio=%.2f\n",
				st.Hits, st.Misses, st.Inserts, st.Updates, st.Evictions, st.HitRatio())
		default:
			return fmt.Errorf("line %d: %w %v", op.Line, ErrUnknownVerb, op.Kind)
		}
	}
	return nil
}

// PlainText renders one "key: value (usage count: n)" line per entry,
// most recently inserted first.
func PlainText(entries []cache.Entry[string, string]) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s (usage count: %d)\n", e.Key, e.Value, e.Uses)
	}
	return b.String()
}
