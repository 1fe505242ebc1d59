package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100

	profile = flag.String("profile", "", "write a CPU profile to this file")
	render  = flag.Bool("render", true, "print the result tables")
)

func main() {
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(false)

	benchmarkPropagate(*render)
	benchmarkPull(*render)
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendRow(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRow(table.Row{
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	})
}

func newSystem() *reactive.ReactiveSystem {
	return reactive.CreateReactiveSystem(reactive.WithErrorHandler(func(from string, err error) {
		log.Panicf("%s: %v", from, err)
	}))
}

// chain builds h memos on top of src, each adding one.
func chain(rs *reactive.ReactiveSystem, src *reactive.WritableSignal[int], h int) func() (int, error) {
	read := func() (int, error) { return src.Value(), nil }
	for j := 0; j < h; j++ {
		prev := read
		m := reactive.Memo(rs, func() (int, error) {
			v, err := prev()
			return v + 1, err
		})
		read = m.Value
	}
	return read
}

// benchmarkPropagate writes the source and drains w effects, each at the
// end of a chain of h memos.
func benchmarkPropagate(shouldRender bool) {
	tbl := newTable("Effects")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := newSystem()
			src := reactive.Signal(rs, 1)
			for i := 0; i < w; i++ {
				last := chain(rs, src, h)
				reactive.Effect(rs, func() (reactive.CleanupFunc, error) {
					_, err := last()
					return nil, err
				})
			}
			rs.Flush()

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.Set(src.Untracked() + 1); err != nil {
					log.Fatal(err)
				}
				rs.Flush()
				tach.AddTime(time.Since(start))
			}

			appendRow(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkPull reads the tails of memo chains without any effect, so every
// read walks the chain lazily.
func benchmarkPull(shouldRender bool) {
	tbl := newTable("Memos")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := newSystem()
			src := reactive.Signal(rs, 1)
			tails := make([]func() (int, error), w)
			for i := range tails {
				tails[i] = chain(rs, src, h)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.Set(i + 2); err != nil {
					log.Fatal(err)
				}
				for _, tail := range tails {
					if _, err := tail(); err != nil {
						log.Fatal(err)
					}
				}
				tach.AddTime(time.Since(start))
			}

			appendRow(tbl, fmt.Sprintf("pull: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
