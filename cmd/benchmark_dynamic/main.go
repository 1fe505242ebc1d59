package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting dynamic graph benchmark, please wait...")
	defer log.Print("Finished dynamic graph benchmark")

	perfTestCfgs := []benchmarkTestConfig{
		{
			name:           "simple component",
			width:          10,
			staticFraction: 1,
			nSources:       2,
			totalLayers:    5,
			readFraction:   0.2,
			iterations:     600000,
			expectedSum:    19199968,
		},
		{
			name:           "dynamic component",
			width:          10,
			totalLayers:    10,
			staticFraction: 0.75,
			nSources:       6,
			readFraction:   0.2,
			iterations:     15000,
			expectedSum:    302310782860,
		},
		{
			name:           "large web app",
			width:          1000,
			totalLayers:    12,
			staticFraction: 0.95,
			nSources:       4,
			readFraction:   1,
			iterations:     7000,
			expectedSum:    29355933696000,
		},
		{
			name:           "wide dense",
			width:          1000,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       25,
			readFraction:   1,
			iterations:     3000,
			expectedSum:    1171484375000,
		},
		{
			name:           "deep",
			width:          5,
			totalLayers:    500,
			staticFraction: 1,
			nSources:       3,
			readFraction:   1,
			iterations:     500,
			expectedSum:    3.0239642676898464e241,
		},
		{
			name:           "very dynamic",
			width:          100,
			totalLayers:    15,
			staticFraction: 0.5,
			nSources:       6,
			readFraction:   1,
			iterations:     2000,
			expectedSum:    15664996402790400,
		},
	}

	type results struct {
		sum      int
		count    int64
		duration time.Duration
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "recomputes",
		"updateRate", "sum", "title",
	})

	testRepeats := 5
	for _, cfg := range perfTestCfgs {
		log.Printf("Running '%s' config", cfg.name)

		runOnce := func() (int, int64) {
			var counter int64
			rs := reactive.CreateReactiveSystem()
			graph := benchmarkMakeGraph(rs, &cfg, &counter)
			return benchmarkRunGraph(graph, cfg.iterations, cfg.readFraction), counter
		}
		// warm up
		runOnce()

		best := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, testRepeats, (i+1)*100/testRepeats)
			start := time.Now()
			sum, count := runOnce()
			duration := time.Since(start)

			if duration < best.duration {
				best.duration = duration
				best.sum = sum
				best.count = count
			}
		}

		makeTitle := func() string {
			sb := strings.Builder{}
			sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
			if cfg.staticFraction < 1 {
				sb.WriteString(" dynamic")
			}
			if cfg.readFraction < 1 {
				sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
			}
			return sb.String()
		}

		sumCheck := "ok"
		if float64(best.sum) != cfg.expectedSum {
			sumCheck = fmt.Sprintf("%d != %g", best.sum, cfg.expectedSum)
			log.Printf("'%s' produced an unexpected sum: %s", cfg.name, sumCheck)
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(best.count),
			humanize.Comma(int64(updateRate)),
			sumCheck,
			makeTitle(),
		})
	}
	table.Render()
}

type benchmarkTestConfig struct {
	name           string  // unique name of the test
	width          int64   // width of the dependency graph
	totalLayers    int64   // depth of the dependency graph
	staticFraction float64 // fraction of nodes that always read all of their sources
	nSources       int64   // sources read by each node
	readFraction   float64 // fraction of the last layer read on each iteration
	iterations     int64
	expectedSum    float64 // sum of the read leaves after the last iteration
}

type benchmarkGraph struct {
	sources []*reactive.WritableSignal[int]
	layers  [][]reader
}

type reader func() int

func benchmarkMakeGraph(rs *reactive.ReactiveSystem, cfg *benchmarkTestConfig, counter *int64) *benchmarkGraph {
	sources := make([]*reactive.WritableSignal[int], cfg.width)
	prevRow := make([]reader, cfg.width)
	for i := range sources {
		sources[i] = reactive.Signal(rs, i)
		prevRow[i] = sources[i].Value
	}

	random := rand.New(rand.NewSource(0))
	layers := make([][]reader, cfg.totalLayers-1)
	for l := range layers {
		layers[l] = makeBenchmarkRow(rs, prevRow, cfg, counter, random)
		prevRow = layers[l]
	}
	return &benchmarkGraph{sources: sources, layers: layers}
}

// benchmarkRunGraph writes one of the sources per iteration and reads some
// or all of the leaves, returning the sum of the read leaves at the end.
func benchmarkRunGraph(graph *benchmarkGraph, iterations int64, readFraction float64) int {
	random := rand.New(rand.NewSource(0))
	leaves := graph.layers[len(graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := benchmarkRemoveElems(leaves, skipCount, random)

	for i := 0; i < int(iterations); i++ {
		sourceDex := i % len(graph.sources)
		if err := graph.sources[sourceDex].Set(i + sourceDex); err != nil {
			log.Fatal(err)
		}
		for _, leaf := range readLeaves {
			leaf()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf()
	}
	return sum
}

func benchmarkRemoveElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}

func makeBenchmarkRow(rs *reactive.ReactiveSystem, sources []reader, cfg *benchmarkTestConfig, counter *int64, random *rand.Rand) []reader {
	row := make([]reader, len(sources))

	for myDex := range sources {
		mySources := make([]reader, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		var m *reactive.MemoizedSignal[int]
		if random.Float64() < cfg.staticFraction {
			m = reactive.Memo(rs, func() (int, error) {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source()
				}
				return sum, nil
			})
		} else {
			first, tail := mySources[0], mySources[1:]
			m = reactive.Memo(rs, func() (int, error) {
				*counter++
				sum := first()
				shouldDrop := sum&0x1 > 0
				dropDex := sum % len(tail)

				for i := range tail {
					if shouldDrop && i == dropDex {
						continue
					}
					sum += tail[i]()
				}
				return sum, nil
			})
		}
		row[myDex] = func() int {
			v, err := m.Value()
			if err != nil {
				log.Fatal(err)
			}
			return v
		}
	}

	return row
}
