package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/delaneyj/signalgraph/i18n"
	"github.com/delaneyj/signalgraph/internal/config"
	"github.com/delaneyj/signalgraph/pkg/metrics"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/fsnotify/fsnotify"
	"github.com/jedib0t/go-pretty/v6/table"
)

func runParse(w io.Writer, raw string) error {
	msg, err := i18n.Parse(raw)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle(raw)
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"#", "kind", "key", "detail"})
	for i, part := range msg {
		row := table.Row{i, part.Kind()}
		switch p := part.(type) {
		case i18n.TextPart:
			row = append(row, "", fmt.Sprintf("%q", p.Content))
		case i18n.ParameterPart:
			row = append(row, p.Key, parameterDetail(p))
		case i18n.PluralPart:
			row = append(row, p.Key, pluralDetail(p))
		}
		tbl.AppendRow(row)
	}
	tbl.AppendFooter(table.Row{"", "", "needs args", msg.NeedsArgs()})
	tbl.Render()
	return nil
}

func parameterDetail(p i18n.ParameterPart) string {
	parts := []string{"type=" + p.Type}
	if p.Optional {
		parts = append(parts, "optional")
	}
	for _, t := range p.Transforms {
		switch t := t.(type) {
		case i18n.FormatterTransform:
			parts = append(parts, "|"+t.Name)
		case i18n.SwitchCaseTransform:
			cases := make([]string, 0, len(t.Cases))
			for _, c := range t.Cases {
				cases = append(cases, c.Key+"="+c.Value)
			}
			parts = append(parts, "|switch("+strings.Join(cases, "; ")+")")
		}
	}
	return strings.Join(parts, " ")
}

func pluralDetail(p i18n.PluralPart) string {
	var parts []string
	add := func(name string, v *string) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%q", name, *v))
		}
	}
	add("zero", p.Zero)
	add("one", p.One)
	add("two", p.Two)
	add("few", p.Few)
	add("many", p.Many)
	add("other", &p.Other)
	return strings.Join(parts, " ")
}

func runKeys(w io.Writer, cat *i18n.Catalog, locale, namespace string) error {
	translators, err := cat.Translations(locale, namespace)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("%s / %s", locale, namespace))
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"key", "rendered without arguments"})
	for _, key := range slices.Sorted(maps.Keys(translators)) {
		s, err := translators[key](nil)
		if err != nil {
			s = "(" + err.Error() + ")"
		}
		tbl.AppendRow(table.Row{key, s})
	}
	tbl.Render()
	return nil
}

type watchOptions struct {
	cfg       *config.Config
	logger    *slog.Logger
	collector *metrics.Collector
	key       string
	args      i18n.Args
	// ready is closed once the resources are watched
	ready chan struct{}
}

// runWatch renders the key through an effect and reloads the catalog when a
// resource changes. Everything touching the graph runs on this goroutine.
func runWatch(ctx context.Context, w io.Writer, opts watchOptions) error {
	cfg, logger := opts.cfg, opts.logger

	var catalogOpts []i18n.Option
	var systemOpts []reactive.SystemOption
	if opts.collector != nil {
		catalogOpts = append(catalogOpts, i18n.WithObserver(opts.collector))
		systemOpts = append(systemOpts, reactive.WithObserver(opts.collector))
	}
	cat, err := cfg.Catalog(logger, catalogOpts...)
	if err != nil {
		return err
	}

	sched := reactive.NewChannelScheduler(16)
	rs := reactive.CreateReactiveSystem(append(systemOpts,
		reactive.WithScheduler(sched),
		reactive.WithLogger(logger),
		reactive.WithErrorHandler(func(from string, err error) {
			logger.Error("render failed", "effect", from, "key", opts.key, "error", err)
		}),
	)...)

	generation := reactive.Signal(rs, 0, reactive.WithID[int]("generation"))
	rendered := reactive.Memo(rs, func() (string, error) {
		generation.Value()
		return cat.Translate(cfg.Locale, cfg.Namespace, opts.key, opts.args)
	}, reactive.WithID[string]("rendered"))
	effect := reactive.Effect(rs, func() (reactive.CleanupFunc, error) {
		s, err := rendered.Value()
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintln(w, s)
		return nil, err
	})
	defer effect.Destroy()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, r := range cfg.Resources {
		if err := watcher.Add(r); err != nil {
			return fmt.Errorf("watch %s: %w", r, err)
		}
	}
	if opts.ready != nil {
		close(opts.ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case task := <-sched.C:
			task()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !i18n.IsResourceFile(ev.Name) {
				continue
			}
			logger.Debug("resource changed", "file", filepath.Base(ev.Name), "op", ev.Op.String())
			cat.Clear()
			if err := cfg.LoadResources(cat); err != nil {
				logger.Error("reload failed", "error", err)
			}
			if err := generation.Update(func(g int) int { return g + 1 }); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher failed", "error", err)
		}
	}
}
