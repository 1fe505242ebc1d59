package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/delaneyj/signalgraph/cmd/codegen/templates"
	"github.com/delaneyj/signalgraph/i18n"
	"github.com/urfave/cli/v3"
)

const (
	packageKey = "package"
	outputKey  = "output"
)

func main() {
	cmd := &cli.Command{
		Name:      "generate",
		Usage:     "Generate a Go catalog from translation resources",
		ArgsUsage: "<file or directory>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  packageKey,
				Usage: "Package name of the generated file",
				Value: "translations",
			},
			&cli.StringFlag{
				Name:    outputKey,
				Aliases: []string{"o"},
				Usage:   "File to write",
				Value:   "translations/catalog.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for translations started !")
	defer func() {
		log.Printf("Codegen for translations finished in %v", time.Since(start))
	}()

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no resources given")
	}

	var resources []i18n.Resource
	for _, path := range cmd.Args().Slice() {
		rs, err := readPath(path)
		if err != nil {
			return err
		}
		resources = append(resources, rs...)
	}
	log.Printf("Read %d resources", len(resources))

	keys, catalog, err := templates.Prepare(resources)
	if err != nil {
		return err
	}

	src, err := format.Source([]byte(templates.CatalogGen(cmd.String(packageKey), keys, catalog)))
	if err != nil {
		return fmt.Errorf("format generated code: %w", err)
	}

	output := cmd.String(outputKey)
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}
	return os.WriteFile(output, src, 0644)
}

func readPath(path string) ([]i18n.Resource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return i18n.ReadResources(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var resources []i18n.Resource
	for _, entry := range entries {
		if entry.IsDir() || !i18n.IsResourceFile(entry.Name()) {
			continue
		}
		rs, err := i18n.ReadResources(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		resources = append(resources, rs...)
	}
	return resources, nil
}
