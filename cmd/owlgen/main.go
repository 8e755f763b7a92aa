package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/caprica-project/go-owlgen/pkg/dataset"
	"github.com/caprica-project/go-owlgen/pkg/orchestrator"
	"github.com/caprica-project/go-owlgen/pkg/schema"
)

type kindFlags struct {
	enabled    bool
	schemaPath string
	dataPath   string
}

// selected reports whether the kind takes part in the run: either enabled
// explicitly or implied by a schema/data override.
func (kf *kindFlags) selected() bool {
	return kf.enabled || kf.schemaPath != "" || kf.dataPath != ""
}

func selectedKinds(kinds []string, flags map[string]*kindFlags, all bool) []string {
	out := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if all || flags[kind].selected() {
			out = append(out, kind)
		}
	}
	return out
}

func main() {
	kinds := dataset.Kinds()
	flags := make(map[string]*kindFlags, len(kinds))
	for _, kind := range kinds {
		lower := strings.ToLower(kind)
		kf := &kindFlags{}
		flag.BoolVar(&kf.enabled, lower, false, "convert "+kind)
		flag.StringVar(&kf.schemaPath, lower+"-schema", "", kind+" schema path or URL (enables -"+lower+"; defaults to the published endpoint)")
		flag.StringVar(&kf.dataPath, lower+"-data", "", kind+" data path or URL (enables -"+lower+"; defaults to the published endpoint)")
		flags[kind] = kf
	}
	all := flag.Bool("all", false, "convert every dataset")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	selected := selectedKinds(kinds, flags, *all)
	if len(selected) == 0 {
		prompt := &survey.MultiSelect{
			Message: "Datasets to convert:",
			Options: kinds,
		}
		if err := survey.AskOne(prompt, &selected); err != nil {
			log.Fatalf("dataset selection failed: %v", err)
		}
		if len(selected) == 0 {
			log.Fatal("no dataset selected")
		}
	}

	ctx := context.Background()
	gen := orchestrator.New()

	for _, kind := range selected {
		d, err := dataset.Builtin(kind)
		if err != nil {
			log.Fatalf("%v", err)
		}
		req := orchestrator.Request{
			Dataset:      d,
			SchemaSource: parseSource(flags[kind].schemaPath),
			DataSource:   parseSource(flags[kind].dataPath),
		}
		out, err := gen.Generate(ctx, req)
		if err != nil {
			log.Fatalf("Failed to convert %s: %v", kind, err)
		}
		path := filepath.Join(*outDir, kind+".owx")
		if err := os.WriteFile(path, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Ontology written to %s\n", path)
	}
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}
