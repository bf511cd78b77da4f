package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/heredity"
	"github.com/carbocation/pfx"
)

func main() {
	cfg, err := ParseEnv()
	if err != nil {
		log.Fatalln(err)
	}

	workers := flag.Int("workers", cfg.Workers, "Number of goroutines evaluating configurations. 0 means one per CPU")
	dbPath := flag.String("db", cfg.DB, "Optional sqlite database to store pedigrees and results in")
	save := flag.String("save", "", "Store the pedigree and its posteriors in -db under this name")
	fromDB := flag.String("from-db", "", "Read the pedigree stored in -db under this name instead of a CSV")
	mutation := flag.Float64("mutation", cfg.Mutation, "Probability that a transmitted allele mutates")
	verbose := flag.Bool("verbose", false, "Log inference progress")
	flag.Parse()

	if flag.NArg() != 1 && *fromDB == "" {
		flag.PrintDefaults()
		log.Fatalln("Usage: heredity [flags] data.csv")
	}
	if (*save != "" || *fromDB != "") && *dbPath == "" {
		log.Fatalln("-save and -from-db require -db")
	}

	ctx := context.Background()

	var store *heredity.Store
	if *dbPath != "" {
		store, err = heredity.OpenStore(expandHome(*dbPath))
		if err != nil {
			log.Fatalln(err)
		}
		defer store.Close()
	}

	var pedigree *heredity.Pedigree
	if *fromDB != "" {
		pedigree, err = store.LoadPedigree(*fromDB)
	} else {
		pedigree, err = heredity.LoadPedigree(ctx, expandHome(flag.Arg(0)))
	}
	if err != nil {
		log.Fatalln(err)
	}

	def := heredity.DefaultModel()
	model, err := heredity.NewModel(def.GenePrior, def.TraitGivenGene, *mutation)
	if err != nil {
		log.Fatalln(err)
	}

	opts := []heredity.Option{
		heredity.WithModel(model),
		heredity.WithWorkers(*workers),
	}
	if *verbose {
		opts = append(opts, heredity.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	result, err := heredity.Infer(ctx, pedigree, opts...)
	if err != nil {
		log.Fatalln(err)
	}

	if err := heredity.WriteReport(os.Stdout, result); err != nil {
		log.Fatalln(err)
	}

	if *save != "" {
		if err := store.SavePedigree(*save, pedigree); err != nil {
			log.Fatalln(err)
		}
		runID, err := store.SaveResult(*save, result)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Saved run", runID, "for pedigree", *save, "using the", heredity.WhichSQLiteDriver(), "driver")
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	return filepath.Join(usr.HomeDir, path[2:])
}
