package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/heredity"
	"github.com/carbocation/pfx"
)

func main() {
	path := flag.String("db", "", "Filename of the sqlite database written by heredity -save")
	pedigree := flag.String("pedigree", "", "Name of the stored pedigree whose runs to list")
	runID := flag.Int64("run", 0, "If set, print the posteriors of this run")
	flag.Parse()

	if *path == "" || (*pedigree == "" && *runID == 0) {
		flag.PrintDefaults()
		log.Fatalln("-db and one of -pedigree or -run are required")
	}

	if strings.HasPrefix(*path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		*path = filepath.Join(usr.HomeDir, (*path)[2:])
	}

	store, err := heredity.OpenStore(*path)
	if err != nil {
		log.Fatalln(err)
	}
	defer store.Close()

	if *runID != 0 {
		result, err := store.LoadResult(*runID)
		if err != nil {
			log.Fatalln(err)
		}
		if err := heredity.WriteReport(os.Stdout, result); err != nil {
			log.Fatalln(err)
		}
		return
	}

	runs, err := store.Runs(*pedigree)
	if err != nil {
		log.Fatalln(err)
	}
	for _, run := range runs {
		fmt.Printf("%d) %s %d configurations\n", run.ID, run.CreatedAt, run.Configurations)
	}

	log.Println("Saw", len(runs), "runs for", *pedigree)
}
