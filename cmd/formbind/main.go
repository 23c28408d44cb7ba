// Package main provides the CLI entrypoint for formbind.
//
// formbind vets YAML schema definition files: it parses each file and
// reports structural diagnostics (duplicate names, unresolved references,
// unknown kinds, reference cycles) without needing the checker/populator
// registry, which only exists in code.
package main

import (
	"flag"
	"fmt"
	"os"

	"formbind/schemafile"
)

func main() {
	quiet := flag.Bool("q", false, "suppress warnings, report errors only")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	failed := false

	for _, path := range flag.Args() {
		if !vet(path, *quiet) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func vet(path string, quiet bool) bool {
	f, err := schemafile.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	diags := schemafile.Validate(f)

	if !quiet {
		for _, w := range diags.Warnings {
			fmt.Fprintf(os.Stderr, "%s: warning: %s\n", path, w)
		}
	}

	for _, e := range diags.Errors {
		fmt.Fprintf(os.Stderr, "%s: error: %s\n", path, e)
	}

	if diags.HasErrors() {
		return false
	}

	fmt.Printf("%s: %d schema(s) ok\n", path, len(f.Schemas))

	return true
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: formbind [-q] schema.yaml [schema.yaml ...]")
	fmt.Fprintln(os.Stderr, "vets formbind YAML schema definition files")
	flag.PrintDefaults()
}
