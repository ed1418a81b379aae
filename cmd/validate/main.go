// Command validate runs a registration batch against a personnel DBF and
// prints the resulting Report as JSON to stdout, for offline runs and
// scripting outside the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"rodeovalidate/internal/regdb"
	"rodeovalidate/internal/registration"
	"rodeovalidate/internal/validation"
	"rodeovalidate/internal/xbase"
)

const (
	exitSuccess = 0
	exitUsage   = 1
	exitFileIO  = 2
	exitLoad    = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "usage: validate <personnel.dbf> <registrations.json>")
		return exitUsage
	}
	dbfPath, batchPath := args[0], args[1]

	dbfFile, err := os.Open(dbfPath)
	if err != nil {
		fmt.Fprintf(stderr, "open %s: %v\n", dbfPath, err)
		return exitFileIO
	}
	defer dbfFile.Close()

	batchData, err := os.ReadFile(batchPath)
	if err != nil {
		fmt.Fprintf(stderr, "open %s: %v\n", batchPath, err)
		return exitFileIO
	}

	tbl, err := xbase.Open(dbfFile)
	if err != nil {
		fmt.Fprintf(stderr, "load personnel database: %v\n", err)
		return exitLoad
	}

	db, err := regdb.Load(tbl)
	if err != nil {
		fmt.Fprintf(stderr, "index personnel database: %v\n", err)
		return exitLoad
	}

	batch, err := registration.Decode(batchData)
	if err != nil {
		fmt.Fprintf(stderr, "decode registration batch: %v\n", err)
		return exitLoad
	}

	report, err := validation.Validate(context.Background(), batch, db, time.Now(), nil)
	if err != nil {
		fmt.Fprintf(stderr, "validate: %v\n", err)
		return exitLoad
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(stderr, "encode report: %v\n", err)
		return exitFileIO
	}

	return exitSuccess
}
