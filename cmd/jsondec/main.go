// Package main provides a tool to decode JSON and cross-check the result
// against the standard library decoder.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/bool64/dev/version"
	"github.com/swaggest/assertjson"
	"github.com/swaggest/jsondec"
)

func main() {
	var ver, verbose bool

	flag.BoolVar(&ver, "version", false, "Print version and exit.")
	flag.BoolVar(&verbose, "v", false, "Verbose mode.")
	flag.Parse()

	if ver {
		fmt.Println(version.Info().Version)

		return
	}

	input := flag.Arg(0)
	if input == "" {
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), "Missing input path argument, use `-` for stdin.")
		flag.Usage()

		return
	}

	var (
		raw []byte
		err error
	)

	if input == "-" {
		raw, err = ioutil.ReadAll(os.Stdin)
	} else {
		//nolint:gosec // Intentional file reading.
		raw, err = ioutil.ReadFile(input)
	}

	if err != nil {
		log.Fatalf("could not read input: %v", err)
	}

	decoded, err := jsondec.Decode(string(raw))
	if err != nil {
		log.Fatalf("could not decode input: %v", err)
	}

	ours, err := json.Marshal(decoded.Interface())
	if err != nil {
		log.Fatalf("could not marshal decoded value: %v", err)
	}

	var ref interface{}

	if err := json.Unmarshal(raw, &ref); err != nil {
		log.Fatalf("standard library rejected input accepted by jsondec: %v", err)
	}

	refJSON, err := json.Marshal(ref)
	if err != nil {
		log.Fatalf("could not marshal reference value: %v", err)
	}

	if err := assertjson.FailNotEqual(refJSON, ours); err != nil {
		log.Fatalf("output diverges from standard library: %v", err)
	}

	if verbose {
		log.Printf("decoded %d bytes, output matches the standard library\n", len(raw))
	}

	pretty, err := json.MarshalIndent(decoded.Interface(), "", "  ")
	if err != nil {
		log.Fatalf("could not marshal decoded value: %v", err)
	}

	fmt.Println(string(pretty))
}
