//go:build ignore

// gen_schema.go writes the configuration JSON schema.
//
// Usage:
//
//	go run gen_schema.go [output-path]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/devantler-tech/harborsync/pkg/fsutil"
	"github.com/devantler-tech/harborsync/schemas"
)

func main() {
	outputPath := "harborsync-config.schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	data, err := schemas.Generate()
	if err != nil {
		log.Fatal(err)
	}

	err = fsutil.WriteFileAtomic(outputPath, data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("gen_schema: wrote %s (%d bytes)\n", outputPath, len(data))
}
