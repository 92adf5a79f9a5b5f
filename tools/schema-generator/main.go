package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/lokitools/schema/hookcfg"
)

func main() {
	schemaBytes, err := hookcfg.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	// Define the output directory and ensure it exists.
	outputDir := "schema"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	// Write the schema to the file.
	outputPath := filepath.Join(outputDir, "hookconfig.embedded.schema.json")
	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", outputPath)
}
