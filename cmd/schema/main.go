// Command schema emits JSON schemas for the documents the service
// exchanges with admin tooling: the stored inventory record and the
// validation result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"blockhold/server/internal/inventory"
	"blockhold/server/internal/validation"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema")
	flag.Parse()

	if outPath == "" {
		log.Fatal("schema: missing -out path")
	}

	schema, err := buildSchema()
	if err != nil {
		log.Fatalf("schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("schema: marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("schema: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("schema: write schema: %v", err)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	inventorySchema := reflector.ReflectFromType(reflect.TypeOf(inventory.Inventory{}))
	if inventorySchema == nil {
		return nil, fmt.Errorf("failed to reflect inventory schema")
	}
	inventorySchema.Version = ""
	inventorySchema.Title = "Player Inventory"
	inventorySchema.Description = "Stored inventory record: 36 storage slots, hotbar bindings, armor and offhand."

	resultSchema := reflector.ReflectFromType(reflect.TypeOf(validation.ValidationResult{}))
	if resultSchema == nil {
		return nil, fmt.Errorf("failed to reflect validation result schema")
	}
	resultSchema.Version = ""
	resultSchema.Title = "Validation Result"
	resultSchema.Description = "Violations, warnings, correction suggestions and summary for one inventory."

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Blockhold Integrity Documents",
		Description: "Documents exchanged between the integrity service and admin tooling.",
		OneOf: []*jsonschema.Schema{
			inventorySchema,
			resultSchema,
		},
	}

	return root, nil
}
