package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const snapshotSchemaURL = "mem://tabtodo/todos.schema.json"

//go:embed schema/todos.schema.json
var snapshotSchemaJSON string

var (
	schemaOnce     sync.Once
	snapshotSchema *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load snapshot schema: %w", err)
			return
		}
		snapshotSchema, schemaErr = compiler.Compile(snapshotSchemaURL)
	})
	return snapshotSchema, schemaErr
}

// CheckSnapshot reports schema and per-task problems in a raw snapshot. The
// result is advisory and never blocks a load.
func CheckSnapshot(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return []string{fmt.Sprintf("snapshot is not valid JSON: %v", err)}
	}

	var warnings []string
	schema, err := compiledSchema()
	if err != nil {
		warnings = append(warnings, err.Error())
	} else if err := schema.Validate(doc); err != nil {
		warnings = append(warnings, schemaMessages(err)...)
	}

	tasks, err := Decode(raw)
	if err != nil {
		return warnings
	}
	for i, task := range tasks {
		if err := task.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("task[%d]: %v", i, err))
		}
	}
	return warnings
}

func schemaMessages(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	collectSchemaMessages(&out, ve)
	return out
}

func collectSchemaMessages(out *[]string, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaMessages(out, cause)
	}
}
