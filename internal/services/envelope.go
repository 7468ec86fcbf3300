package services

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	listEnvelopeSchema = `{
		"type": "object",
		"required": ["data"],
		"properties": {
			"data": {"type": "array", "items": {"type": ["object", "null"]}}
		}
	}`

	itemEnvelopeSchema = `{
		"type": "object",
		"required": ["data"],
		"properties": {
			"data": {"type": "object"}
		}
	}`

	uploadListSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["id"],
			"properties": {
				"id": {"type": ["integer", "string"]},
				"name": {"type": ["string", "null"]},
				"url": {"type": ["string", "null"]}
			}
		}
	}`
)

var (
	listEnvelope = mustCompile("list-envelope.json", listEnvelopeSchema)
	itemEnvelope = mustCompile("item-envelope.json", itemEnvelopeSchema)
	uploadList   = mustCompile("upload-list.json", uploadListSchema)
)

func compileSchema(name, schema string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func mustCompile(name, schema string) *jsonschema.Schema {
	s, err := compileSchema(name, schema)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return s
}
