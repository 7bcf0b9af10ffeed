package trace

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSON Schemas for the line formats. Loading validates every line of the
// decision-relevant files against these before decoding, so a malformed
// record is reported with its line number instead of surfacing later as a
// zero-valued field.

//go:embed schemas/event.schema.json
var eventSchemaJSON string

//go:embed schemas/summary.schema.json
var summarySchemaJSON string

var (
	eventSchema   = jsonschema.MustCompileString("event.schema.json", eventSchemaJSON)
	summarySchema = jsonschema.MustCompileString("summary.schema.json", summarySchemaJSON)
)
