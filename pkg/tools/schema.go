package tools

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Shared schema fragments for tool input schemas. Tools compose these so
// that common parameters read identically across the whole surface.

func actionSchema(description string, actions ...string) *jsonschema.Schema {
	enum := make([]any, len(actions))
	for i, a := range actions {
		enum[i] = a
	}
	return &jsonschema.Schema{
		Type:        "string",
		Description: description,
		Enum:        enum,
	}
}

func stringSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func intSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: description}
}

func boolSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: description}
}

func stringArraySchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: description,
		Items:       &jsonschema.Schema{Type: "string"},
	}
}

func providerSchema() *jsonschema.Schema {
	return stringSchema("Provider to use (e.g. github, gitea). Defaults to the configured default provider.")
}

func ownerSchema() *jsonschema.Schema {
	return stringSchema("Repository owner (user or organization). Defaults to the authenticated user when omitted.")
}

func repoSchema() *jsonschema.Schema {
	return stringSchema("Repository name.")
}

func paginationSchema(props map[string]*jsonschema.Schema) {
	props["page"] = &jsonschema.Schema{
		Type:        "integer",
		Description: "Page number for pagination (min 1).",
		Minimum:     jsonschema.Ptr(1.0),
	}
	props["per_page"] = &jsonschema.Schema{
		Type:        "integer",
		Description: "Results per page for pagination (min 1, max 100).",
		Minimum:     jsonschema.Ptr(1.0),
		Maximum:     jsonschema.Ptr(100.0),
	}
}

// objectSchema builds the top-level input schema for a tool. "action" is
// always required; additional required properties are listed by callers.
func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   append([]string{"action"}, required...),
	}
}
