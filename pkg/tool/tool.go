/*
tool holds the tools served to an MCP client. A Toolkit resolves each
tool's input schema when it is registered, and checks every call against
it before the tool runs.
*/
package tool

import (
	"context"
	"encoding/json"
	"slices"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a named operation with a JSON schema for its input
type Tool interface {
	Name() string
	Description() string

	// Schema returns the input schema, or nil when any input is accepted
	Schema() (*jsonschema.Schema, error)

	// Run is called with input which has already been checked against
	// the schema. The input is nil when the caller sent no arguments.
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a set of tools with unique names
type Toolkit struct {
	names   []string // sorted
	entries map[string]entry
}

type entry struct {
	Tool
	schema *jsonschema.Resolved // nil when any input is accepted
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit returns a toolkit with the given tools registered
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		entries: make(map[string]entry, len(tools)),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Register adds tools to the toolkit. A tool is rejected when its name is
// not an identifier, is already registered, or its schema cannot be
// resolved. Tools before the rejected one remain registered.
func (tk *Toolkit) Register(tools ...Tool) error {
	for _, t := range tools {
		if t == nil {
			return weather.ErrBadParameter.With("nil tool")
		}
		e, err := newEntry(t)
		if err != nil {
			return err
		}
		name := t.Name()
		if _, exists := tk.entries[name]; exists {
			return weather.ErrBadParameter.Withf("duplicate tool %q", name)
		}
		tk.entries[name] = e
		i, _ := slices.BinarySearch(tk.names, name)
		tk.names = slices.Insert(tk.names, i, name)
	}
	return nil
}

// Tools returns the registered tools ordered by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.names))
	for _, name := range tk.names {
		result = append(result, tk.entries[name].Tool)
	}
	return result
}

// Lookup returns a tool by name, or nil
func (tk *Toolkit) Lookup(name string) Tool {
	if e, exists := tk.entries[name]; exists {
		return e.Tool
	}
	return nil
}

// Run calls a tool by name. The input may be json.RawMessage, []byte, nil
// or any value which marshals to a JSON object.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (any, error) {
	e, exists := tk.entries[name]
	if !exists {
		return nil, weather.ErrNotFound.Withf("tool %q", name)
	}
	raw, err := rawInput(input)
	if err != nil {
		return nil, err
	}
	if err := e.validate(raw); err != nil {
		return nil, err
	}
	return e.Run(ctx, raw)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newEntry(t Tool) (entry, error) {
	name := t.Name()
	if !types.IsIdentifier(name) {
		return entry{}, weather.ErrBadParameter.Withf("invalid tool name %q", name)
	}
	schema, err := t.Schema()
	if err != nil {
		return entry{}, weather.ErrBadParameter.Withf("%s: schema: %v", name, err)
	} else if schema == nil {
		return entry{Tool: t}, nil
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return entry{}, weather.ErrBadParameter.Withf("%s: schema: %v", name, err)
	}
	return entry{Tool: t, schema: resolved}, nil
}

// Absent input is not validated
func (e entry) validate(input json.RawMessage) error {
	if e.schema == nil || len(input) == 0 {
		return nil
	}
	var object map[string]any
	if err := json.Unmarshal(input, &object); err != nil {
		return weather.ErrBadParameter.Withf("input is not an object: %v", err)
	}
	if err := e.schema.Validate(object); err != nil {
		return weather.ErrBadParameter.Withf("input: %v", err)
	}
	return nil
}

func rawInput(input any) (json.RawMessage, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return v, nil
	case []byte:
		return json.RawMessage(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, weather.ErrBadParameter.Withf("input: %v", err)
		}
		return data, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	return types.Stringify(tk.names)
}
