package server

import "encoding/json"

// Tool schemas are written by hand so that optional fields are plain types
// rather than the ["null", ...] unions some MCP clients reject.

var generateInputSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"input": {
			"type": "string",
			"description": "Path to c_cpp_properties.json (default: .vscode/c_cpp_properties.json)"
		},
		"output": {
			"type": "string",
			"description": "Path of the compile_commands.json to write (default: ./compile_commands.json)"
		},
		"sources": {
			"type": "array",
			"items": {"type": "string"},
			"description": "Source files to generate entries for when the configuration has no compileCommands"
		}
	},
	"additionalProperties": false
}`)

var generateOutputSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"output": {"type": "string", "description": "Path the database was written to"},
		"mode": {"type": "string", "description": "pass-through, merge-embedded, merge-referenced or generate"},
		"entries": {"type": "integer", "description": "Number of entries written"},
		"skipped": {
			"type": "array",
			"items": {"type": "string"},
			"description": "Referenced database files that did not exist"
		}
	},
	"required": ["output", "mode", "entries", "skipped"],
	"additionalProperties": false
}`)

var inspectInputSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"input": {
			"type": "string",
			"description": "Path to c_cpp_properties.json (default: .vscode/c_cpp_properties.json)"
		},
		"source": {
			"type": "string",
			"description": "Example source file to preview the synthesized command for"
		}
	},
	"additionalProperties": false
}`)

var inspectOutputSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"input": {"type": "string"},
		"shape": {"type": "string", "description": "entries or properties"},
		"mode": {"type": "string"},
		"configuration": {"type": "string", "description": "Name of the configuration in use"},
		"configuration_count": {"type": "integer"},
		"settings": {
			"type": "object",
			"properties": {
				"compilerPath": {"type": "string"},
				"includePath": {"type": "array", "items": {"type": "string"}},
				"defines": {"type": "array", "items": {"type": "string"}},
				"cppStandard": {"type": "string"}
			}
		},
		"references": {"type": "array", "items": {"type": "string"}},
		"embedded_entries": {"type": "integer"},
		"command": {"type": "string", "description": "Synthesized command for the example source"}
	},
	"required": ["input", "shape", "mode", "configuration_count"],
	"additionalProperties": false
}`)
