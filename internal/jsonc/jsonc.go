// Package jsonc reads JSON with comments, the dialect VS Code uses for its
// settings files. Line comments (//) and block comments (/* */) are removed
// before the text is handed to encoding/json.
package jsonc

import (
	"bytes"
	"encoding/json"
)

type scanState int

const (
	stateNormal scanState = iota
	stateString
	stateLineComment
	stateBlockComment
)

// Strip removes every comment outside of string literals. Line terminators
// ending a line comment are kept so line numbers in decode errors still match
// the source. An unterminated block comment runs to the end of the input.
func Strip(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))

	state := stateNormal
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		switch state {
		case stateString:
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				state = stateNormal
			}

		case stateLineComment:
			if c == '\n' || c == '\r' {
				out.WriteByte(c)
				state = stateNormal
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				i++
				state = stateNormal
			}

		default:
			if c == '/' && i+1 < len(data) {
				switch data[i+1] {
				case '/':
					i++
					state = stateLineComment
					continue
				case '*':
					i++
					state = stateBlockComment
					continue
				}
			}
			if c == '"' {
				state = stateString
			}
			out.WriteByte(c)
		}
	}

	return out.Bytes()
}

// Unmarshal strips comments from data and decodes the result into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(Strip(data), v)
}
