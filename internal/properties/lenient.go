package properties

import "encoding/json"

// stringList is the one place list-of-string fields are decoded. Anything
// that is not an array yields an empty list and non-string elements are
// dropped, so a stray number in includePath never aborts a run.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	if jsonKind(raw) != kindArray {
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}

	for _, item := range items {
		if jsonKind(item) != kindString {
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}
