package main

import (
	"encoding/json"

	prettyjson "github.com/hokaccha/go-prettyjson"
)

// getOutputJSON marshals a result for display. Colorized JSON is used when
// writing to a terminal, unless colors are disabled.
func getOutputJSON(result any, noColor bool) ([]byte, error) {
	if noColor || !isTerminalIO() {
		return json.MarshalIndent(result, "", "  ")
	}
	return prettyjson.Marshal(result)
}
