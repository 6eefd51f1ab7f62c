package gen

import (
	"encoding/json"
	"regexp"

	"github.com/kaptinlin/jsonrepair"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([)\]}])`)

// stripTrailingCommas removes trailing commas immediately before a closing
// bracket, brace or parenthesis. Models routinely leave one behind when
// emitting lists.
func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// unmarshalJSON unmarshals JSON data into v, attempting to repair malformed
// JSON. If the initial unmarshal fails with a syntax error, it tries to
// repair the JSON using jsonrepair before retrying.
func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}
