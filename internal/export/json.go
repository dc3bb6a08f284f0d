package export

import (
	"encoding/json"
	"io"

	"facscope/internal/aggregate"
)

// WriteJSON writes both tables as one indented JSON document.
func WriteJSON(w io.Writer, res aggregate.Result) error {
	if res.Records == nil {
		res.Records = []aggregate.Record{}
	}
	if res.Summaries == nil {
		res.Summaries = []aggregate.Summary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
