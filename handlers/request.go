package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pocketbase/pocketbase/core"
)

// rawInput is a user-typed value that may arrive as a JSON number or a
// JSON string. It is parsed with services.ParseNumeric.
type rawInput string

func (r *rawInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = rawInput(s)
		return nil
	}
	*r = rawInput(data)
	return nil
}

func decodeJSON(e *core.RequestEvent, dst any) error {
	if err := json.NewDecoder(e.Request.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

func parseProductID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
