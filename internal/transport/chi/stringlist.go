package chi

import (
	"encoding/json"
	"fmt"
)

// stringList accepts both "value" and ["a","b"] in JSON, so single-select
// questionnaire answers can be sent as plain strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = stringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or string array: %w", err)
	}
	*l = stringList(many)
	return nil
}
