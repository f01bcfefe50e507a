package custom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Snowflake is a Discord ID as stored in the config files.
//
// The files hold IDs as bare JSON numbers. Go keeps them as strings so that
// 64-bit IDs never pass through a float. Quoted IDs are accepted on read.
type Snowflake string

// MarshalJSON implements the json.Marshaler interface.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseUint(string(s), 10, 64); err != nil {
		return json.Marshal(string(s))
	}
	return []byte(s), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid snowflake: %w", err)
		}
		*s = Snowflake(str)
		return nil
	}

	if _, err := strconv.ParseUint(string(data), 10, 64); err != nil {
		return fmt.Errorf("invalid snowflake %s: %w", data, err)
	}
	*s = Snowflake(data)
	return nil
}

// String implements the fmt.Stringer interface.
func (s Snowflake) String() string {
	return string(s)
}
