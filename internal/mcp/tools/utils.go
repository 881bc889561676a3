package tools

import "encoding/json"

func parseLimit(value any, fallback int) int {
	if raw, ok := value.(float64); ok && int(raw) > 0 {
		return int(raw)
	}
	return fallback
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
