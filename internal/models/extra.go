package models

import "encoding/json"

// Extra holds JSON members a record type does not declare, so that a
// read-modify-write cycle does not drop them.
type Extra map[string]json.RawMessage

func captureExtra(data []byte, known []string) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return b, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, declared := all[k]; !declared {
			all[k] = raw
		}
	}
	return json.Marshal(all)
}
