package export

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// JSON serializes the record with every declared key present, shapes coerced,
// and undeclared keys dropped. The document is validated against the
// registry's JSON Schema before it is returned.
func JSON(record types.Record, reg *schema.Registry) ([]byte, error) {
	out := types.NewRecord()
	for key, v := range record {
		if reg.Has(key) {
			out.Set(key, reg.Coerce(key, v))
		} else if schema.IsGenerated(key) {
			out.SetText(key, v.String())
		}
	}
	out = reg.FillDefaults(out)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := reg.ValidateRecordJSON(data); err != nil {
		return nil, fmt.Errorf("exported record does not match schema: %w", err)
	}
	return data, nil
}
