package records

// KeySeparator joins nested field names into flat dotted paths.
const KeySeparator = "."

// Flatten collapses nested structure into a new Record keyed by dotted
// paths (`address.city`). The walk is depth-first in the record's own field
// order, so flat key order is deterministic for a given input. Only nested
// Records are descended into; sequences and every other value variant are
// stored as-is under the accumulated key.
func Flatten(rec *Record) *Record {
	flat := NewRecord()
	flattenInto(flat, rec, "")
	return flat
}

func flattenInto(flat, rec *Record, prefix string) {
	if rec == nil {
		return
	}
	for _, key := range rec.keys {
		full := key
		if prefix != "" {
			full = prefix + KeySeparator + key
		}
		if nested, ok := rec.values[key].(*Record); ok {
			flattenInto(flat, nested, full)
			continue
		}
		flat.Set(full, rec.values[key])
	}
}
