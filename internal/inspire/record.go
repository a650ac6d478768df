package inspire

// Record is one raw metadata record as returned by the API: a mapping from
// field name to heterogeneously typed values (scalars, nested mappings, or
// sequences of mappings). The accessors below make each expected shape
// explicit and return zero values when a field is absent or differently
// shaped, so extraction rules never panic on partial records.
type Record map[string]any

// Metadata returns the record's metadata sub-object when the record is
// wrapped in a {"metadata": {...}} envelope, or the record itself otherwise.
func (r Record) Metadata() Record {
	if m := r.Map("metadata"); m != nil {
		return m
	}
	return r
}

// Map returns the nested mapping under key, or nil.
func (r Record) Map(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// Slice returns the sequence of mappings under key. Non-mapping elements
// are skipped.
func (r Record) Slice(key string) []Record {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// String returns the string under key, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the integer under key. JSON numbers decode as float64; string
// digits are not converted.
func (r Record) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// FirstValue returns the "value" entry of the first mapping in the sequence
// under key. This is the common shape for identifier lists: isbns, dois,
// report_numbers, and similar all arrive as [{"value": ...}, ...].
func (r Record) FirstValue(key string) string {
	items := r.Slice(key)
	if len(items) == 0 {
		return ""
	}
	return items[0].String("value")
}

// Values returns every "value" entry in the sequence under key, in order.
func (r Record) Values(key string) []string {
	var out []string
	for _, item := range r.Slice(key) {
		if v := item.String("value"); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Strings returns the sequence under key as plain strings, for fields whose
// elements are scalars rather than mappings.
func (r Record) Strings(key string) []string {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
