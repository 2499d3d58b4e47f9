package fieldweaver

// FieldSpec maps destination field names to format-string templates. Built
// once at startup and treated as immutable for the lifetime of the run.
type FieldSpec map[string]string

// MergeFieldSpecs combines a base mapping with an override mapping,
// override winning on key collision. Either side may be nil.
func MergeFieldSpecs(base, override map[string]string) FieldSpec {
	merged := make(FieldSpec, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
