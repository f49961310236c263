package dataset

// Validate checks that every required column is present. The returned
// *SchemaError lists the missing columns in the order they were required.
func Validate(d *Dataset, required []string) error {
	var missing []string
	for _, c := range required {
		if d == nil || !d.Schema.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
