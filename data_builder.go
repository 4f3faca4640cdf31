package paramq

// DataBuilder parses request parameters into a plain output map. Values are
// written at the top level unless FieldSpec.To names a sub-section.
type DataBuilder struct {
	*ParamsProcessor
}

// NewDataBuilder creates a builder reading from source. base, when not nil,
// pre-seeds the output; its keys take part in the duplicate key guard.
func NewDataBuilder(source, base map[string]any, opts ProcessorOpts) *DataBuilder {
	return &DataBuilder{
		ParamsProcessor: newParamsProcessor(source, base, SectionRoot, opts),
	}
}

// Build returns a copy of the output with the staging section stripped.
func (db *DataBuilder) Build() map[string]any {
	return db.snapshot()
}
