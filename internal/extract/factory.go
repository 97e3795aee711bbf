package extract

import (
	"investco/internal/domain"
)

// Extractor is the capability every format implementation provides.
type Extractor interface {
	Format() domain.FormatTag
	Family() domain.StatementFamily
	Extract(text string) domain.FieldMap
}

// Factory hands out the extractor for a classified format. Formats without a
// registration, including FormatUnknown, get the default annuity rule set so
// extraction always runs and validation reports whatever is missing.
type Factory struct {
	registry map[domain.FormatTag]Extractor
	fallback Extractor
}

// NewFactory registers all supported formats.
func NewFactory() *Factory {
	jackson := NewJacksonExtractor()
	return &Factory{
		registry: map[domain.FormatTag]Extractor{
			domain.FormatJackson: jackson,
			domain.FormatTIAA:    NewTIAAExtractor(),
			domain.FormatValic:   NewValicExtractor(),
			domain.FormatEmpower: NewEmpowerExtractor(),
			domain.FormatSchwab:  NewSchwabExtractor(),
		},
		fallback: jackson,
	}
}

// ForFormat returns the registered extractor for tag, or the default.
func (f *Factory) ForFormat(tag domain.FormatTag) Extractor {
	if e, ok := f.registry[tag]; ok {
		return e
	}
	return f.fallback
}

// SupportedFormats lists the registered format tags.
func (f *Factory) SupportedFormats() []domain.FormatTag {
	tags := make([]domain.FormatTag, 0, len(f.registry))
	for tag := range f.registry {
		tags = append(tags, tag)
	}
	return tags
}
