package extractor

import (
	"context"
	"errors"

	"i18n-extract/internal/document"
	"i18n-extract/internal/position"
)

var (
	// ErrParse is returned when a document does not parse cleanly.
	ErrParse = errors.New("parse failed")
	// ErrCandidateNotFound means a rule returned text that is not present in the node it
	// was computed from. It indicates a broken rule implementation.
	ErrCandidateNotFound = errors.New("candidate not found in node source")
)

// Dialect identifies the walker that produced a segment.
type Dialect string

const (
	DialectScript Dialect = "js"
	DialectSFC    Dialect = "vue"
)

// Kind classifies where a segment was found.
type Kind string

const (
	KindScriptString          Kind = "inline-script-string"
	KindScriptTemplate        Kind = "inline-script-template-piece"
	KindMarkupText            Kind = "markup-plain-text"
	KindInterpolation         Kind = "markup-interpolated-expression"
	KindInterpolationTemplate Kind = "markup-interpolated-template-piece"
	KindAttribute             Kind = "markup-attribute-value"
	KindAttributeTemplate     Kind = "markup-attribute-template-piece"
)

// Segment is one span of translatable text found in a document.
// Start and End are byte offsets into the document text and Text == text[Start:End].
type Segment struct {
	Dialect Dialect        `json:"id"`
	Text    string         `json:"text"`
	Start   int            `json:"start"`
	End     int            `json:"end"`
	Range   position.Range `json:"range"`
	Kind    Kind           `json:"type"`

	IsDynamic bool `json:"isDynamic,omitempty"`
	IsJSX     bool `json:"isJsx,omitempty"`
	IsSetup   bool `json:"isSetup,omitempty"`

	// AttributeName is set for segments taken from markup attributes.
	AttributeName string `json:"attrName,omitempty"`

	// FullText is the whole attribute or literal including delimiters, for callers that
	// replace the surrounding syntax as well.
	FullText  string          `json:"fullText,omitempty"`
	FullStart int             `json:"fullStart,omitempty"`
	FullEnd   int             `json:"fullEnd,omitempty"`
	FullRange *position.Range `json:"fullRange,omitempty"`
}

// CloneSegments returns a copy of segs that shares no memory with it.
func CloneSegments(segs []Segment) []Segment {
	if segs == nil {
		return nil
	}
	out := make([]Segment, len(segs))
	copy(out, segs)
	for i := range out {
		if r := out[i].FullRange; r != nil {
			full := *r
			out[i].FullRange = &full
		}
	}
	return out
}

// Walker extracts segments from one dialect.
// A walker is not safe for concurrent use; it keeps per-pass state that is reset on every call.
type Walker interface {
	Dialect() Dialect
	Walk(ctx context.Context, doc document.Document) ([]Segment, error)
}
