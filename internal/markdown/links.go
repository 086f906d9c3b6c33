package markdown

// LinkKind classifies where a link destination was found in the document.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is one link destination found in a markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
}
