package posts

// Summary is the listing view of a post: its id plus front matter metadata.
type Summary struct {
	ID     string         `json:"id"`
	Date   string         `json:"date"`
	Title  string         `json:"title"`
	Params map[string]any `json:"params,omitempty"`
}

// IdentifierParams carries the route parameters of one post.
type IdentifierParams struct {
	ID string `json:"id"`
}

// Identifier is the route descriptor for one post, shaped as
// {"params":{"id":"..."}}.
type Identifier struct {
	Params IdentifierParams `json:"params"`
}

// NewIdentifier returns the Identifier for id.
func NewIdentifier(id string) Identifier {
	return Identifier{Params: IdentifierParams{ID: id}}
}

// RenderedPost is a post ready for display.
type RenderedPost struct {
	Summary
	ContentHTML string `json:"contentHtml"`
	// Fingerprint identifies the post's front matter and body.
	Fingerprint string `json:"fingerprint"`
}

// RenderResult is delivered by RenderAsync. Exactly one of Post and Err is set.
type RenderResult struct {
	Post *RenderedPost
	Err  error
}
