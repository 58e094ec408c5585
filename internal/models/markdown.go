package models

// PreviewRequest is the body of POST /api/markdown/preview
type PreviewRequest struct {
	Content       string `json:"content"`
	ExcerptLength int    `json:"excerptLength"`
}

// Preview is a rendered draft
type Preview struct {
	HTML    string `json:"html"`
	Excerpt string `json:"excerpt"`
}
