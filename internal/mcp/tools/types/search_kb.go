package types

type ChunkResult struct {
	Source     string  `json:"source"`
	Path       string  `json:"path"`
	Revision   string  `json:"revision"`
	DocType    string  `json:"doc_type"`
	Section    *string `json:"section,omitempty"`
	Page       *int    `json:"page,omitempty"`
	SourceURL  *string `json:"source_url,omitempty"`
	Snippet    string  `json:"snippet"`
	Similarity float64 `json:"similarity"`
	Content    *string `json:"content,omitempty"`
}
