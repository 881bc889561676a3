package types

type SourceSummary struct {
	Source    string `json:"source"`
	Chunks    int    `json:"chunks"`
	UpdatedAt string `json:"updated_at"`
}
