package model

// Failure records one document that could not be extracted or enriched.
type Failure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}
