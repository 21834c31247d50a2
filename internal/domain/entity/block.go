package entity

// Block is one structured side-effect record reported by an executor after a
// task, such as a produced code block or a fetched page.
type Block struct {
	Tool     string `json:"tool_type"`
	Content  string `json:"block"`
	Feedback string `json:"feedback"`
	Success  bool   `json:"success"`
}
