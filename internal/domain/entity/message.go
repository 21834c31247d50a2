package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of accumulated conversation context sent to the model.
type Message struct {
	Role    MessageRole
	Content string
}
