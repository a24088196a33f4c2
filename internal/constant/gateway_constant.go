package constant

const (
	ChatMessageRoleSystem    = "system"
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	DefaultSystemPrompt = `You are a helpful assistant embedded in a developer workspace.
Answer clearly and concisely. When the user asks about code, prefer short,
working examples. If you are unsure, say so instead of guessing.`

	DefaultMemoryWindow = 10
	DefaultListLimit    = 50
	DefaultNamespace    = "default"

	AnonymousSessionPrefix = "anon:"

	// KV key prefixes
	MemoryKeyPrefix = "memory:"
	ImageKeyPrefix  = "image:"
	FileKeyPrefix   = "file:"

	APIPrefix = "/api"
)

func MemoryKey(sessionKey string) string {
	return MemoryKeyPrefix + sessionKey
}

func ImageKey(id string) string {
	return ImageKeyPrefix + id
}

func FileKey(path string) string {
	return FileKeyPrefix + path
}
