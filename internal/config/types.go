package config

type Config struct {
	OpenAIKey    string
	AnthropicKey string
	DatabaseURL  string
	Environment  string
}
