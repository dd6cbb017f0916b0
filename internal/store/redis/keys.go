package redis

const (
	// KeyPrefixTranslations is the prefix for per-language translation hashes
	KeyPrefixTranslations = "orgcat:i18n:"
)

// TranslationsKey returns the Redis key for a language's translation hash
func TranslationsKey(lang string) string {
	return KeyPrefixTranslations + lang
}
