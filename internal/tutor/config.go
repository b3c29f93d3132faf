package tutor

// Config holds generation settings for help and narration.
type Config struct {
	HelpMaxTokens      int
	NarrationMaxTokens int
	Temperature        float64

	// Narrations shorter than these rune counts are treated as failures.
	MinArithmeticNarration int
	MinColumnarNarration   int
}

// DefaultConfig returns the standard tutor settings.
func DefaultConfig() Config {
	return Config{
		HelpMaxTokens:          512,
		NarrationMaxTokens:     600,
		Temperature:            0.7,
		MinArithmeticNarration: 20,
		MinColumnarNarration:   30,
	}
}
