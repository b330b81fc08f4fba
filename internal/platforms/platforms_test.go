package platforms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"visionly/internal/platforms"
)

func TestDetectLLMFromReferrer(t *testing.T) {
	tests := []struct {
		name     string
		referrer string
		want     string
	}{
		{"chatgpt share link", "https://chat.openai.com/share/xyz", "ChatGPT"},
		{"chatgpt.com", "https://chatgpt.com/", "ChatGPT"},
		{"claude", "https://claude.ai/chat/abc", "Claude"},
		{"anthropic", "https://www.anthropic.com/", "Claude"},
		{"gemini", "https://gemini.google.com/app", "Gemini"},
		{"perplexity", "https://www.perplexity.ai/search", "Perplexity"},
		{"copilot", "https://copilot.microsoft.com/", "Copilot"},
		{"grok", "https://grok.com/", "Grok"},
		{"poe", "https://poe.com/ChatBot", "Poe"},
		{"character.ai", "https://character.ai/chat", "Character.ai"},
		{"mixed case", "HTTPS://CHAT.OPENAI.COM/", "ChatGPT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, platforms.Detect("", "", tt.referrer))
		})
	}
}

func TestDetectLLMFromSource(t *testing.T) {
	// Referrer is empty, so the source string decides.
	assert.Equal(t, "ChatGPT", platforms.Detect("chatgpt.com", "referral", ""))
	assert.Equal(t, "Perplexity", platforms.Detect("perplexity.ai", "referral", ""))
}

func TestReferrerWinsOverSource(t *testing.T) {
	// Both carry LLM hints; the referrer is checked first.
	got := platforms.Detect("perplexity.ai", "referral", "https://claude.ai/")
	assert.Equal(t, "Claude", got)
}

func TestDetectMediumFallback(t *testing.T) {
	tests := []struct {
		source string
		medium string
		want   string
	}{
		{"google", "organic", platforms.Organic},
		{"google", "ORGANIC", platforms.Organic},
		{"google", "cpc", platforms.Paid},
		{"adroll", "paid", platforms.Paid},
		{"partner.example.com", "referral", platforms.Referral},
		{"newsletter", "email", platforms.Email},
		{"facebook", "social", platforms.Social},
		{"(direct)", "(none)", platforms.Direct},
		{"(direct)", "", platforms.Direct},
		{"somewhere", "(none)", platforms.Other},
		{"", "", platforms.Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, platforms.Detect(tt.source, tt.medium, ""),
			"source=%q medium=%q", tt.source, tt.medium)
	}
}

func TestNamesOrderIsStable(t *testing.T) {
	want := []string{"ChatGPT", "Claude", "Gemini", "Perplexity", "Copilot", "Grok", "Poe", "Character.ai"}
	assert.Equal(t, want, platforms.Names())
}

func TestIsLLM(t *testing.T) {
	for _, name := range platforms.Names() {
		assert.True(t, platforms.IsLLM(name), name)
	}
	assert.False(t, platforms.IsLLM(platforms.Organic))
	assert.False(t, platforms.IsLLM("LLMs"))
}

func TestColor(t *testing.T) {
	assert.NotEmpty(t, platforms.Color("ChatGPT"))
	assert.Empty(t, platforms.Color("nope"))
}
