package chat

import "testing"

func TestFormatPlain(t *testing.T) {
	tests := []struct {
		name     string
		message  Message
		expected string
	}{
		{
			name:     "narration passes through",
			message:  Narration("The air is still."),
			expected: "The air is still.",
		},
		{
			name:     "dialogue is quoted with speaker",
			message:  Dialogue("The Visitor Guide", "Oh! A visitor..."),
			expected: "The Visitor Guide: \"Oh! A visitor...\"",
		},
		{
			name:     "dialogue without speaker is only quoted",
			message:  Dialogue("", "Help me..."),
			expected: "\"Help me...\"",
		},
		{
			name:     "heading is framed",
			message:  Heading("Main Hall"),
			expected: "--- Main Hall ---",
		},
		{
			name:     "debug is prefixed",
			message:  Debug("State set to 14"),
			expected: "[Debug] State set to 14",
		},
		{
			name:     "thought passes through",
			message:  Thought("(This is ridiculous.)"),
			expected: "(This is ridiculous.)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPlain(tt.message); got != tt.expected {
				t.Errorf("FormatPlain() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	msgs := []Message{
		Heading("Office"),
		System("You picked up the oil_fluid."),
	}
	expected := "--- Office ---\nYou picked up the oil_fluid."
	if got := PlainText(msgs); got != expected {
		t.Errorf("PlainText() = %q, expected %q", got, expected)
	}
}

func TestIsCutscene(t *testing.T) {
	tests := []struct {
		message  Message
		expected bool
	}{
		{Narration("x"), true},
		{Dialogue("g", "x"), true},
		{Thought("x"), true},
		{Heading("x"), false},
		{System("x"), false},
		{Debug("x"), false},
	}

	for _, tt := range tests {
		if got := tt.message.IsCutscene(); got != tt.expected {
			t.Errorf("IsCutscene(%s) = %v, expected %v", tt.message.Role, got, tt.expected)
		}
	}

	if HasCutscene([]Message{System("a"), Heading("b")}) {
		t.Error("HasCutscene() = true for feedback-only messages")
	}
	if !HasCutscene([]Message{System("a"), Narration("b")}) {
		t.Error("HasCutscene() = false when narration is present")
	}
}
