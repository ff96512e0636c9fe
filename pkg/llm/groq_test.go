package llm

import "testing"

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("missing API key should fail")
	}
	if _, err := NewClient(Config{APIKey: "   "}); err == nil {
		t.Fatal("blank API key should fail")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{APIKey: "gsk-test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.temperature != defaultTemperature {
		t.Errorf("temperature = %v", c.temperature)
	}
}
