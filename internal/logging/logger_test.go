package logging

import "testing"

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("chatty", "console"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestInitAndCategoryLoggers(t *testing.T) {
	if err := Init("debug", "json"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Get(CategoryEncoder) == nil {
		t.Fatal("Get returned nil logger")
	}

	// Convenience functions must not panic.
	Encoder("encode pass %d", 1)
	EncoderDebug("detail %s", "x")
	Spec("fragment registered")
	StoreDebug("saved %d fragments", 0)
	Sync()
}

func TestGetBeforeInitIsSafe(t *testing.T) {
	// The package default is a no-op root; Get must work without Init.
	Get(CategoryWatch).Infof("noop %d", 1)
}
