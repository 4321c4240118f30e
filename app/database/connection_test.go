package database

import (
	"testing"
)

func TestNewConnection_InvalidParams(t *testing.T) {
	_, err := NewConnection("invalid", "invalid", "invalid", "invalid", "invalid")
	if err == nil {
		t.Error("Expected error for invalid connection parameters")
	}

	// Valid connections require a running database; covered by integration
	// tests against a real instance.
}
