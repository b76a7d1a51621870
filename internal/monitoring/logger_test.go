package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("stage %s", "read")
	if got != "stage read" {
		t.Errorf("Logf wrote %q", got)
	}

	Warnf("column %s undeclared", "FBB")
	if got != "warning: column FBB undeclared" {
		t.Errorf("Warnf wrote %q", got)
	}

	got = ""
	SetLogger(nil)
	Logf("muted")
	Warnf("muted")
	if got != "" {
		t.Errorf("nil logger should mute output, got %q", got)
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()
	Logf("test message: %s", "value")
}
