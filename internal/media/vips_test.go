package media

import (
	"strings"
	"testing"
)

func TestInitVipsReportsStartupPanic(t *testing.T) {
	orig := vipsStartup
	defer func() { vipsStartup = orig }()
	vipsStartup = func() {
		panic("unable to start vips!")
	}

	err := InitVips()
	if err == nil {
		t.Fatal("expected an error when libvips startup panics")
	}
	if !strings.Contains(err.Error(), "unable to start vips") {
		t.Errorf("error %q should carry the startup failure", err)
	}
	if IsVipsAvailable() {
		t.Error("vips must not be reported available after a failed startup")
	}
}
