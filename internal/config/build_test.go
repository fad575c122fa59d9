package config

import "testing"

func TestNewBuildInfoUsesLinkerDefaults(t *testing.T) {
	info := NewBuildInfo()
	want := BuildInfo{Version: "dev", Commit: "none", BuildTime: "unknown"}
	if info != want {
		t.Errorf("NewBuildInfo() = %+v, want %+v", info, want)
	}
}

func TestBuildInfoLogValue(t *testing.T) {
	v := BuildInfo{Version: "1.2.3", Commit: "abc", BuildTime: "now"}.LogValue()
	attrs := v.Group()
	if len(attrs) != 3 || attrs[0].Key != "version" || attrs[0].Value.String() != "1.2.3" {
		t.Errorf("LogValue() = %v", attrs)
	}
}
