package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	tests := []struct {
		name          string
		version       string
		build         string
		buildTime     string
		expectContain []string
	}{
		{
			name:          "default build",
			version:       "1.0.0",
			build:         "unknown",
			expectContain: []string{"civiceye version 1.0.0", "Go version:", "OS/Arch:"},
		},
		{
			name:          "release build",
			version:       "1.1.0",
			build:         "abc1234",
			buildTime:     "2025-11-22_12:00:00",
			expectContain: []string{"civiceye version 1.1.0", "(build: abc1234)", "[2025-11-22_12:00:00]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origBuild, origBuildTime := Version, Build, BuildTime
			t.Cleanup(func() { Version, Build, BuildTime = origVersion, origBuild, origBuildTime })
			Version, Build, BuildTime = tt.version, tt.build, tt.buildTime

			var buf bytes.Buffer
			printVersion(&buf)
			for _, want := range tt.expectContain {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
