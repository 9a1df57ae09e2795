// Package testutil provides shared fixture helpers for building
// scratch log-file trees in tests, kept from the teacher's own
// testutil package with the fixture content replaced: multi-line
// structured records matching record.DefaultStartPattern instead of
// Apache Combined Log format CIDR/IP fixtures.
package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

// GenerateTestLogFile creates a temporary log file with numLines
// structured records (at least 1000; smaller values are raised to
// 1000), each a timestamp, level and message, some followed by one
// continuation line, cycling through a small set of fictional
// entries. Returns the file path and a cleanup function.
func GenerateTestLogFile(t *testing.T, numLines int) (string, func()) {
	t.Helper()

	if numLines < 1000 {
		numLines = 1000
	}

	tmpFile, err := os.CreateTemp("", "test_log_*.log")
	if err != nil {
		t.Fatalf("Failed to create temp log file: %v", err)
	}

	sampleRecords := []string{
		"2025-01-01 10:15:30.000+0000 INFO Handling request GET /api/users\n    from 192.168.1.100",
		"2025-01-01 10:15:31.000+0000 ERROR Login failed for user admin\n    reason: invalid credentials",
		"2025-01-01 10:15:32.000+0000 INFO Serving static asset /static/logo.png",
		"2025-01-01 10:15:33.000+0000 WARN Cache eviction triggered\n    key: session:abcdef",
		"2025-01-01 10:15:34.000+0000 INFO Dataset query returned 45678 rows",
		"2025-01-01 10:15:35.000+0000 ERROR Timeout connecting to Kafka broker\n    broker: kafka-2:9092",
		"2025-01-01 10:15:36.000+0000 INFO Profile updated for user 123",
		"2025-01-01 10:15:37.000+0000 DEBUG Health check passed",
	}

	var content strings.Builder
	for i := 0; i < numLines; i++ {
		fmt.Fprintln(&content, sampleRecords[i%len(sampleRecords)])
	}

	if _, err := tmpFile.WriteString(content.String()); err != nil {
		t.Fatalf("Failed to write to temp log file: %v", err)
	}
	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	return tmpFile.Name(), cleanup
}

// TempFilePath returns a cross-platform temporary file path with the
// given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path)

	return path
}

// TempDirPath returns a cross-platform temporary directory path.
func TempDirPath(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
