// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	w := NewWriter(path)

	if err := w.Append(Record{Time: time.Unix(0, 0), Event: EventSyncStart, Remote: "github"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Append(Record{Time: time.Unix(1, 0), Event: EventSyncEnd, Remote: "github", Outcome: "success"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var rec Record
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec.Event != EventSyncEnd || rec.Outcome != "success" {
		t.Errorf("decoded record = %+v", rec)
	}
}

func TestAppendRedactsDetail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	w := NewWriter(path)

	if err := w.Append(Record{Event: EventCredentialAccess, Detail: "token=hunter2"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "hunter2") {
		t.Errorf("audit log leaked a secret: %s", data)
	}
}
