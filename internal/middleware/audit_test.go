package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSnapshotBodyCapsAudit(t *testing.T) {
	big := bytes.Repeat([]byte("a"), auditBodyLimit*2)
	req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewReader(big))

	snap := snapshotBody(req)
	if len(snap) != auditBodyLimit {
		t.Fatalf("snapshot = %d bytes, want %d", len(snap), auditBodyLimit)
	}

	// 超限部分不进快照，但 handler 仍能读到完整请求体
	rest, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read restored body: %v", err)
	}
	if len(rest) != len(big) {
		t.Fatalf("restored body = %d bytes, want %d", len(rest), len(big))
	}
}

func TestSnapshotBodyNilBody(t *testing.T) {
	req := &http.Request{}
	if snap := snapshotBody(req); snap != nil {
		t.Fatalf("expected nil snapshot, got %d bytes", len(snap))
	}
}
