package redis

import (
	"context"
	"testing"
	"time"
)

func TestOpen_FailsFastOnUnreachableRedis(t *testing.T) {
	_, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: time.Second})
	if err == nil {
		t.Fatal("expected a connection error for an unreachable address")
	}
}

func TestKey_NamespacesTokens(t *testing.T) {
	g := &SubmitGuard{}
	if got := g.key("tok-1"); got != "submit:tok-1" {
		t.Errorf("key = %q", got)
	}
}
