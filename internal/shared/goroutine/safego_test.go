package goroutine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/testutil"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	log := testutil.NewMockLogger()

	SafeGo(log, "boom", func() { panic("unexpected") })

	assert.Eventually(t, func() bool {
		return log.HasEntry("ERROR", "goroutine panicked")
	}, time.Second, 10*time.Millisecond)
}

func TestSafeGo_RunsFunction(t *testing.T) {
	done := make(chan struct{})
	SafeGo(testutil.NewMockLogger(), "ok", func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("function did not run")
	}
}
