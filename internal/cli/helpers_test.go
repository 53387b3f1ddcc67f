package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/resilia/internal/config"
	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/dmitrijs2005/resilia/internal/models"
	"github.com/dmitrijs2005/resilia/internal/repositories/kv"
	"github.com/stretchr/testify/require"
)

// stubTerminal makes GetPassword read from the input reader.
func stubTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func silenceREPL(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

// newTestApp builds an App over an in-memory store. The lines are the
// answers to every prompt the test triggers, in order.
func newTestApp(t *testing.T, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	a, err := newApp(context.Background(), cfg, kv.NewMemoryRepository(), logging.Nop(), in, &out)
	require.NoError(t, err)
	return a, &out
}

// loginAs registers and logs in without touching the prompt input.
func loginAs(t *testing.T, a *App, email, password string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, a.accounts.Register(ctx, models.RegisterInput{Email: email, Password: password}))
	_, err := a.sessions.Login(ctx, email, password)
	require.NoError(t, err)
}
