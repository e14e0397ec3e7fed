package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/observability"
)

func TestRootCmd_RejectsBadPortFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "LOG_FORMAT", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT", "FETCH_TIMEOUT", "REPORT_INTERVAL"} {
		t.Setenv(k, "")
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--port", "abc", "--data", "missing.csv"})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid PORT")
}

func TestServe_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	done := make(chan error, 1)
	go func() {
		done <- serve(context.Background(), app, ln.Addr().String(), time.Second, observability.DiscardLogger())
	}()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "listen "+ln.Addr().String())
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after listen failed")
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Hooks().OnListen(func(fiber.ListenData) error {
		cancel()
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, app, "127.0.0.1:0", time.Second, observability.DiscardLogger())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
