//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--server", "http://127.0.0.1:1"), "Failed to start app")
	require.True(t, tf.Ready(), "Should show soratra title")

	// Set up exit monitoring before quitting
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.Quit()

	select {
	case exitErr := <-done:
		if exitErr != nil {
			t.Logf("Process exited with esc (exit code: %v)", exitErr)
		}
		return
	case <-time.After(1500 * time.Millisecond):
		t.Logf("esc didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendKeys(KeyCtrlC)
	}

	select {
	case exitErr := <-done:
		t.Logf("Process exited with Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		tf.SendKeys(KeyCtrlC)
	}
}
