package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestNewDiscard(t *testing.T) {
	logger, err := New("test", "debug", "")
	test.That(t, err, test.ShouldBeNil)
	logger.Infow("dropped on the floor")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert.log")
	logger, err := New("engine", "info", path)
	test.That(t, err, test.ShouldBeNil)
	logger.Debugw("hidden")
	logger.Infow("bearing updated", "bearing", 90)
	test.That(t, logger.Sync(), test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, "bearing updated")
	test.That(t, string(data), test.ShouldContainSubstring, "engine")
	test.That(t, string(data), test.ShouldNotContainSubstring, "hidden")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New("x", "loud", filepath.Join(t.TempDir(), "x.log"))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = New("x", "loud", "")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")
}

func TestNewConfigLevel(t *testing.T) {
	cfg := NewConfig(zapcore.WarnLevel)
	test.That(t, cfg.Level.Level(), test.ShouldEqual, zapcore.WarnLevel)
	test.That(t, cfg.Encoding, test.ShouldEqual, "console")
}
