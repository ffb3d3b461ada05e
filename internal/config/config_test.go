package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bearing-alert.klederson.com/internal/alert"
	"bearing-alert.klederson.com/internal/compass"
	"go.viam.com/test"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bearing-alert.yaml")
	test.That(t, os.WriteFile(path, []byte(body), 0o644), test.ShouldBeNil)
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Default())
	test.That(t, cfg.Threshold, test.ShouldEqual, 10)
	test.That(t, cfg.AlertPolicy(), test.ShouldEqual, alert.PolicyEvery)
	test.That(t, cfg.HeadingFilter(), test.ShouldEqual, compass.DefaultFilter)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
threshold: 25
heading_filter_deg: 5
demo: true
alert:
  policy: cooldown
  cooldown: 3s
companion:
  adapter: hci1
  company_id: 0x1234
  ble: false
  listen: ":8089"
log:
  level: debug
  file: /tmp/bearing-alert.log
`)
	cfg, err := Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Threshold, test.ShouldEqual, 25)
	test.That(t, cfg.HeadingFilterDeg, test.ShouldEqual, 5)
	test.That(t, cfg.Demo, test.ShouldBeTrue)
	test.That(t, cfg.AlertPolicy(), test.ShouldEqual, alert.PolicyCooldown)
	test.That(t, cfg.Alert.Cooldown, test.ShouldEqual, 3*time.Second)
	test.That(t, cfg.Companion, test.ShouldResemble, Companion{
		Adapter: "hci1", CompanyID: 0x1234, BLE: false, Listen: ":8089",
	})
	test.That(t, cfg.Log, test.ShouldResemble, LogConfig{Level: "debug", File: "/tmp/bearing-alert.log"})
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "threshold: 25\n")
	t.Setenv("BEARING_ALERT_THRESHOLD", "40")
	t.Setenv("BEARING_ALERT_ALERT_POLICY", "entry")
	t.Setenv("BEARING_ALERT_COMPANY_ID", "0x00E0")
	t.Setenv("BEARING_ALERT_BLE", "false")
	t.Setenv("BEARING_ALERT_ALERT_COOLDOWN", "750ms")

	cfg, err := Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Threshold, test.ShouldEqual, 40)
	test.That(t, cfg.AlertPolicy(), test.ShouldEqual, alert.PolicyEntry)
	test.That(t, cfg.Companion.CompanyID, test.ShouldEqual, uint16(0x00E0))
	test.That(t, cfg.Companion.BLE, test.ShouldBeFalse)
	test.That(t, cfg.Alert.Cooldown, test.ShouldEqual, 750*time.Millisecond)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("BEARING_ALERT_THRESHOLD", "ten")
	_, err := Load("")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "BEARING_ALERT_THRESHOLD")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative threshold", func(c *Config) { c.Threshold = -1 }, "threshold"},
		{"wide threshold", func(c *Config) { c.Threshold = 181 }, "threshold"},
		{"zero filter", func(c *Config) { c.HeadingFilterDeg = 0 }, "heading filter"},
		{"bad policy", func(c *Config) { c.Alert.Policy = "often" }, "often"},
		{"no cooldown", func(c *Config) { c.Alert.Policy = "cooldown"; c.Alert.Cooldown = 0 }, "cooldown"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "loud"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errMsg)
		})
	}
	test.That(t, Default().Validate(), test.ShouldBeNil)
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "bearing-alert.example.yaml"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Default())
}
