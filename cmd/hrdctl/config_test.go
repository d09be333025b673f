package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakub-gawryl/hrdapi/session"
	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hrdctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigExample(t *testing.T) {
	a := assert.New(t)
	cfg, err := loadConfig("hrdctl.example.toml")
	if !a.NoError(err) {
		return
	}
	a.Equal(session.DefaultAddress, cfg.Session.Address)
	a.Equal(session.Credential{Login: "partner", Pass: "secret", Hash: "8ef5"}, cfg.Credential)
	a.Equal(10*time.Second, cfg.Session.ConnectTimeout)
	a.Equal(30*time.Second, cfg.Session.ReplyTimeout)
	a.Zero(cfg.Session.MaxFrameSize)
	a.Nil(cfg.Session.TLSConfig)
}

func TestLoadConfigOverrides(t *testing.T) {
	a := assert.New(t)
	path := writeConfig(t, `
address = " 127.0.0.1:9999 "
server_name = "api.hrd.pl"
login = "partner"
hash = "a39dee"
reply_timeout = "2s"
max_frame_size = 4096
wait_for_slot = true
untagged_replies = true
`)
	cfg, err := loadConfig(path)
	if !a.NoError(err) {
		return
	}
	a.Equal("127.0.0.1:9999", cfg.Session.Address)
	if a.NotNil(cfg.Session.TLSConfig) {
		a.Equal("api.hrd.pl", cfg.Session.TLSConfig.ServerName)
	}
	a.Equal(10*time.Second, cfg.Session.ConnectTimeout, "default kept")
	a.Equal(2*time.Second, cfg.Session.ReplyTimeout)
	a.Equal(uint32(4096), cfg.Session.MaxFrameSize)
	a.True(cfg.Session.WaitForSlot)
	a.True(cfg.Session.UntaggedReplies)
	a.Empty(cfg.Credential.Pass)
}

func TestLoadConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{name: "syntax", body: `login = `},
		{name: "bad duration", body: "login = \"p\"\nhash = \"00\"\nconnect_timeout = \"soon\""},
		{name: "frame size", body: "login = \"p\"\nhash = \"00\"\nmax_frame_size = -1"},
		{name: "no hash", body: `login = "p"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
