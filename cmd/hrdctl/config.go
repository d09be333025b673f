package main

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jakub-gawryl/hrdapi/session"
	"github.com/pkg/errors"
)

type fileConfig struct {
	Address         string `toml:"address"`
	ServerName      string `toml:"server_name"`
	Login           string `toml:"login"`
	Pass            string `toml:"pass"`
	Hash            string `toml:"hash"`
	ConnectTimeout  string `toml:"connect_timeout"`
	ReplyTimeout    string `toml:"reply_timeout"`
	MaxFrameSize    int64  `toml:"max_frame_size"`
	WaitForSlot     bool   `toml:"wait_for_slot"`
	UntaggedReplies bool   `toml:"untagged_replies"`
}

type config struct {
	Session    session.Config
	Credential session.Credential
}

func defaultConfig() config {
	return config{Session: session.Config{
		Address:        session.DefaultAddress,
		ConnectTimeout: 10 * time.Second,
		ReplyTimeout:   30 * time.Second,
	}}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.Wrap(err, "load hrdctl config")
	}

	if meta.IsDefined("address") {
		if addr := strings.TrimSpace(raw.Address); addr != "" {
			cfg.Session.Address = addr
		}
	}
	if meta.IsDefined("server_name") {
		cfg.Session.TLSConfig = &tls.Config{ServerName: strings.TrimSpace(raw.ServerName)}
	}
	if meta.IsDefined("login") {
		cfg.Credential.Login = strings.TrimSpace(raw.Login)
	}
	if meta.IsDefined("pass") {
		cfg.Credential.Pass = raw.Pass
	}
	if meta.IsDefined("hash") {
		cfg.Credential.Hash = strings.TrimSpace(raw.Hash)
	}
	if meta.IsDefined("connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ConnectTimeout))
		if err != nil {
			return config{}, errors.Wrap(err, "parse connect_timeout")
		}
		cfg.Session.ConnectTimeout = d
	}
	if meta.IsDefined("reply_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReplyTimeout))
		if err != nil {
			return config{}, errors.Wrap(err, "parse reply_timeout")
		}
		cfg.Session.ReplyTimeout = d
	}
	if meta.IsDefined("max_frame_size") {
		if raw.MaxFrameSize < 0 || raw.MaxFrameSize > 1<<32-1 {
			return config{}, errors.Errorf("max_frame_size %d out of range", raw.MaxFrameSize)
		}
		cfg.Session.MaxFrameSize = uint32(raw.MaxFrameSize)
	}
	if meta.IsDefined("wait_for_slot") {
		cfg.Session.WaitForSlot = raw.WaitForSlot
	}
	if meta.IsDefined("untagged_replies") {
		cfg.Session.UntaggedReplies = raw.UntaggedReplies
	}

	if cfg.Credential.Login == "" || cfg.Credential.Hash == "" {
		return config{}, errors.New("config requires login and hash")
	}
	return cfg, nil
}
