package main

import (
	"errors"
	"os"

	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/fs"
	"github.com/fwojciec/htmlpatch/goquery"
	"gopkg.in/yaml.v3"
)

// DefaultMetaDir is where batch parse writes records when --out is not given.
const DefaultMetaDir = ".htmlpatch-meta"

// Config holds the settings read from the optional YAML file.
type Config struct {
	BackupDir   string       `yaml:"backup_dir"`
	MetaDir     string       `yaml:"meta_dir"`
	FilePattern string       `yaml:"file_pattern"`
	Markers     bool         `yaml:"markers"`
	Sanitize    bool         `yaml:"sanitize"`
	Notice      NoticeConfig `yaml:"notice"`
}

// NoticeConfig overrides the look of the disclosure element that update
// always adds.
type NoticeConfig struct {
	Class string `yaml:"class"`
	Style string `yaml:"style"`
	Text  string `yaml:"text"`
}

func (c *Config) defaults() {
	if c.BackupDir == "" {
		c.BackupDir = fs.DefaultBackupDir
	}
	if c.MetaDir == "" {
		c.MetaDir = DefaultMetaDir
	}
	if c.FilePattern == "" {
		c.FilePattern = fs.DefaultPattern
	}

	n := goquery.DefaultNotice()
	if c.Notice.Class == "" {
		c.Notice.Class = n.Class
	}
	if c.Notice.Style == "" {
		c.Notice.Style = n.Style
	}
	if c.Notice.Text == "" {
		c.Notice.Text = n.Text
	}
}

// NewConfig returns a Config holding the defaults.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// LoadConfigFile reads a YAML config file and fills in defaults for
// missing settings.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, htmlpatch.Errorf(htmlpatch.EINVALID, "invalid config %s: %v", path, err)
	}
	cfg.defaults()
	return cfg, nil
}

// patcherOptions translates the notice and sanitize settings.
func (c *Config) patcherOptions(sanitizer htmlpatch.Sanitizer) []goquery.PatcherOption {
	opts := []goquery.PatcherOption{goquery.WithNotice(goquery.Notice{
		Class: c.Notice.Class,
		Style: c.Notice.Style,
		Text:  c.Notice.Text,
	})}
	if c.Sanitize && sanitizer != nil {
		opts = append(opts, goquery.WithSanitizer(sanitizer))
	}
	return opts
}
