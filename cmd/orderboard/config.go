package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration document. Keys mirror the long flag names.
type fileConfig struct {
	Addr       string        `yaml:"addr"`
	BasePath   string        `yaml:"base_path"`
	Transport  string        `yaml:"transport"`
	Theme      string        `yaml:"theme"`
	Title      string        `yaml:"title"`
	Manifest   string        `yaml:"manifest"`
	Dataset    string        `yaml:"dataset"`
	ChartTTL   time.Duration `yaml:"chart_ttl"`
	AssetsHost string        `yaml:"assets_host"`
	LogLevel   string        `yaml:"log_level"`
	LogFormat  string        `yaml:"log_format"`
	PageSize   int           `yaml:"page_size"`
}

func decodeFileConfig(r io.Reader) (fileConfig, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var cfg fileConfig
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("orderboard: parse config: %w", err)
	}
	return cfg, nil
}

// values maps long flag names to their configured values. Unset keys are absent.
func (c fileConfig) values() map[string]string {
	out := map[string]string{}
	set := func(name, value string) {
		if value != "" {
			out[name] = value
		}
	}
	set("addr", c.Addr)
	set("base-path", c.BasePath)
	set("transport", c.Transport)
	set("theme", c.Theme)
	set("title", c.Title)
	set("manifest", c.Manifest)
	set("dataset", c.Dataset)
	set("assets-host", c.AssetsHost)
	set("log-level", c.LogLevel)
	set("log-format", c.LogFormat)
	if c.ChartTTL > 0 {
		out["chart-ttl"] = c.ChartTTL.String()
	}
	if c.PageSize > 0 {
		out["size"] = strconv.Itoa(c.PageSize)
	}
	return out
}

func yamlConfigLoader(r io.Reader) (kong.Resolver, error) {
	cfg, err := decodeFileConfig(r)
	if err != nil {
		return nil, err
	}
	values := cfg.values()
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if value, ok := values[flag.Name]; ok {
			return value, nil
		}
		return nil, nil
	}), nil
}
