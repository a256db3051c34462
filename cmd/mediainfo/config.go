package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v3"

	"github.com/thesyncim/mediainfo"
)

// cliConfig is the YAML configuration file layout.
type cliConfig struct {
	Library       string              `yaml:"library"`
	Encoding      string              `yaml:"encoding"`
	NarrowCharset string              `yaml:"narrow_charset"`
	MinVersion    string              `yaml:"min_version"`
	Parallelism   int                 `yaml:"parallelism"`
	Format        string              `yaml:"format"`
	Fields        map[string][]string `yaml:"fields"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mediainfo.yaml")
}

// loadConfig reads path. A missing file yields the defaults.
func loadConfig(path string) (*cliConfig, error) {
	c := &cliConfig{Parallelism: 1, Format: "text"}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Parallelism <= 0 {
		c.Parallelism = 1
	}
	if c.Format == "" {
		c.Format = "text"
	}
	return c, nil
}

// applyFlags overrides file values with flags set on the command line.
func (c *cliConfig) applyFlags(flags *pflag.FlagSet) error {
	override := func(name string, dst *string) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	if err := override("lib", &c.Library); err != nil {
		return err
	}
	if err := override("encoding", &c.Encoding); err != nil {
		return err
	}
	return override("narrow-charset", &c.NarrowCharset)
}

// sessionConfig builds the library configuration.
func (c *cliConfig) sessionConfig() (mediainfo.Config, error) {
	sc := mediainfo.Config{
		LibraryPath: c.Library,
		MinVersion:  c.MinVersion,
		Logger:      log,
	}
	if c.Encoding != "" {
		enc, err := mediainfo.ParseEncoding(strings.ToLower(c.Encoding))
		if err != nil {
			return sc, err
		}
		sc.Encoding = mediainfo.Mode{Encoding: enc, Narrow: enc == mediainfo.EncodingANSI}
	}
	if c.NarrowCharset != "" {
		cs, err := lookupCharset(c.NarrowCharset)
		if err != nil {
			return sc, err
		}
		sc.NarrowCharset = cs
	}
	return sc, nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	cs, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("narrow charset %q: %w", name, err)
	}
	if cs == nil {
		return nil, fmt.Errorf("narrow charset %q is not supported", name)
	}
	return cs, nil
}

// fieldSet converts the configured field lists, falling back to the
// library defaults when none are configured.
func (c *cliConfig) fieldSet() (mediainfo.FieldSet, error) {
	if len(c.Fields) == 0 {
		return mediainfo.DefaultFields, nil
	}
	fields := make(mediainfo.FieldSet, len(c.Fields))
	for name, params := range c.Fields {
		kind, err := mediainfo.ParseStreamKind(name)
		if err != nil {
			return nil, err
		}
		fields[kind] = append(fields[kind], params...)
	}
	return fields, nil
}

// parseFieldFlags parses repeated "Kind=Param" flags.
func parseFieldFlags(values []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, v := range values {
		kind, param, ok := strings.Cut(v, "=")
		if !ok || kind == "" || param == "" {
			return nil, fmt.Errorf("invalid field %q, want Kind=Parameter", v)
		}
		out[kind] = append(out[kind], param)
	}
	return out, nil
}
