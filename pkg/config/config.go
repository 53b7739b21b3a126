// Package config loads settings from an optional YAML file, a .env file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file into out and then applies environment
// variable overrides declared with `env` struct tags. ${VAR} references in the
// file are expanded before parsing.
func Load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "read config file", goerr.V("path", path))
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return goerr.Wrap(err, "parse config file", goerr.V("path", path))
	}

	ApplyEnv(out)
	return nil
}

// LoadOrDefault behaves like Load, except that a missing file is not an error.
// Values already present in out are kept as defaults and environment
// overrides are applied either way. An empty path skips the file.
func LoadOrDefault(path string, out any) error {
	if path == "" {
		ApplyEnv(out)
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		ApplyEnv(out)
		return nil
	}
	return Load(path, out)
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Variables that are already set win. Missing files are skipped;
// with no paths ".env" in the working directory is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return goerr.Wrap(err, "load dotenv file", goerr.V("path", p))
		}
	}
	return nil
}

// ApplyEnv sets struct fields from environment variables named by their `env`
// tag. Nested structs are walked. A variable that is unset leaves the field
// alone; one that does not parse for the field's type is ignored.
func ApplyEnv(v any) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	t := val.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fieldVal := val.Field(i)

		if fieldVal.Kind() == reflect.Struct {
			if fieldVal.CanAddr() {
				ApplyEnv(fieldVal.Addr().Interface())
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" || !fieldVal.CanSet() {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		setField(fieldVal, strings.TrimSpace(raw))
	}
}

func setField(f reflect.Value, raw string) {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int, reflect.Int64:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.SetInt(n)
		}
	case reflect.Float64:
		if x, err := strconv.ParseFloat(raw, 64); err == nil {
			f.SetFloat(x)
		}
	case reflect.Bool:
		f.SetBool(strings.EqualFold(raw, "true") || raw == "1")
	}
}
