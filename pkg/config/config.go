// Package config loads YAML configuration files with environment variable
// overrides driven by struct tags.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file into out, expanding $VAR references in the file
// body, then overrides fields whose `env` tag names a set variable.
func Load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	applyEnvOverrides(reflect.ValueOf(out))
	return nil
}

// LoadOrDefault loads path if it exists and leaves out untouched otherwise,
// so callers can pre-fill defaults before calling.
func LoadOrDefault(path string, out any) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return Load(path, out)
}

// ApplyEnv applies `env` tag overrides to out without reading any file.
func ApplyEnv(out any) {
	applyEnvOverrides(reflect.ValueOf(out))
}

// applyEnvOverrides walks the struct and sets every field whose `env` tag
// names a variable present in the environment. Nested structs are walked
// recursively.
func applyEnvOverrides(val reflect.Value) {
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.Struct && field.CanAddr() {
			applyEnvOverrides(field.Addr())
			continue
		}

		tag := t.Field(i).Tag.Get("env")
		if tag == "" || !field.CanSet() {
			continue
		}
		if raw, ok := os.LookupEnv(tag); ok {
			setField(field, raw)
		}
	}
}

// setField converts raw to the field's kind. Values that fail to parse are
// ignored so a bad environment variable never clobbers the file value.
func setField(field reflect.Value, raw string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			field.SetInt(n)
		}
	case reflect.Float64:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			field.SetFloat(f)
		}
	case reflect.Bool:
		field.SetBool(strings.EqualFold(raw, "true") || raw == "1")
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts))
	}
}
