package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/BurntSushi/toml"
)

// Dictionary keys produced by RenderDictionary.
const (
	KeyClass   = "class"
	KeyFQClass = "fqclass"
	KeyMessage = "message"
)

// RenderDictionary returns a dictionary representation of an error with its
// short type name, fully-qualified type name and message. The type is that
// of the failure beneath any fmt.Errorf wrapping; the message keeps the whole
// chain.
func RenderDictionary(err error) map[string]string {
	class, fqclass := describeType(underlyingFailure(err))
	message := ""
	if err != nil {
		message = err.Error()
	}
	return map[string]string{
		KeyClass:   class,
		KeyFQClass: fqclass,
		KeyMessage: message,
	}
}

// RenderJSON renders an error dictionary as JSON. Compact output omits all
// insignificant whitespace; otherwise indent spaces are used per level.
func RenderJSON(err error, compact bool, indent int) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if !compact {
		encoder.SetIndent("", spaces(indent))
	}
	if encErr := encoder.Encode(RenderDictionary(err)); encErr != nil {
		return "", fmt.Errorf("encoding error dictionary as JSON: %w", encErr)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// RenderTOML renders an error dictionary as a TOML document.
func RenderTOML(err error) (string, error) {
	var buf bytes.Buffer
	if encErr := toml.NewEncoder(&buf).Encode(RenderDictionary(err)); encErr != nil {
		return "", fmt.Errorf("encoding error dictionary as TOML: %w", encErr)
	}
	return buf.String(), nil
}

// RenderMarkdown renders an error as Markdown lines.
func RenderMarkdown(err error) []string {
	dictionary := RenderDictionary(err)
	return []string{
		fmt.Sprintf("[**%s**] %s", dictionary[KeyFQClass], dictionary[KeyMessage]),
	}
}

// ParseDictionaryJSON reads an error dictionary produced by RenderJSON.
func ParseDictionaryJSON(data string) (map[string]string, error) {
	var dictionary map[string]string
	if err := json.Unmarshal([]byte(data), &dictionary); err != nil {
		return nil, fmt.Errorf("decoding error dictionary from JSON: %w", err)
	}
	return dictionary, nil
}

// ParseDictionaryTOML reads an error dictionary produced by RenderTOML.
func ParseDictionaryTOML(data string) (map[string]string, error) {
	var dictionary map[string]string
	if _, err := toml.Decode(data, &dictionary); err != nil {
		return nil, fmt.Errorf("decoding error dictionary from TOML: %w", err)
	}
	return dictionary, nil
}

// underlyingFailure unwraps the wrappers made by fmt.Errorf. A wrapper
// holding several errors yields its first.
func underlyingFailure(err error) error {
	for err != nil && isFormatWrapper(err) {
		var next error
		switch wrapped := err.(type) {
		case interface{ Unwrap() error }:
			next = wrapped.Unwrap()
		case interface{ Unwrap() []error }:
			if errs := wrapped.Unwrap(); len(errs) > 0 {
				next = errs[0]
			}
		}
		if next == nil {
			return err
		}
		err = next
	}
	return err
}

func isFormatWrapper(err error) bool {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() == "fmt"
}

func describeType(err error) (class, fqclass string) {
	if err == nil {
		return "nil", "nil"
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	class = t.Name()
	if class == "" {
		class = t.String()
	}
	if t.PkgPath() == "" {
		return class, class
	}
	return class, t.PkgPath() + "." + class
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return string(bytes.Repeat([]byte{' '}, n))
}
