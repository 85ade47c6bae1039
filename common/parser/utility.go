package parser

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// templateFunctionHex turns a 0x-prefixed literal into its decimal form,
// since JSON has no hexadecimal numbers.
func templateFunctionHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", fmt.Errorf("invalid template: %s. Expected: hex \"0x[digits]\"", s)
	}
	n, err := strconv.ParseInt(s[2:], 16, 64)
	if err != nil {
		return "", fmt.Errorf("invalid template: %s. Not a 64-bit hexadecimal integer", s)
	}
	return strconv.FormatInt(n, 10), nil
}

var templateFunctionMap = template.FuncMap{
	"hex": templateFunctionHex,
}

// ApplyTemplate processes the configuration content with template functions
func ApplyTemplate(content []byte) ([]byte, error) {
	tmpl, err := template.New("config").Funcs(templateFunctionMap).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var result strings.Builder
	err = tmpl.Execute(&result, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return []byte(result.String()), nil
}
