package jvm

import (
	"fmt"
	"strings"
)

// ParseFieldDescriptor parses a single field descriptor (I, [J, Ljava/lang/String;)
// and returns the type together with the number of bytes consumed.
func ParseFieldDescriptor(desc string) (TypeRef, int, error) {
	dims := 0
	for dims < len(desc) && desc[dims] == '[' {
		dims++
	}
	if dims == len(desc) {
		return "", 0, fmt.Errorf("truncated descriptor %q", desc)
	}

	prefix := strings.Repeat("[", dims)
	switch c := desc[dims]; c {
	case 'Z', 'B', 'C', 'S', 'I', 'J', 'F', 'D':
		return TypeRef(prefix + string(c)), dims + 1, nil
	case 'L':
		end := strings.IndexByte(desc[dims:], ';')
		if end < 0 {
			return "", 0, fmt.Errorf("unterminated class name in descriptor %q", desc)
		}
		end += dims
		return TypeRef(prefix + desc[dims:end]), end + 1, nil
	default:
		return "", 0, fmt.Errorf("invalid descriptor character %q in %q", c, desc)
	}
}

// ParseMethodDescriptor splits a method descriptor such as (Ljava/lang/String;I)V
// into its declared parameter types and return type.
func ParseMethodDescriptor(desc string) ([]TypeRef, TypeRef, error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, "", fmt.Errorf("method descriptor %q does not start with '('", desc)
	}
	rest := desc[1:]
	var params []TypeRef
	for {
		if rest == "" {
			return nil, "", fmt.Errorf("unterminated parameter list in %q", desc)
		}
		if rest[0] == ')' {
			rest = rest[1:]
			break
		}
		param, n, err := ParseFieldDescriptor(rest)
		if err != nil {
			return nil, "", err
		}
		params = append(params, param)
		rest = rest[n:]
	}

	if rest == "V" {
		return params, Void, nil
	}
	ret, n, err := ParseFieldDescriptor(rest)
	if err != nil {
		return nil, "", err
	}
	if n != len(rest) {
		return nil, "", fmt.Errorf("trailing data after return type in %q", desc)
	}
	return params, ret, nil
}
