package csdl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// detectDuplicateKeys walks the token stream of data and reports object keys
// that occur twice in the same object. Under DuplicateError the first
// duplicate aborts with ErrDuplicateKey. maxWarnings > 0 caps the warnings and
// appends a truncation marker.
func detectDuplicateKeys(data []byte, policy DuplicatePolicy, maxWarnings int) ([]Warning, error) {
	if policy == DuplicateIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var warns []Warning
	var stack []dupFrame
	truncated := false

	// childPath returns the path of the value that starts at the current
	// position and advances the enclosing container past it.
	childPath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.path + "/" + strconv.Itoa(top.nextIndex)
			top.nextIndex++
			return p
		}
		top.expectingKey = true
		return top.path + "/" + pointerEscaper.Replace(top.pendingKey)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return warns, fmt.Errorf("csdl: scan json: %w", err)
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: childPath()})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray, path: childPath()})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].kind == kindObject && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					w := Warning{Code: CodeDuplicateKey, Path: top.path, Key: v, Message: "key '" + v + "' duplicated"}
					if policy == DuplicateError {
						return append(warns, w), fmt.Errorf("%w: %q at %q", ErrDuplicateKey, v, top.path)
					}
					switch {
					case maxWarnings > 0 && len(warns) >= maxWarnings:
						if !truncated {
							warns = append(warns, Warning{Code: CodeTruncated, Path: "", Message: "max warnings reached"})
							truncated = true
						}
					default:
						warns = append(warns, w)
					}
				}
				top.keys[v] = struct{}{}
				top.pendingKey = v
				top.expectingKey = false
				continue
			}
			childPath()
		default:
			childPath()
		}
	}
	return warns, nil
}
