package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldTag is the parsed form of a bits struct tag
type FieldTag struct {
	Length int  // 0 if unspecified (one bit)
	Offset int  // -1 if the field follows the previous one
	Skip   int  // Unused bits after the field
	Ext    *Ext // nil without extension
}

// Ext is the extension part of a tag
type Ext struct {
	Offset int
	Length int
	Keep   bool
}

// ParseTag parses bits struct tags
//
// Semantics:
//   - ""                : one bit following the previous field
//   - "len=N"           : N bits
//   - "@N"              : declared bit position N (bit N-1 of the word, @0 is bit 0)
//   - "skip=N"          : leave N unused bits after the field
//   - "ext=O:L"         : L more value bits at bit O, concatenated above the primary bits
//   - "ext=O:L,keep"    : extension bits read in place together with the primary bits
//
// Examples:
//
//	"len=12,ext=25:5,keep"  → 12 bits, 5 extension bits at 25 read in place
//	"@33,len=16"            → 16 bits starting at bit 32
//	"len=3,skip=2"          → 3 bits followed by a 2 bit gap
func ParseTag(tag string) (*FieldTag, error) {
	f := &FieldTag{Offset: -1}

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return f, nil
	}

	keep := false
	seen := make(map[string]bool)
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)

		key := part
		if strings.HasPrefix(part, "@") {
			key = "@"
		} else if i := strings.IndexByte(part, '='); i >= 0 {
			key = part[:i]
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate parameter: %s", part)
		}
		seen[key] = true

		switch {
		case strings.HasPrefix(part, "@"):
			// Declared offset: "@8" → 8
			n, err := parseCount(strings.TrimPrefix(part, "@"))
			if err != nil {
				return nil, fmt.Errorf("invalid offset: %s", part)
			}
			f.Offset = n

		case part == "keep":
			keep = true

		default:
			kv := strings.SplitN(part, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("unknown parameter: %s", part)
			}
			if err := f.set(kv[0], kv[1]); err != nil {
				return nil, err
			}
		}
	}

	if keep {
		if f.Ext == nil {
			return nil, fmt.Errorf("keep requires ext=offset:length")
		}
		f.Ext.Keep = true
	}

	return f, nil
}

func (f *FieldTag) set(key, value string) error {
	switch key {
	case "len":
		n, err := parseCount(value)
		if err != nil || n == 0 {
			return fmt.Errorf("invalid length: %s", value)
		}
		f.Length = n

	case "skip":
		n, err := parseCount(value)
		if err != nil {
			return fmt.Errorf("invalid skip: %s", value)
		}
		f.Skip = n

	case "ext":
		// "25:5" → offset 25, length 5
		ol := strings.SplitN(value, ":", 2)
		if len(ol) != 2 {
			return fmt.Errorf("ext requires offset:length, got: %s", value)
		}
		off, err := parseCount(ol[0])
		if err != nil {
			return fmt.Errorf("invalid extension offset: %s", ol[0])
		}
		n, err := parseCount(ol[1])
		if err != nil || n == 0 {
			return fmt.Errorf("invalid extension length: %s", ol[1])
		}
		f.Ext = &Ext{Offset: off, Length: n}

	default:
		return fmt.Errorf("unknown parameter: %s", key)
	}
	return nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value: %d", n)
	}
	return n, nil
}
