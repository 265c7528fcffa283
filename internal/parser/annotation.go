package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexhholmes/bitlayout/internal/schema"
)

// TypeAnnotation holds parsed @bitfield annotation
type TypeAnnotation struct {
	Storage      schema.Width          // Storage word width (0 = default uint8)
	Overflow     schema.OverflowPolicy // Pack policy for oversized values
	AllowOverlap bool                  // Fields may share bits (unions)
}

var (
	annotationRe = regexp.MustCompile(`^@bitfield(?:\s+(.*))?$`)
	pairRe       = regexp.MustCompile(`(\w+)=([\w-]+)`)
)

// ParseAnnotation parses @bitfield annotation from comment text
//
// Expected format:
//
//	// @bitfield
//	// @bitfield storage=uint64
//	// @bitfield storage=uint32 overflow=reject
//	// @bitfield storage=uint64 overlap=allow
//
// Params are space-separated key=value pairs. Storage defaults to uint8.
func ParseAnnotation(comment string) (*TypeAnnotation, error) {
	matches := annotationRe.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, fmt.Errorf("no @bitfield annotation found")
	}

	anno := &TypeAnnotation{}
	params := strings.TrimSpace(matches[1])
	if params == "" {
		return anno, nil
	}

	fields := strings.Fields(params)
	pairs := pairRe.FindAllStringSubmatch(params, -1)
	if len(pairs) != len(fields) {
		return nil, fmt.Errorf("malformed @bitfield parameters: %s", params)
	}

	for _, pair := range pairs {
		key := pair[1]
		value := pair[2]

		switch key {
		case "storage":
			w, err := schema.ParseWidth(value)
			if err != nil {
				return nil, err
			}
			anno.Storage = w

		case "overflow":
			p, err := schema.ParseOverflowPolicy(value)
			if err != nil {
				return nil, err
			}
			anno.Overflow = p

		case "overlap":
			if value != "allow" && value != "deny" {
				return nil, fmt.Errorf("overlap must be 'allow' or 'deny', got: %s", value)
			}
			anno.AllowOverlap = value == "allow"

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for @bitfield annotation
// Returns the annotation, or the parse error of a malformed one
func FindAnnotation(comments []string) (*TypeAnnotation, bool, error) {
	for _, comment := range comments {
		if !strings.HasPrefix(comment, "@bitfield") {
			continue
		}
		anno, err := ParseAnnotation(comment)
		if err != nil {
			return nil, true, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

// CleanComment removes comment markers from a line
// "// @bitfield storage=uint64" → "@bitfield storage=uint64"
// "/* @bitfield storage=uint64 */" → "@bitfield storage=uint64"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	// Remove // prefix
	if strings.HasPrefix(line, "//") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimSpace(line)
		return line
	}

	// Remove /* */ wrapper
	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		return line
	}

	return line
}
