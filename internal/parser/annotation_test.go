package parser

import (
	"testing"

	"github.com/alexhholmes/bitlayout/internal/schema"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		comment      string
		wantStorage  schema.Width
		wantOverflow schema.OverflowPolicy
		wantOverlap  bool
		wantErr      bool
	}{
		// Valid annotations
		{"@bitfield", 0, schema.Truncate, false, false}, // storage resolves to uint8
		{"@bitfield storage=uint64", schema.Width64, schema.Truncate, false, false},
		{"@bitfield storage=16", schema.Width16, schema.Truncate, false, false},
		{"@bitfield storage=byte overflow=reject", schema.Width8, schema.Reject, false, false},
		{"@bitfield overflow=reject storage=uint32", schema.Width32, schema.Reject, false, false}, // Order doesn't matter
		{"@bitfield storage=uint64 overlap=allow", schema.Width64, schema.Truncate, true, false},
		{"@bitfield overlap=deny", 0, schema.Truncate, false, false},

		// Error cases
		{"", 0, 0, false, true},                                // no annotation
		{"storage=uint64", 0, 0, false, true},                  // missing @bitfield
		{"@bitfield storage=uint7", 0, 0, false, true},         // not a native width
		{"@bitfield storage=int64", 0, 0, false, true},         // signed storage
		{"@bitfield overflow=wrap", 0, 0, false, true},         // invalid policy
		{"@bitfield overlap=maybe", 0, 0, false, true},         // invalid overlap
		{"@bitfield storage=uint64 unknown=bar", 0, 0, false, true}, // unknown param
		{"@bitfield storage", 0, 0, false, true},               // missing value
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			got, err := ParseAnnotation(tt.comment)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAnnotation(%q) expected error, got nil", tt.comment)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseAnnotation(%q) unexpected error: %v", tt.comment, err)
			}

			if got.Storage != tt.wantStorage {
				t.Errorf("ParseAnnotation(%q).Storage = %d, want %d", tt.comment, got.Storage, tt.wantStorage)
			}

			if got.Overflow != tt.wantOverflow {
				t.Errorf("ParseAnnotation(%q).Overflow = %v, want %v", tt.comment, got.Overflow, tt.wantOverflow)
			}

			if got.AllowOverlap != tt.wantOverlap {
				t.Errorf("ParseAnnotation(%q).AllowOverlap = %v, want %v", tt.comment, got.AllowOverlap, tt.wantOverlap)
			}
		})
	}
}

func TestCleanComment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"// @bitfield storage=uint64", "@bitfield storage=uint64"},
		{"  //   @bitfield storage=uint64  ", "@bitfield storage=uint64"},
		{"/* @bitfield storage=uint64 */", "@bitfield storage=uint64"},
		{"  /*  @bitfield storage=uint64  */  ", "@bitfield storage=uint64"},
		{"@bitfield storage=uint64", "@bitfield storage=uint64"}, // no markers
		{"", ""},
	}

	for _, tt := range tests {
		got := CleanComment(tt.input)
		if got != tt.want {
			t.Errorf("CleanComment(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFindAnnotation(t *testing.T) {
	tests := []struct {
		name        string
		comments    []string
		wantStorage schema.Width
		wantFound   bool
		wantErr     bool
	}{
		{
			name: "found in first line",
			comments: []string{
				"@bitfield storage=uint32",
				"other comment",
			},
			wantStorage: schema.Width32,
			wantFound:   true,
		},
		{
			name: "found in second line",
			comments: []string{
				"Header is a header",
				"@bitfield storage=uint16",
			},
			wantStorage: schema.Width16,
			wantFound:   true,
		},
		{
			name: "malformed",
			comments: []string{
				"@bitfield storage=uint9",
			},
			wantFound: true,
			wantErr:   true,
		},
		{
			name: "not found",
			comments: []string{
				"Just a comment",
				"mentions @bitfield in passing",
			},
			wantFound: false,
		},
		{
			name:      "empty comments",
			comments:  []string{},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := FindAnnotation(tt.comments)

			if found != tt.wantFound {
				t.Errorf("FindAnnotation() found = %v, want %v", found, tt.wantFound)
				return
			}

			if (err != nil) != tt.wantErr {
				t.Errorf("FindAnnotation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantFound || tt.wantErr {
				return
			}

			if got.Storage != tt.wantStorage {
				t.Errorf("FindAnnotation().Storage = %d, want %d", got.Storage, tt.wantStorage)
			}
		})
	}
}
