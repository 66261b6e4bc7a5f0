package frontmatter

import (
	"reflect"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMeta *Metadata
		wantBody string
		wantErr  bool
	}{
		{
			name: "full header",
			content: `---
id: note-123
title: Weekly Plan
created_at: 2024-03-01T10:00:00Z
updated_at: 2024-03-02T11:30:00Z
notebook: work
tags: [planning, weekly]
hash: deadbeef
---

# Weekly Plan

Body text.`,
			wantMeta: &Metadata{
				ID:        "note-123",
				Title:     "Weekly Plan",
				CreatedAt: "2024-03-01T10:00:00Z",
				UpdatedAt: "2024-03-02T11:30:00Z",
				Notebook:  "work",
				Tags:      []string{"planning", "weekly"},
				Hash:      "deadbeef",
			},
			wantBody: "\n# Weekly Plan\n\nBody text.",
		},
		{
			name: "minimal header",
			content: `---
id: bare
title: Bare
created_at: 2024-01-01T00:00:00Z
updated_at: 2024-01-01T00:00:00Z
tags: []
---

Content`,
			wantMeta: &Metadata{
				ID:        "bare",
				Title:     "Bare",
				CreatedAt: "2024-01-01T00:00:00Z",
				UpdatedAt: "2024-01-01T00:00:00Z",
				Tags:      []string{},
			},
			wantBody: "\nContent",
		},
		{
			name:     "no header",
			content:  "# Just a note\n\nNo metadata here.",
			wantMeta: nil,
			wantBody: "# Just a note\n\nNo metadata here.",
		},
		{
			name: "invalid yaml",
			content: `---
id: broken
title: [unclosed
---

Body`,
			wantMeta: nil,
			wantBody: "---\nid: broken\ntitle: [unclosed\n---\n\nBody",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMeta, gotBody, err := Parse(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(gotMeta, tt.wantMeta) {
				t.Errorf("Parse() meta = %+v, want %+v", gotMeta, tt.wantMeta)
			}
			if gotBody != tt.wantBody {
				t.Errorf("Parse() body = %q, want %q", gotBody, tt.wantBody)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		meta *Metadata
		want string
	}{
		{
			name: "full header",
			meta: &Metadata{
				ID:        "note-123",
				Title:     "Weekly Plan",
				CreatedAt: "2024-03-01T10:00:00Z",
				UpdatedAt: "2024-03-02T11:30:00Z",
				Notebook:  "work",
				Tags:      []string{"planning", "weekly"},
				Hash:      "deadbeef",
			},
			want: `---
id: note-123
title: Weekly Plan
created_at: 2024-03-01T10:00:00Z
updated_at: 2024-03-02T11:30:00Z
notebook: work
tags: [planning, weekly]
hash: deadbeef
---`,
		},
		{
			name: "empty optionals omitted",
			meta: &Metadata{
				ID:        "bare",
				Title:     "Bare",
				CreatedAt: "2024-01-01T00:00:00Z",
				UpdatedAt: "2024-01-01T00:00:00Z",
			},
			want: `---
id: bare
title: Bare
created_at: 2024-01-01T00:00:00Z
updated_at: 2024-01-01T00:00:00Z
tags: []
---`,
		},
		{
			name: "title with yaml characters gets quoted",
			meta: &Metadata{
				ID:        "q",
				Title:     "plan: phase one",
				CreatedAt: "2024-01-01T00:00:00Z",
				UpdatedAt: "2024-01-01T00:00:00Z",
			},
			want: `---
id: q
title: "plan: phase one"
created_at: 2024-01-01T00:00:00Z
updated_at: 2024-01-01T00:00:00Z
tags: []
---`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.meta); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQuotesNewlines(t *testing.T) {
	meta := &Metadata{
		ID:        "multiline",
		Title:     "line one\nline two",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
	}

	built := Build(meta)
	want := `---
id: multiline
title: "line one\nline two"
created_at: 2024-01-01T00:00:00Z
updated_at: 2024-01-01T00:00:00Z
tags: []
---`
	if built != want {
		t.Errorf("Build() = %q, want %q", built, want)
	}

	// A raw newline in the title would tear the header; quoting keeps
	// the file parseable and the title intact.
	gotMeta, _, err := Parse(BuildContent(meta, "body"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if gotMeta == nil || gotMeta.Title != meta.Title {
		t.Errorf("round trip title = %+v, want %q", gotMeta, meta.Title)
	}
}

func TestBuildParseRoundTrip(t *testing.T) {
	meta := &Metadata{
		ID:        "round-trip",
		Title:     "notes: a, b and c",
		CreatedAt: "2024-06-15T08:00:00Z",
		UpdatedAt: "2024-06-15T09:00:00Z",
		Notebook:  "ideas",
		Tags:      []string{"one", "two, three"},
	}
	body := "Some body.\n"

	gotMeta, gotBody, err := Parse(BuildContent(meta, body))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(gotMeta, meta) {
		t.Errorf("round trip meta = %+v, want %+v", gotMeta, meta)
	}
	if gotBody != "\n"+body {
		t.Errorf("round trip body = %q, want %q", gotBody, "\n"+body)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	orig := time.Date(2024, 3, 1, 15, 30, 0, 0, time.FixedZone("CET", 3600))

	s := FormatTimestamp(orig)
	if s != "2024-03-01T14:30:00Z" {
		t.Errorf("FormatTimestamp() = %q", s)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if !parsed.Equal(orig) {
		t.Errorf("round trip = %v, want %v", parsed, orig)
	}
}
