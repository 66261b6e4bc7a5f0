package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)`)

// Metadata is the structured header at the beginning of a mirrored note
// file. Notebook and Tags carry names, not ids: the mirror is meant to be
// readable without the database.
type Metadata struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	CreatedAt string   `yaml:"created_at"`
	UpdatedAt string   `yaml:"updated_at"`
	Notebook  string   `yaml:"notebook,omitempty"`
	Tags      []string `yaml:"tags,flow"`
	Hash      string   `yaml:"hash,omitempty"`
}

// Parse extracts the metadata header from content and returns it along
// with the body. Content without a header yields a nil Metadata and the
// unchanged input.
func Parse(content string) (*Metadata, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(matches[1]), &meta); err != nil {
		return nil, content, fmt.Errorf("parse frontmatter: %w", err)
	}

	if meta.Tags == nil {
		meta.Tags = []string{}
	}

	return &meta, matches[2], nil
}

// Build renders the YAML header for a Metadata struct with a stable field
// order.
func Build(meta *Metadata) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("id: %s\n", meta.ID))
	sb.WriteString(fmt.Sprintf("title: %s\n", quoteIfNeeded(meta.Title)))
	sb.WriteString(fmt.Sprintf("created_at: %s\n", meta.CreatedAt))
	sb.WriteString(fmt.Sprintf("updated_at: %s\n", meta.UpdatedAt))
	if meta.Notebook != "" {
		sb.WriteString(fmt.Sprintf("notebook: %s\n", quoteIfNeeded(meta.Notebook)))
	}
	sb.WriteString(fmt.Sprintf("tags: %s\n", formatYAMLArray(meta.Tags)))
	if meta.Hash != "" {
		sb.WriteString(fmt.Sprintf("hash: %s\n", meta.Hash))
	}
	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines a metadata header and body into a complete note
// file.
func BuildContent(meta *Metadata, body string) string {
	header := Build(meta)
	if !strings.HasPrefix(body, "\n") {
		return header + "\n\n" + body
	}
	return header + "\n" + body
}

// FormatTimestamp formats a time.Time into the header timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimestamp parses a header timestamp back into time.Time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// formatYAMLArray formats a string slice as a YAML flow-style array.
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quoteIfNeeded(item)
	}

	return fmt.Sprintf("[%s]", strings.Join(quoted, ", "))
}

// quoteIfNeeded quotes a string when it contains YAML-significant
// characters. Newlines must be quoted too, or a multi-line title would
// tear the header apart.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",:[]{}\"'#\n") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
