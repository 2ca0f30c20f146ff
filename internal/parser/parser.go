// Package parser reads YAML match sheets into model.RawMatch.
package parser

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pable/go-skill-ratings/internal/model"
)

// DateLayout is the played_at format.
const DateLayout = "2006-01-02"

// ParseFile reads and parses the match sheet at path.
func ParseFile(path string) (*model.RawMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	raw, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	raw.SourcePath = path
	return raw, nil
}

// Parse decodes a sheet and checks it describes a ratable match: two or
// more teams, no empty teams, and every player named once. A missing
// played_at defaults to today (UTC).
func Parse(data []byte) (*model.RawMatch, error) {
	var raw model.RawMatch
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode sheet: %w", err)
	}

	// Hash for idempotency key.
	raw.SourceHash = fmt.Sprintf("%x", sha256.Sum256(data))

	if raw.PlayedAt == "" {
		raw.PlayedAt = time.Now().UTC().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, raw.PlayedAt); err != nil {
		return nil, fmt.Errorf("played_at %q: want YYYY-MM-DD", raw.PlayedAt)
	}

	if len(raw.Teams) < 2 {
		return nil, fmt.Errorf("need at least 2 teams, got %d", len(raw.Teams))
	}
	seen := make(map[string]int)
	for i, t := range raw.Teams {
		if len(t.Players) == 0 {
			return nil, fmt.Errorf("team %d has no players", i+1)
		}
		for j, name := range t.Players {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("team %d: player %d has an empty name", i+1, j+1)
			}
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("player %q listed in team %d and team %d", name, prev+1, i+1)
			}
			seen[name] = i
			raw.Teams[i].Players[j] = name
		}
	}
	return &raw, nil
}
