package rosterimpl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/roster"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type rosterFile struct {
	Public  []string `yaml:"public"`
	Private []string `yaml:"private"`
}

type entry struct {
	username   string
	visibility domain.Visibility
}

func (r *RosterImpl) Import(ctx context.Context, in io.Reader, visibility domain.Visibility) (roster.ImportResult, error) {
	var result roster.ImportResult

	entries, err := parseRoster(in, visibility)
	if err != nil {
		return result, err
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, err := r.Add(ctx, e.username, e.visibility); err != nil {
			if errors.Is(err, roster.ErrAlreadyTracked) {
				result.Skipped = append(result.Skipped, e.username)
				continue
			}
			return result, err
		}
		result.Added = append(result.Added, e.username)
	}

	r.Logger.Info("Roster imported", "added", len(result.Added), "skipped", len(result.Skipped))
	return result, nil
}

// parseRoster accepts JSON as well, since JSON documents are valid YAML.
func parseRoster(in io.Reader, visibility domain.Visibility) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	var entries []entry
	switch root := doc.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if visibility == domain.VisibilityAll {
			visibility = domain.VisibilityPublic
		}
		var names []string
		if err := root.Decode(&names); err != nil {
			return nil, fmt.Errorf("roster list must contain usernames: %w", err)
		}
		entries = toEntries(names, visibility)

	case yaml.MappingNode:
		var f rosterFile
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("roster mapping must have public and private lists: %w", err)
		}
		entries = append(toEntries(f.Public, domain.VisibilityPublic), toEntries(f.Private, domain.VisibilityPrivate)...)

	default:
		return nil, fmt.Errorf("roster file must be a list or a {public, private} mapping")
	}

	entries = lo.UniqBy(entries, func(e entry) entry { return e })
	conflicts := lo.FindDuplicates(lo.Map(entries, func(e entry, _ int) string { return e.username }))
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("usernames listed as both public and private: %v", conflicts)
	}

	for _, e := range entries {
		if err := domain.ValidateUsername(e.username); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func toEntries(names []string, visibility domain.Visibility) []entry {
	names = lo.Compact(lo.Map(names, func(n string, _ int) string { return domain.SanitizeUsername(n) }))
	return lo.Map(names, func(n string, _ int) entry { return entry{username: n, visibility: visibility} })
}
