package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// VisibilityAll is only meaningful as a filter.
const VisibilityAll Visibility = ""

func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	default:
		return "", fmt.Errorf("unknown visibility %q (want public or private)", s)
	}
}

// ParseVisibilityFilter accepts "all" (or empty) in addition to the two classes.
func ParseVisibilityFilter(s string) (Visibility, error) {
	if v := strings.ToLower(strings.TrimSpace(s)); v == "" || v == "all" {
		return VisibilityAll, nil
	}
	return ParseVisibility(s)
}

func (v Visibility) String() string {
	if v == VisibilityAll {
		return "all"
	}
	return string(v)
}

type Target struct {
	Username       string
	Visibility     Visibility
	Profile        Profile
	LastSyncedAt   *time.Time
	LastCheckpoint Checkpoint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TargetSummary is a roster row enriched for listing.
type TargetSummary struct {
	Target     Target
	MediaCount int
	LastRun    *SyncRun
}

var usernamePattern = regexp.MustCompile(`^[a-z0-9._]{1,30}$`)

// SanitizeUsername lowercases and strips the leading @ and surrounding spaces.
func SanitizeUsername(username string) string {
	return strings.ToLower(strings.Trim(username, "@ \t"))
}

func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("invalid username %q", username)
	}
	return nil
}
