package instagramimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
)

// session returns a logged in client, logging in on first use.
func (ig *IgImpl) session(ctx context.Context) (*goinsta.Instagram, error) {
	ig.mu.Lock()
	defer ig.mu.Unlock()

	if ig.Client != nil {
		return ig.Client, nil
	}

	if err := ig.login(ctx); err != nil {
		return nil, err
	}
	return ig.Client, nil
}

// login first tries the exported session and falls back to credentials.
func (ig *IgImpl) login(ctx context.Context) error {
	if err := ig.reloadSession(); err == nil {
		if ig.validateSession(ctx) {
			ig.Logger.Info("Logged in using existing session")
			return nil
		}
		ig.Logger.Warn("Session loaded but appears to be invalid, attempting fresh login")
	}

	if ig.Config.Instagram.User == "" || ig.Config.Instagram.Pass == "" {
		ig.Client = nil
		return errors.Classify(fmt.Errorf("no valid session at %s and no credentials configured",
			ig.Config.Instagram.SessionPath), errors.KindUnauthorized)
	}

	ig.Logger.Info("Attempting to log in with credentials", "user", ig.Config.Instagram.User)
	client := goinsta.New(ig.Config.Instagram.User, ig.Config.Instagram.Pass)

	if err := call(ctx, func() error { return client.Login() }); err != nil {
		return errors.Classify(fmt.Errorf("failed to log in: %w", err), errors.KindUnauthorized)
	}
	ig.Client = client

	if err := ig.saveSession(); err != nil {
		ig.Logger.Warn("Failed to save Instagram session", "error", err)
	}

	ig.Logger.Info("Logged in with credentials")
	return nil
}

func (ig *IgImpl) reloadSession() error {
	if _, err := os.Stat(ig.Config.Instagram.SessionPath); err != nil {
		return fmt.Errorf("session file not found: %w", err)
	}

	client, err := goinsta.Import(ig.Config.Instagram.SessionPath)
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}

	ig.Client = client
	return nil
}

func (ig *IgImpl) validateSession(ctx context.Context) bool {
	if ig.Client == nil {
		return false
	}

	err := call(ctx, func() error { return ig.Client.Account.Sync() })
	if err != nil {
		ig.Logger.Warn("Session validation failed", "error", err)
		return false
	}
	return true
}

func (ig *IgImpl) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(ig.Config.Instagram.SessionPath), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := ig.Client.Export(ig.Config.Instagram.SessionPath); err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	ig.Logger.Info("Instagram session saved", "path", ig.Config.Instagram.SessionPath)
	return nil
}

func (ig *IgImpl) visitProfile(ctx context.Context, username string) (*goinsta.User, error) {
	client, err := ig.session(ctx)
	if err != nil {
		return nil, err
	}

	var user *goinsta.User
	err = call(ctx, func() error {
		var err error
		user, err = client.Profiles.ByName(username)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", username, classify(err))
	}
	return user, nil
}

func (ig *IgImpl) Profile(ctx context.Context, username string) (*domain.Profile, error) {
	user, err := ig.visitProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := convertProfile(user)

	if user.IsPrivate {
		var friendship *goinsta.Friendship
		err := call(ctx, func() error {
			var err error
			friendship, err = user.GetFriendship()
			return err
		})
		if err != nil {
			ig.Logger.Warn("Failed to read friendship status", "username", username, "error", err)
		} else if friendship != nil {
			profile.FollowedByViewer = friendship.Following
			profile.BlockedByViewer = friendship.Blocking
		}
	}

	return profile, nil
}

func convertProfile(user *goinsta.User) *domain.Profile {
	profile := &domain.Profile{
		Username:    user.Username,
		FullName:    user.FullName,
		Biography:   user.Biography,
		ExternalURL: user.ExternalURL,
		Followers:   user.FollowerCount,
		Followees:   user.FollowingCount,
		PostCount:   user.MediaCount,
		IsPrivate:   user.IsPrivate,
	}

	if !user.HasAnonymousProfilePicture {
		profile.PicID = user.ProfilePicID
		profile.PicURL = user.HdProfilePicURLInfo.URL
		if profile.PicURL == "" {
			profile.PicURL = user.ProfilePicURL
		}
	}
	return profile
}
