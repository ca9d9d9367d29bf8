package fx

import (
	"github.com/orgball2608/insta-profile-sync/internal/repositories/media"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/syncrun"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/target"
	"go.uber.org/fx"
)

var Module = fx.Options(
	target.Module,
	media.Module,
	syncrun.Module,
)
