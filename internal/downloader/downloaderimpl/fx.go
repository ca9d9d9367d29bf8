package downloaderimpl

import (
	"github.com/orgball2608/insta-profile-sync/internal/downloader"
	"go.uber.org/fx"
)

var Module = fx.Module("downloader",
	fx.Provide(
		New,
		fx.Annotate(
			func(d *DownloaderImpl) downloader.Downloader {
				return d
			},
			fx.As(new(downloader.Downloader)),
		),
	),
)
