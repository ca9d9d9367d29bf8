package instagramimpl

import (
	"net/http"
	"sync"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-profile-sync/internal/instagram"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"go.uber.org/fx"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

type IgImpl struct {
	Config *config.Config
	Logger logger.Logger

	mu     sync.Mutex
	Client *goinsta.Instagram
	http   *http.Client
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *IgImpl {
	return &IgImpl{
		Config: opts.Config,
		Logger: opts.Logger.WithComponent("Instagram"),
		http:   &http.Client{Timeout: opts.Config.Instagram.RequestTimeout},
	}
}

var _ instagram.Client = (*IgImpl)(nil)
