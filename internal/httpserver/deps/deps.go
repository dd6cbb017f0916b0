package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
	"github.com/MrSnakeDoc/orgcat/internal/index"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
	"github.com/MrSnakeDoc/orgcat/internal/translate"
	"github.com/MrSnakeDoc/orgcat/internal/view"
)

// AuthBridge is the per-token GitHub client the auth handlers use.
// Declared here so tests can swap in a fake without the real API.
type AuthBridge interface {
	VerifyMembership(ctx context.Context, org string) error
	ListPrivateRepos(ctx context.Context, org string) ([]*domain.Repository, error)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	OrgName        string   // GitHub organization the catalog belongs to
	AuthBaseURL    string   // OAuth edge handler base URL ("" = private view disabled)
	DefaultLang    string   // language that needs no translation
	SupportedLangs []string // UI languages offered to clients
	AllowedOrigins []string // CORS allowlist (empty = permissive)
	TrustProxy     bool     // resolve client IP from proxy headers when true

	RedisClient   *redis.Client                 // Redis client connection (nil = memory only)
	CatalogIndex  *index.CatalogIndex           // In-memory catalog index
	Controller    *view.Controller              // catalog display pipeline
	Translator    *translate.Service            // per-language translation caches
	NewAuthBridge func(token string) AuthBridge // per-token GitHub client factory

	ReloadTrigger chan struct{} // Channel to trigger manual catalog reload
}
