package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"studio-gallery/internal/adapters/signer/hmacsign"
	mem "studio-gallery/internal/adapters/storage/memory"
	pg "studio-gallery/internal/adapters/storage/postgres"
	"studio-gallery/internal/domain/galleries"
	"studio-gallery/internal/domain/grants"
	"studio-gallery/internal/domain/selection"
	"studio-gallery/internal/middleware"
	"studio-gallery/internal/ports/auth"
	"studio-gallery/internal/ports/signer"
)

const defaultSignedURLTTL = 15 * time.Minute

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)

	// DB nil => repos in-memory (Memory, o unos nuevos vacíos).
	DB     *pg.DB
	Memory *mem.Stores

	Signer       signer.URLSigner
	SignedURLTTL time.Duration

	Logger *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		grantsRepo    grants.Repository
		galleriesRepo galleries.Repository
		selectionRepo selection.Repository
		eventsRepo    selection.EventRepository
	)

	if opts.DB != nil {
		grantsRepo = pg.NewGrantsRepo(opts.DB)
		galleriesRepo = pg.NewGalleriesRepo(opts.DB)
		selectionRepo = pg.NewSelectionRepo(opts.DB)
		eventsRepo = pg.NewEventsRepo(opts.DB)
	} else {
		stores := opts.Memory
		if stores == nil {
			stores = mem.NewStores()
		}
		grantsRepo = stores.Grants
		galleriesRepo = stores.Galleries
		selectionRepo = stores.Selection
		eventsRepo = stores.Events
	}

	ttl := opts.SignedURLTTL
	if ttl <= 0 {
		ttl = defaultSignedURLTTL
	}

	urlSigner := opts.Signer
	if urlSigner == nil {
		// dev: firma local con clave fija; jamás usar en serio
		urlSigner = hmacsign.New("http://localhost:8080", []byte("dev-signer-key"))
	}

	// Services por módulo
	grantsSvc := grants.NewService(grantsRepo)
	galleriesSvc := galleries.NewService(galleriesRepo, urlSigner, ttl)
	selectionSvc := selection.NewService(selectionRepo, eventsRepo)

	// Rutas de owner (AuthContext decide identidad; handlers exigen claims)
	grants.RegisterRoutes(r, grantsSvc, galleriesSvc)
	selection.RegisterOwnerRoutes(r, selectionSvc, grantsSvc)

	// Rutas de cliente: todo /gallery pasa por GrantContext, que valida
	// el token del link en cada request. Ningún handler de acá abajo ve
	// tokens crudos, solo ValidatedGrant.
	r.Route("/gallery", func(gr chi.Router) {
		gr.Use(grants.GrantContext(grantsSvc))
		galleries.RegisterClientRoutes(gr, galleriesSvc)
		selection.RegisterClientRoutes(gr, selectionSvc)
	})

	return r
}
