package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"ptsportal/api/internal/auth"
	"ptsportal/api/internal/config"
	"ptsportal/api/internal/middleware"
	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
	"ptsportal/api/internal/service"
	"ptsportal/api/internal/storage"
)

// IdentityProvider is the external OAuth provider the sign-in flow delegates
// credential verification to.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (auth.Profile, error)
}

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	provider    IdentityProvider
	authService *service.AuthService
	members     *service.MemberService
	tuteeSvc    *service.TuteeService
	users       UserStore
	committees  CommitteeStore
	libraries   LibraryStore
	tutees      TuteeStore
	schedules   ScheduleStore
	portraits   PortraitStore
	db          *pgxpool.Pool
	cache       *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	committeeRepo := repository.NewCommitteeRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	tuteeRepo := repository.NewTuteeRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	gate := auth.NewGate(cfg.Google)
	authSvc := service.NewAuthService(gate, userRepo, cfg, log)
	memberSvc := service.NewMemberService(userRepo, cfg.Google.ServiceAccountEmail, log)
	tuteeSvc := service.NewTuteeService(tuteeRepo, scheduleRepo, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		provider:    auth.NewGoogleProvider(cfg.Google),
		authService: authSvc,
		members:     memberSvc,
		tuteeSvc:    tuteeSvc,
		users:       userRepo,
		committees:  committeeRepo,
		libraries:   libraryRepo,
		tutees:      tuteeRepo,
		schedules:   scheduleRepo,
		portraits:   store,
		db:          db,
		cache:       cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	oauth := router.Group("/auth")
	oauth.GET("/login", h.Login)
	oauth.GET("/callback", h.Callback)

	session := router.Group("")
	session.Use(middleware.Session(h.cfg, h.cache))
	session.POST("/auth/logout", h.Logout)
	session.GET("/me", h.Me)
	session.PATCH("/me", h.UpdateMe)
	session.GET("/me/schedule", h.MySchedule)
	session.GET("/committees", h.ListCommittees)
	session.GET("/libraries", h.ListLibraries)
	session.GET("/libraries/:id", h.GetLibrary)

	admin := router.Group("")
	admin.Use(
		middleware.Session(h.cfg, h.cache),
		middleware.RequireRoles(models.UserTypeAdmin),
	)
	admin.POST("/committees", h.CreateCommittee)
	admin.Any("/committees/:committeeId", h.Committee)
	admin.POST("/committees/:committeeId/officers", h.AddOfficer)
	admin.Any("/committees/:committeeId/officers/:id", h.Officer)
	admin.POST("/officers/image", h.UploadPortrait)
	admin.GET("/tutors", h.ListTutors)
	admin.Any("/tutors/:id", h.Tutor)
	admin.GET("/tutees", h.ListTutees)
	admin.Any("/tutees/:id", h.Tutee)
	admin.POST("/libraries", h.CreateLibrary)
	admin.DELETE("/libraries/:id", h.DeleteLibrary)

	// Provisioning scripts authenticate with the pre-shared token instead of
	// a session; admins can use the same route from the console.
	router.POST("/tutors", middleware.AdminOrProvisionToken(h.cfg, h.cache), h.CreateTutor)

	// Tutee signup is the one public write: tutees are not portal users.
	router.POST("/tutees", h.CreateTutee)
}
