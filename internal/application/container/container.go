// Package container provides dependency injection for application services.
package container

import (
	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/services"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/ai"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/email"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/media"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/performance"
	analyticspersistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
	chatpersistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/chat"
	contactpersistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/contact"
	contentpersistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/ratelimit"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// Container holds the singleton services shared across requests.
type Container struct {
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
	DB          *database.DB

	EventService     *services.EventService
	DashboardService *services.DashboardService
	HeatmapService   *services.HeatmapService
	ArticleService   *services.ArticleService
	DirectoryService *services.DirectoryService
	ChatService      *services.ChatService
	ContactService   *services.ContactService
	AuthService      *services.AuthService
}

// New wires the repositories, infrastructure clients, and services. A
// missing Resend key disables the contact email relay rather than failing
// startup.
func New(db *database.DB, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	eventRepo := analyticspersistence.NewSQLEventRepository(db, logger)
	statsRepo := analyticspersistence.NewSQLStatsRepository(db, logger)
	articleRepo := contentpersistence.NewArticleRepository(db, logger)
	tagRepo := contentpersistence.NewTagRepository(db, logger)
	partnerRepo := contentpersistence.NewPartnerRepository(db, logger)
	teamRepo := contentpersistence.NewTeamRepository(db, logger)
	serviceRepo := contentpersistence.NewServiceRepository(db, logger)
	technologyRepo := contentpersistence.NewTechnologyRepository(db, logger)
	faqRepo := contentpersistence.NewFAQRepository(db, logger)
	transcriptRepo := chatpersistence.NewSQLTranscriptRepository(db, logger)
	messageRepo := contactpersistence.NewSQLMessageRepository(db, logger)

	processor := media.NewProcessor(config.MediaRoot, config.ThumbnailMaxWidth)

	var emailSvc email.Service
	if svc, err := email.NewService(); err != nil {
		logger.System().Warn("Email relay disabled", "reason", err.Error())
	} else {
		emailSvc = svc
	}

	contactLimiter := ratelimit.NewKeyedLimiter(config.ContactRateLimitRequests, config.ContactRateLimitWindow)

	return &Container{
		Logger:      logger,
		PerfTracker: perfTracker,
		DB:          db,

		EventService:     services.NewEventService(eventRepo, logger),
		DashboardService: services.NewDashboardService(statsRepo, eventRepo, logger, perfTracker),
		HeatmapService:   services.NewHeatmapService(eventRepo, logger, perfTracker),
		ArticleService:   services.NewArticleService(articleRepo, processor, logger),
		DirectoryService: services.NewDirectoryService(tagRepo, partnerRepo, teamRepo, serviceRepo, technologyRepo, faqRepo, logger),
		ChatService:      services.NewChatService(transcriptRepo, ai.NewClient(), logger),
		ContactService:   services.NewContactService(messageRepo, emailSvc, contactLimiter, logger),
		AuthService:      services.NewAuthService(logger),
	}
}
