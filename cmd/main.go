package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ArmanAleqyan/langtrio/internal/config"
	"github.com/ArmanAleqyan/langtrio/internal/handlers"
	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/storage"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		}
	}()

	if err := db.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Agent{},
		&model.PromoCode{},
		&model.Level{},
		&model.Category{},
		&model.Text{},
		&model.Word{},
	); err != nil {
		slog.Error("Error running migrations", slog.Any("error", err))
		os.Exit(1)
	}

	if err := seedAdmin(db, logger); err != nil {
		slog.Error("Error seeding admin account", slog.Any("error", err))
		os.Exit(1)
	}

	files, err := storage.NewFileStore(config.Cfg.Upload.Dir, logger)
	if err != nil {
		slog.Error("Error initializing file store", slog.Any("error", err))
		os.Exit(1)
	}
	maxUploadBytes := config.Cfg.Upload.MaxSizeMB << 20

	// Dependency injection
	userRepo := repository.NewGormUserRepository()
	tokenRepo := repository.NewGormTokenRepository()
	agentRepo := repository.NewGormAgentRepository()
	promoRepo := repository.NewGormPromoCodeRepository()
	levelRepo := repository.NewGormLevelRepository()
	categoryRepo := repository.NewGormCategoryRepository()
	textRepo := repository.NewGormTextRepository()
	wordRepo := repository.NewGormWordRepository()

	authService := service.NewAuthService(db, userRepo, tokenRepo, &config.Cfg)
	moderatorService := service.NewModeratorService(db, userRepo)
	agentService := service.NewAgentService(db, agentRepo)
	promoService := service.NewPromoCodeService(db, promoRepo, agentRepo)
	levelService := service.NewLevelService(db, levelRepo)
	categoryService := service.NewCategoryService(db, categoryRepo, files)
	textService := service.NewTextService(db, textRepo, wordRepo, categoryRepo, levelRepo, files)
	wordService := service.NewWordService(db, wordRepo, textRepo, categoryRepo, levelRepo, files)

	authHandler := handlers.NewAuthHandler(authService, logger)
	moderatorHandler := handlers.NewModeratorHandler(moderatorService, logger)
	agentHandler := handlers.NewAgentHandler(agentService, logger)
	promoHandler := handlers.NewPromoCodeHandler(promoService, logger)
	levelHandler := handlers.NewLevelHandler(levelService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger, maxUploadBytes)
	textHandler := handlers.NewTextHandler(textService, logger, maxUploadBytes)
	wordHandler := handlers.NewWordHandler(wordService, logger, maxUploadBytes)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuthMiddleware(authService))

			r.Post("/logout", authHandler.Logout)

			r.Post("/create_moderator", moderatorHandler.CreateModerator)
			r.Post("/update_moderator", moderatorHandler.UpdateModerator)
			r.Get("/single_page_moderator", moderatorHandler.SinglePageModerator)
			r.Get("/get_all_moderators", moderatorHandler.GetAllModerators)

			r.Post("/create_agent", agentHandler.CreateAgent)
			r.Post("/update_agent", agentHandler.UpdateAgent)
			r.Get("/single_page_agent", agentHandler.SinglePageAgent)
			r.Get("/all_agents", agentHandler.AllAgents)

			r.Post("/create_promo_code", promoHandler.CreatePromoCode)
			r.Post("/update_promo_code", promoHandler.UpdatePromoCode)
			r.Get("/single_page_promo_code", promoHandler.SinglePagePromoCode)
			r.Get("/get_all_promo_codes", promoHandler.GetAllPromoCodes)

			r.Post("/create_level", levelHandler.CreateLevel)
			r.Post("/update_level", levelHandler.UpdateLevel)
			r.Get("/single_page_level", levelHandler.SinglePageLevel)
			r.Get("/all_levels", levelHandler.AllLevels)

			r.Post("/create_category", categoryHandler.CreateCategory)
			r.Post("/update_category", categoryHandler.UpdateCategory)
			r.Get("/single_page_category", categoryHandler.SinglePageCategory)
			r.Get("/all_category", categoryHandler.AllCategory)
			r.Delete("/delete_category", categoryHandler.DeleteCategory)

			r.Post("/add_texts", textHandler.AddTexts)
			r.Post("/update_text", textHandler.UpdateText)
			r.Get("/single_page_text", textHandler.SinglePageText)
			r.Get("/get_all_texts", textHandler.GetAllTexts)

			r.Post("/create_words", wordHandler.CreateWords)
			r.Post("/update_word", wordHandler.UpdateWord)
			r.Post("/delete_word", wordHandler.DeleteWord)
			r.Get("/get_all_words", wordHandler.GetAllWords)
		})
	})

	// Stored assets are served straight off disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Cfg.Upload.Dir))))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// seedAdmin creates the configured admin account on first boot so the API is
// usable before anyone can log in to create accounts.
func seedAdmin(db *gorm.DB, logger *slog.Logger) error {
	if config.Cfg.Admin.Email == "" || config.Cfg.Admin.Password == "" {
		logger.Warn("Admin seed skipped: admin email or password not configured")
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", config.Cfg.Admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.Cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := config.Cfg.Admin.Name
	if name == "" {
		name = "Admin"
	}
	admin := &model.User{
		Email:    config.Cfg.Admin.Email,
		Password: string(hashed),
		Name:     name,
		RoleID:   model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("Admin account seeded", slog.String("email", admin.Email))
	return nil
}
