package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/huecraft/colorspecbackend/accounting"
	"github.com/huecraft/colorspecbackend/config"
	"github.com/huecraft/colorspecbackend/database"
	"github.com/huecraft/colorspecbackend/handlers"
	"github.com/huecraft/colorspecbackend/media"
	"github.com/huecraft/colorspecbackend/realtime"
	"github.com/huecraft/colorspecbackend/repository"
	"github.com/huecraft/colorspecbackend/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.OriginalsPath, cfg.PreviewsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to access underlying database connection: %v", err)
	}
	defer sqlDB.Close()

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeOriginal: filepath.Base(cfg.OriginalsPath),
		media.AssetTypePreview:  filepath.Base(cfg.PreviewsPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}
	mediaProcessor := media.NewProcessor(mediaStore)

	accountant := &accounting.Accountant{DB: db}

	projectRepo := repository.NewProjectRepository(db, accountant)
	photoRepo := repository.NewPhotoRepository(db, accountant)
	roomRepo := repository.NewRoomRepository(db)
	colorRepo := repository.NewCatalogColorRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db, accountant)
	synopsisRepo := repository.NewSynopsisRepository(db, accountant)

	hub := realtime.NewHub()
	go hub.Run()

	log.Printf("Initializing photo preview worker pool (Workers: %d, Queue Size: %d)...", cfg.NumPhotoWorkers, cfg.PhotoQueueSize)
	photoProcessor := workers.NewPhotoProcessor(cfg, photoRepo, mediaProcessor, hub, cfg.PhotoQueueSize, cfg.NumPhotoWorkers)
	defer photoProcessor.Stop()

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing originals in: %s", cfg.OriginalsPath)
	log.Printf("Storing previews in: %s", cfg.PreviewsPath)
	log.Printf("Preview max size (longest side): %dpx", cfg.PreviewMaxSize)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	projectHandler := &handlers.ProjectHandler{ProjectRepo: projectRepo, Hub: hub}
	photoHandler := &handlers.PhotoHandler{
		PhotoRepo:      photoRepo,
		ProjectRepo:    projectRepo,
		Cfg:            cfg,
		MediaProcessor: mediaProcessor,
		MediaStore:     mediaStore,
		PreviewGen:     photoProcessor,
		Hub:            hub,
	}
	annotationHandler := &handlers.AnnotationHandler{AnnotationRepo: annotationRepo, PhotoRepo: photoRepo, Hub: hub}
	synopsisHandler := &handlers.SynopsisHandler{
		SynopsisRepo:   synopsisRepo,
		AnnotationRepo: annotationRepo,
		ProjectRepo:    projectRepo,
		Hub:            hub,
	}
	suggestionHandler := &handlers.SuggestionHandler{AnnotationRepo: annotationRepo, ProjectRepo: projectRepo}
	colorHandler := &handlers.ColorHandler{ColorRepo: colorRepo, ReportDB: sqlDB}
	roomHandler := &handlers.RoomHandler{RoomRepo: roomRepo}

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.CreateProject)
			r.Get("/", projectHandler.ListProjects)
			r.Route("/{project_id}", func(r chi.Router) {
				r.Get("/", projectHandler.GetProject)
				r.Put("/", projectHandler.UpdateProject)
				r.Delete("/", projectHandler.DeleteProject)

				r.Post("/photos", photoHandler.UploadPhoto)
				r.Get("/photos", photoHandler.ListPhotos)

				r.Get("/synopsis", synopsisHandler.GetProjectSynopsis)
				r.Post("/synopses", synopsisHandler.CreateSynopsis)
				r.Get("/synopses", synopsisHandler.ListSynopses)

				r.Get("/suggestions", suggestionHandler.GetSuggestions)
			})
		})

		r.Route("/photos/{photo_id}", func(r chi.Router) {
			r.Get("/", photoHandler.GetPhoto)
			r.Delete("/", photoHandler.DeletePhoto)
			r.Post("/annotations", annotationHandler.CreateAnnotation)
			r.Get("/annotations", annotationHandler.ListAnnotationsByPhoto)
		})

		r.Route("/annotations/{annotation_id}", func(r chi.Router) {
			r.Get("/", annotationHandler.GetAnnotation)
			r.Put("/", annotationHandler.UpdateAnnotation)
			r.Delete("/", annotationHandler.DeleteAnnotation)
		})

		r.Route("/synopses/{synopsis_id}", func(r chi.Router) {
			r.Get("/", synopsisHandler.GetSynopsis)
			r.Delete("/", synopsisHandler.DeleteSynopsis)
			r.Post("/entries", synopsisHandler.AddEntry)
			r.Delete("/entries/{entry_id}", synopsisHandler.DeleteEntry)
		})

		r.Route("/colors", func(r chi.Router) {
			r.Post("/", colorHandler.CreateColor)
			r.Get("/", colorHandler.ListColors)
			r.Get("/usage", colorHandler.GetUsageReport)
			r.Get("/{color_id}", colorHandler.GetColor)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", roomHandler.CreateRoom)
			r.Get("/", roomHandler.ListRooms)
			r.Route("/{room_id}", func(r chi.Router) {
				r.Get("/", roomHandler.GetRoom)
				r.Put("/", roomHandler.UpdateRoom)
				r.Delete("/", roomHandler.DeleteRoom)
			})
		})

		originalsSubDir := filepath.Base(cfg.OriginalsPath)
		r.Get(fmt.Sprintf("/%s/*", originalsSubDir), handlers.AssetServer(cfg.MediaStoragePath, originalsSubDir))
		log.Printf("Registered originals server at /api/%s/*", originalsSubDir)

		previewsSubDir := filepath.Base(cfg.PreviewsPath)
		r.Get(fmt.Sprintf("/%s/*", previewsSubDir), handlers.AssetServer(cfg.MediaStoragePath, previewsSubDir))
		log.Printf("Registered previews server at /api/%s/*", previewsSubDir)
	})

	r.Get("/ws", hub.ServeWS)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
