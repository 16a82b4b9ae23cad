package main

import (
	"context"
	"log"
	"strings"
	"time"

	"anoa.com/campusplacement/internal/config"
	"anoa.com/campusplacement/internal/handler"
	"anoa.com/campusplacement/internal/middleware"
	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/internal/repository"
	"anoa.com/campusplacement/internal/service"
	"anoa.com/campusplacement/pkg/database"
	"anoa.com/campusplacement/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedSampleData(db); err != nil {
			log.Printf("failed to seed sample data: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, live notifications and rate limiting are disabled")
	}

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	jobSearch := service.NewMeiliJobSearch(meiliClient)

	documentStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	savedJobRepo := repository.NewSavedJobRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authService)

	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	jobService := service.NewJobService(jobRepo, savedJobRepo, applicationRepo, jobSearch)
	jobHandler := handler.NewJobHandler(jobService)

	notificationService := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationService, redisClient)

	applyLimiter := service.NewRedisRateLimiter(redisClient, cfg.ApplyRateLimit)
	applicationService := service.NewApplicationService(
		applicationRepo, jobRepo, resumeRepo, notificationService, applyLimiter)
	applicationHandler := handler.NewApplicationHandler(applicationService)

	resumeService := service.NewResumeService(resumeRepo, documentStorage)
	resumeHandler := handler.NewResumeHandler(resumeService)

	savedJobService := service.NewSavedJobService(savedJobRepo, jobRepo)
	savedJobHandler := handler.NewSavedJobHandler(savedJobService)

	router := gin.Default()
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/auth/me", authHandler.Me)
		api.PUT("/users/profile", userHandler.UpdateProfile)

		api.GET("/jobs", jobHandler.GetJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)

		api.GET("/notifications", notificationHandler.GetNotifications)
		api.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		api.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		api.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		faculty := api.Group("")
		faculty.Use(authMiddleware.RequireRole(model.RoleFaculty))
		{
			faculty.POST("/jobs", jobHandler.CreateJob)
			faculty.PUT("/jobs/:id", jobHandler.UpdateJob)
			faculty.DELETE("/jobs/:id", jobHandler.DeleteJob)

			faculty.GET("/applications", applicationHandler.GetApplications)
			faculty.PUT("/applications/:id/status", applicationHandler.UpdateStatus)

			faculty.GET("/users/departments/:department", userHandler.GetStudentsByDepartment)
		}

		student := api.Group("")
		student.Use(authMiddleware.RequireRole(model.RoleStudent))
		{
			student.POST("/applications", applicationHandler.CreateApplication)
			student.GET("/applications/my", applicationHandler.GetMyApplications)

			student.POST("/resumes", resumeHandler.UploadResume)
			student.GET("/resumes/my", resumeHandler.GetMyResumes)
			student.DELETE("/resumes/:id", resumeHandler.DeleteResume)
			student.PUT("/resumes/:id/default", resumeHandler.SetDefaultResume)

			student.POST("/saved-jobs", savedJobHandler.SaveJob)
			student.GET("/saved-jobs", savedJobHandler.GetSavedJobs)
			student.DELETE("/saved-jobs/:jobId", savedJobHandler.UnsaveJob)
		}
	}

	// Drop read notifications past the retention window in the background.
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := notificationService.CleanupOld(context.Background(), cfg.NotificationRetention); err != nil {
				log.Printf("notification cleanup failed: %v", err)
			}
		}
	}()

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Job{},
		&model.Resume{},
		&model.Application{},
		&model.SavedJob{},
		&model.Notification{},
	)
}

func seedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "placement@campus.edu").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Sample data already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("placement123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	faculty := model.User{
		Email:        "placement@campus.edu",
		PasswordHash: string(hashedPasswordBytes),
		Name:         "Placement Office",
		Role:         model.RoleFaculty,
		Department:   "Placement Cell",
	}
	if err := db.Create(&faculty).Error; err != nil {
		return err
	}

	rollNumber := "CS2022001"
	cgpa := 8.4
	student := model.User{
		Email:        "student@campus.edu",
		PasswordHash: string(hashedPasswordBytes),
		Name:         "Sample Student",
		Role:         model.RoleStudent,
		Department:   "Computer Science",
		RollNumber:   &rollNumber,
		CGPA:         &cgpa,
		Skills:       pq.StringArray{"go", "sql"},
	}
	if err := db.Create(&student).Error; err != nil {
		return err
	}

	jobs := []model.Job{
		{
			Title:        "Backend Engineer Intern",
			Company:      "Acme Systems",
			Location:     "Bangalore",
			Type:         model.JobTypeInternship,
			Description:  "Work on the services powering our billing platform.",
			Requirements: pq.StringArray{"Go or Java", "SQL basics"},
			Skills:       pq.StringArray{"go", "postgresql"},
			Eligibility:  "CGPA 7.0 or above",
			Deadline:     time.Now().AddDate(0, 1, 0),
			IsActive:     true,
			PostedBy:     faculty.ID,
		},
		{
			Title:        "Graduate Software Engineer",
			Company:      "Northwind Labs",
			Location:     "Remote",
			Type:         model.JobTypeFullTime,
			Description:  "Full-time role on the data ingestion team.",
			Requirements: pq.StringArray{"Strong CS fundamentals"},
			Skills:       pq.StringArray{"python", "kafka"},
			Eligibility:  "Final-year students only",
			Deadline:     time.Now().AddDate(0, 2, 0),
			IsActive:     true,
			PostedBy:     faculty.ID,
		},
	}
	for i := range jobs {
		if err := db.Create(&jobs[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Sample data seeded successfully")
	log.Println("   Faculty: placement@campus.edu / placement123")
	log.Println("   Student: student@campus.edu / placement123")

	return nil
}
