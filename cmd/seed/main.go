package main

import (
	"context"
	stderrors "errors"
	"log"

	"gorm.io/gorm"

	"lms/internal/auth"
	"lms/internal/config"
	"lms/internal/db"
	"lms/internal/model"
	"lms/internal/repository"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

type seedCourse struct {
	Title         string
	Description   string
	DurationWeeks int
	Level         model.CourseLevel
	Category      string
	Status        model.CourseStatus
	Instructor    string
	Text          string
}

var seedUsers = []seedUser{
	{Username: "admin", Email: "admin@lms.local", Password: "admin12345", Role: model.RoleAdmin},
	{Username: "instructor", Email: "instructor@lms.local", Password: "teach12345", Role: model.RoleUser},
	{Username: "student", Email: "student@lms.local", Password: "learn12345", Role: model.RoleUser},
}

var seedCourses = []seedCourse{
	{
		Title:         "Introduction to Programming",
		Description:   "Variables, control flow, and first programs.",
		DurationWeeks: 8,
		Level:         model.LevelBeginner,
		Category:      "programming",
		Status:        model.StatusPublished,
		Instructor:    "instructor",
		Text:          "Welcome to the course. We start with variables.",
	},
	{
		Title:         "Relational Databases",
		Description:   "Schema design, SQL, and transactions.",
		DurationWeeks: 6,
		Level:         model.LevelIntermediate,
		Category:      "databases",
		Status:        model.StatusPublished,
		Instructor:    "instructor",
		Text:          "A schema is a contract with your future self.",
	},
	{
		Title:         "Distributed Systems",
		Description:   "Consistency, replication, and failure modes.",
		DurationWeeks: 12,
		Level:         model.LevelAdvanced,
		Category:      "systems",
		Status:        model.StatusDraft,
		Instructor:    "instructor",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.TextContent{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	textContentRepo := repository.NewTextContentRepository(gormDB)

	usersCreated, err := seedAllUsers(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	coursesCreated, err := seedCatalog(ctx, userRepo, courseRepo, textContentRepo)
	if err != nil {
		log.Fatalf("Failed to seed courses: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", usersCreated)
	log.Printf("  - Courses created: %d", coursesCreated)
}

// seedAllUsers creates the demo users, skipping any that already exist.
func seedAllUsers(ctx context.Context, userRepo repository.UserRepository) (int, error) {
	created := 0
	for _, u := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, u.Username)
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", u.Username)
			continue
		}

		hashed, err := auth.HashPassword(u.Password)
		if err != nil {
			return created, err
		}
		user := &model.User{
			Username:       u.Username,
			Email:          u.Email,
			HashedPassword: hashed,
			IsActive:       true,
			IsSuperuser:    u.Role == model.RoleAdmin,
			Role:           u.Role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedCatalog creates demo courses with their text contents. Runs once: a
// non-empty catalog short-circuits.
func seedCatalog(ctx context.Context, userRepo repository.UserRepository, courseRepo repository.CourseRepository, textContentRepo repository.TextContentRepository) (int, error) {
	total, err := courseRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		log.Printf("Catalog already has %d courses, skipping", total)
		return 0, nil
	}

	created := 0
	for _, sc := range seedCourses {
		instructor, err := userRepo.FindByUsername(ctx, sc.Instructor)
		if err != nil {
			return created, err
		}

		course := &model.Course{
			Title:         sc.Title,
			Description:   sc.Description,
			InstructorID:  instructor.ID,
			DurationWeeks: sc.DurationWeeks,
			Level:         sc.Level,
			Category:      sc.Category,
			Status:        sc.Status,
		}
		if err := courseRepo.Create(ctx, course); err != nil {
			return created, err
		}
		created++

		if sc.Text != "" {
			content := &model.TextContent{
				CourseID:  course.ID,
				RawText:   sc.Text,
				Version:   1,
				Published: sc.Status == model.StatusPublished,
			}
			if err := textContentRepo.Create(ctx, content); err != nil {
				return created, err
			}
		}
	}
	return created, nil
}
