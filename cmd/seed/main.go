package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"usercontacts/internal/cache"
	"usercontacts/internal/config"
	"usercontacts/internal/db"
	"usercontacts/internal/logger"
	"usercontacts/internal/model"
	"usercontacts/internal/repository"
	"usercontacts/internal/service"
)

const demoPassword = "password"

// SeedUser is one demo user, optionally with a contact. Transient users are deleted
// right after they are created.
type SeedUser struct {
	Username  string
	FirstName string
	LastName  string
	Age       int
	Email     string
	Phone     string
	Transient bool
}

var demoUsers = []SeedUser{
	{Username: "ion", FirstName: "Ion", LastName: "Ionescu", Age: 30, Email: "ion.contact@gmail.com", Phone: "+40 712 345 678"},
	{Username: "maria", FirstName: "Maria", LastName: "Pop"},
	{Username: "costel", FirstName: "Costel", LastName: "Popescu", Transient: true},
}

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, OutputPath: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting seed script...")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	userRepo := repository.NewUserRepository(gormDB)
	users := service.NewUserService(userRepo, cacheClient)
	contacts := service.NewContactService(userRepo, repository.NewContactRepository(gormDB), cacheClient)

	created, skipped, err := seed(context.Background(), log, userRepo, users, contacts)
	if err != nil {
		log.Fatal("Failed to seed users", zap.Error(err))
	}

	log.Info("Seed completed successfully!", zap.Int("created", created), zap.Int("skipped", skipped))
}

// seed creates the demo users and walks them through a few updates. Users whose
// username already exists are skipped so the script can run repeatedly.
func seed(ctx context.Context, log *zap.Logger, repo repository.UserRepository, users service.UserService, contacts service.ContactService) (created, skipped int, err error) {
	for i, item := range demoUsers {
		existing, err := repo.FindByUsername(ctx, item.Username)
		if err != nil && !repository.IsNotFound(err) {
			return created, skipped, fmt.Errorf("error checking user %s: %w", item.Username, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		user := &model.User{
			Username:  item.Username,
			Password:  demoPassword,
			FirstName: item.FirstName,
			LastName:  item.LastName,
		}
		if item.Age > 0 {
			age := item.Age
			user.Age = &age
		}
		if _, err := users.CreateUser(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", item.Username, err)
		}
		created++
		log.Info("User created", zap.String("username", user.Username), zap.Uint("id", user.ID))

		if item.Transient {
			if err := users.DeleteUser(ctx, user.ID); err != nil {
				return created, skipped, fmt.Errorf("error deleting user %s: %w", item.Username, err)
			}
			log.Info("User deleted", zap.String("username", user.Username))
			continue
		}

		if item.Email != "" {
			contact, err := contacts.AddContact(ctx, user.ID, &model.Contact{Email: item.Email, Phone: item.Phone})
			if err != nil {
				return created, skipped, fmt.Errorf("error creating contact for %s: %w", item.Username, err)
			}
			log.Info("Created contact", zap.String("maskedPhone", contact.MaskedPhone()), zap.String("phone", contact.Phone))
		}

		if i == 0 {
			if err := updateFirst(ctx, log, users, user); err != nil {
				return created, skipped, err
			}
		}
	}
	return created, skipped, nil
}

// updateFirst changes the user's favourite colour and bumps the age by two.
func updateFirst(ctx context.Context, log *zap.Logger, users service.UserService, first *model.User) error {
	color := "blue"
	patch := service.UserPatch{FavouriteColor: &color}
	if first.Age != nil {
		age := *first.Age + 2
		patch.Age = &age
	}
	updated, err := users.UpdateUser(ctx, first.ID, patch)
	if err != nil {
		return fmt.Errorf("error updating user %s: %w", first.Username, err)
	}
	log.Info("User updated", zap.String("username", updated.Username), zap.String("favouriteColor", updated.FavouriteColor))
	return nil
}
