// Command seed fills the database with a demo user and fake transactions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"spendwise/internal/config"
	"spendwise/internal/database"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	username := flag.String("user", "demo", "username of the demo user")
	password := flag.String("password", "demo1234", "password of the demo user")
	count := flag.Int("n", 50, "number of transactions to create")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	flag.Parse()

	if err := run(*username, *password, *count, *seed); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run(username, password string, count int, seed int64) error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return err
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	tagService := services.NewTagService(db, userService)
	transactionService := services.NewTransactionService(db, tagService)

	user, err := demoUser(userService, username, password)
	if err != nil {
		return err
	}

	faker := gofakeit.New(seed)
	end := time.Now()
	start := end.AddDate(-1, 0, 0)

	for i := 0; i < count; i++ {
		amount := decimal.NewFromFloat(faker.Float64Range(1, 500)).Round(2)
		location := faker.City()
		_, err := transactionService.CreateTransaction(user, services.TransactionInput{
			Description: faker.ProductName(),
			PaymentType: models.PaymentType(faker.RandomString(paymentTypes())),
			Category:    models.Category(faker.RandomString(categories())),
			Amount:      &amount,
			Date:        faker.DateRange(start, end).Format(models.DateLayout),
			Location:    &location,
		})
		if err != nil {
			return fmt.Errorf("failed to create transaction %d: %w", i+1, err)
		}
	}
	log.Infof("Created %d transactions for %s", count, user.Username)

	for _, name := range []string{"frugal", "investor", "student"} {
		if _, err := tagService.CreateTag(user, name); err != nil && !errors.Is(err, apperrors.ErrAlreadyExists) {
			return fmt.Errorf("failed to create tag %q: %w", name, err)
		}
	}
	if _, err := tagService.CreateCustomTag(user, "Cash", "cash"); err != nil {
		return fmt.Errorf("failed to create custom tag: %w", err)
	}

	log.Infof("Log in as %q with password %q", user.Username, password)
	return nil
}

// demoUser signs the user up, or logs in when it already exists.
func demoUser(userService services.UserServicer, username, password string) (*models.User, error) {
	user, err := userService.SignUp(services.SignUpInput{
		Username: username,
		Name:     gofakeit.Name(),
		Password: password,
		Gender:   models.GenderDiverse,
	})
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		return userService.Authenticate(username, password)
	}
	return user, err
}

func paymentTypes() []string {
	out := make([]string, 0, len(models.PaymentTypes()))
	for _, p := range models.PaymentTypes() {
		out = append(out, string(p))
	}
	return out
}

func categories() []string {
	out := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		out = append(out, string(c))
	}
	return out
}
