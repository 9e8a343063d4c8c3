package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/role-ladder/internal/admin"
	"github.com/mauv0809/role-ladder/internal/apperr"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/database"
)

type seedConfig struct {
	DBName        string   `env:"DB_NAME" envDefault:"ladder.db"`
	PrimaryURL    string   `env:"TURSO_PRIMARY_URL"`
	AuthToken     string   `env:"TURSO_AUTH_TOKEN"`
	BcryptCost    int      `env:"BCRYPT_COST" envDefault:"10"`
	AdminUsername string   `env:"SEED_ADMIN_USERNAME"`
	AdminPassword string   `env:"SEED_ADMIN_PASSWORD"`
	AdminName     string   `env:"SEED_ADMIN_NAME"`
	Players       []string `env:"SEED_PLAYERS" envSeparator:","`
	DemoMatches   int      `env:"SEED_DEMO_MATCHES" envDefault:"0"`
}

// Simplified config loading for the script
func loadConfig() seedConfig {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	var cfg seedConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: env.ToMap(os.Environ())}); err != nil {
		log.Fatalf("Invalid seeder configuration: %s", err)
	}
	return cfg
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.PrimaryURL, cfg.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	admins := admin.NewService(admin.NewStore(db), cfg.BcryptCost)
	if err := seedAdmin(ctx, admins, cfg); err != nil {
		log.Fatalf("Failed to seed admin: %s", err)
	}

	store := club.New(db)
	for _, name := range cfg.Players {
		id, err := store.AddPlayer(ctx, name)
		switch {
		case apperr.Is(err, apperr.KindValidation, club.CodeDuplicate):
			log.Info("Player already registered", "name", name)
		case apperr.Is(err, apperr.KindValidation, club.CodeEmptyName):
			continue
		case err != nil:
			log.Fatalf("Failed to register player %q: %s", name, err)
		default:
			log.Info("Registered player", "name", name, "playerID", id)
		}
	}

	if cfg.DemoMatches > 0 {
		if err := seedMatches(ctx, store, cfg.DemoMatches); err != nil {
			log.Fatalf("Failed to seed demo matches: %s", err)
		}
	}
	log.Info("Seeding complete")
}

// seedAdmin creates the bootstrap admin when none exists yet.
func seedAdmin(ctx context.Context, admins admin.AdminService, cfg seedConfig) error {
	count, err := admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("Admins already exist, skipping bootstrap admin", "count", count)
		return nil
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Warn("No admin exists and SEED_ADMIN_USERNAME/SEED_ADMIN_PASSWORD are not set")
		return nil
	}
	name := cfg.AdminName
	if name == "" {
		name = cfg.AdminUsername
	}
	id, err := admins.Create(ctx, cfg.AdminUsername, cfg.AdminPassword, name)
	if err != nil {
		return err
	}
	log.Info("Created bootstrap admin", "adminID", id, "username", cfg.AdminUsername)
	return nil
}

var (
	demoMaps = []string{"Ilios", "King's Row", "Numbani", "Dorado", "Lijiang Tower"}
	demoBans = []string{"Ana", "Mercy", "Widowmaker", "Tracer", "Sombra"}
)

// seedMatches records n random matches over the last month among registered
// players.
func seedMatches(ctx context.Context, store club.ClubStore, n int) error {
	players, err := store.ListPlayers(ctx)
	if err != nil {
		return err
	}
	if len(players) < club.RosterSize {
		return fmt.Errorf("need at least %d players for demo matches, have %d", club.RosterSize, len(players))
	}

	roles := []club.Role{club.RoleTank, club.RoleDPS, club.RoleDPS, club.RoleHealer, club.RoleHealer}
	startTime := time.Now()
	for i := 0; i < n; i++ {
		picked := rand.Perm(len(players))[:club.RosterSize]
		entries := make([]club.Entry, 0, club.RosterSize)
		for slot, idx := range picked {
			team := club.TeamA
			if slot >= 5 {
				team = club.TeamB
			}
			entries = append(entries, club.Entry{PlayerID: players[idx].ID, Team: team, Role: roles[slot%5]})
		}
		winner := club.TeamA
		if rand.Intn(2) == 1 {
			winner = club.TeamB
		}
		m := club.NewMatch{
			Winner:    winner,
			CreatedAt: time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour).UTC(),
			MapName:   demoMaps[rand.Intn(len(demoMaps))],
			BanA:      demoBans[rand.Intn(len(demoBans))],
			BanB:      demoBans[rand.Intn(len(demoBans))],
			Entries:   entries,
		}
		if _, err := store.CreateMatch(ctx, m); err != nil {
			return err
		}
	}
	log.Info("Inserted demo matches", "count", n, "duration", time.Since(startTime))
	return nil
}
