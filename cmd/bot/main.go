package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	discordrouter "github.com/jose-valero/levelling-bot/internal/adapters/discord"
	"github.com/jose-valero/levelling-bot/internal/app/service"
	"github.com/jose-valero/levelling-bot/internal/infra/config"
	"github.com/jose-valero/levelling-bot/internal/infra/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// DB
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Println("✅ DB lista y migrada")

	// Repos
	xpRepo := storage.NewXPRepo(db)
	settingsRepo := storage.NewSettingsRepo(db)
	rewardsRepo := storage.NewRewardsRepo(db)

	// Discord session (antes de los services que usan el gateway)
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	gw := discordrouter.NewGateway(s)

	// Services
	xpSvc := service.NewXPService(xpRepo, settingsRepo, rewardsRepo, gw, gw)
	guard := service.NewSpamGuard(cfg.MinMessageLength, cfg.MaxPerWindow,
		time.Duration(cfg.SpamWindowSeconds)*time.Second)
	tracker := service.NewVoiceTracker(xpSvc, settingsRepo, gw)
	boardSvc := service.NewLeaderboardService(xpRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	rewardsSvc := service.NewRewardsService(rewardsRepo)

	// balances negativos heredados se arreglan al arrancar
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		n, err := xpSvc.RepairNegatives(ctx)
		cancel()
		if err != nil {
			log.Printf("repair negatives: %v", err)
		} else if n > 0 {
			log.Printf("✅ %d balances negativos reparados", n)
		}
	}

	// Router
	r := discordrouter.NewRouter(
		s,
		cfg.DiscordGuild,
		xpSvc,
		guard,
		tracker,
		boardSvc,
		settingsSvc,
		rewardsSvc,
		cfg.AdminRoleIDs,
	)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("✅ comandos registrados en guild %q", cfg.DiscordGuild)

	// Scheduler: tick de voz + sweep del anti-spam
	c := cron.New()
	tickEvery := time.Duration(cfg.VoiceTickSeconds) * time.Second
	if _, err := c.AddFunc("@every "+tickEvery.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickEvery)
		defer cancel()
		tracker.Tick(ctx)
		if n := guard.Sweep(time.Now()); n > 0 {
			log.Printf("spam sweep: %d claves liberadas", n)
		}
	}); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	c.Start()
	log.Printf("✅ scheduler activo (tick de voz cada %s)", tickEvery)

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	tracker.Close()
	<-c.Stop().Done()
}
