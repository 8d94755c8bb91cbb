package cmd

import (
	"context"
	"os"
	"time"

	"github.com/AzielCF/az-planner/calendar/application"
	"github.com/AzielCF/az-planner/calendar/domain/export"
	"github.com/AzielCF/az-planner/calendar/repository"
	coreconfig "github.com/AzielCF/az-planner/core/config"
	domainHealth "github.com/AzielCF/az-planner/domains/health"
	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	"github.com/AzielCF/az-planner/infrastructure/excel"
	"github.com/AzielCF/az-planner/infrastructure/valkey"
	"github.com/AzielCF/az-planner/pkg/utils"
	"github.com/AzielCF/az-planner/ui/websocket"
	"github.com/AzielCF/az-planner/usecase"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Flags
	flagPort     string
	flagDebug    bool
	flagBasePath string
	flagSeed     int64

	serverID string

	// Infrastructure
	vkClient    *valkey.Client
	calendarDB  *repository.MemoryCalendarStore
	exportCache export.WorkbookCache
	wsHub       *websocket.Hub
	hubCancel   context.CancelFunc

	// Usecase
	plannerUsecase domainPlanner.IPlannerUsecase
	healthUsecase  domainHealth.IHealthUsecase
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Social media content calendar planner",
	Long: `Plan posts for a roster of social media pages over calendar dates,
inspect estimated engagement and export the plan as an xlsx workbook.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig loads the structured config and applies flag overrides.
func initEnvConfig() {
	if _, err := coreconfig.LoadConfig(); err != nil {
		logrus.Fatalf("[CONFIG] failed to load configuration: %v", err)
	}
	cfg := coreconfig.Global

	// viper also reads keys from .env that were not exported to the process
	if v := viper.GetString("app_port"); v != "" {
		cfg.App.Port = v
	}
	if viper.GetBool("app_debug") {
		cfg.App.Debug = true
	}
	if v := viper.GetString("app_base_path"); v != "" {
		cfg.App.BasePath = v
	}
	if viper.IsSet("planner_seed") {
		cfg.Planner.RandomSeed = viper.GetInt64("planner_seed")
	}

	if rootCmd.PersistentFlags().Changed("port") {
		cfg.App.Port = flagPort
	}
	if rootCmd.PersistentFlags().Changed("debug") {
		cfg.App.Debug = flagDebug
	}
	if rootCmd.PersistentFlags().Changed("base-path") {
		cfg.App.BasePath = flagBasePath
	}
	if rootCmd.PersistentFlags().Changed("seed") {
		cfg.Planner.RandomSeed = flagSeed
	}
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&flagPort,
		"port", "p",
		"3000",
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagDebug,
		"debug", "d",
		false,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&flagBasePath,
		"base-path", "",
		"",
		`base path for subpath deployment --base-path <string> | example: --base-path="/planner"`,
	)
	rootCmd.PersistentFlags().Int64VarP(
		&flagSeed,
		"seed", "",
		0,
		`random seed for reproducible calendars, 0 picks one from the clock --seed <number> | example: --seed=42`,
	)
}

func initApp() {
	cfg := coreconfig.Global
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Debugf("[CONFIG] %v", coreconfig.GetAllSettings())

	serverID = uuid.NewString()

	seed := cfg.Planner.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logrus.Debugf("[APP] Random seed %d", seed)
	rng := application.NewSeededSource(seed)

	calendarDB = repository.NewMemoryCalendarStore(repository.DefaultRoster())
	exportCache = repository.NewMemoryWorkbookCache()

	if cfg.Database.ValkeyEnabled {
		client, err := valkey.NewClient(valkey.Config{
			Address:   cfg.Database.ValkeyAddress,
			Password:  cfg.Database.ValkeyPassword,
			DB:        cfg.Database.ValkeyDB,
			KeyPrefix: cfg.Database.ValkeyKeyPrefix,
		})
		if err != nil {
			logrus.Warnf("[VALKEY] Falling back to in-memory export cache: %v", err)
		} else {
			vkClient = client
			exportCache = repository.NewValkeyWorkbookCache(client)
			logrus.Infof("[VALKEY] Connected to %s", cfg.Database.ValkeyAddress)
		}
	}

	wsHub = websocket.NewHub(serverID)
	if vkClient != nil {
		wsHub.SetValkeyClient(vkClient)
	}

	plannerUsecase = usecase.NewPlannerService(usecase.PlannerDeps{
		Store:    calendarDB,
		Engine:   application.NewEngine(calendarDB, application.NewEstimator(rng)),
		Rand:     rng,
		Writer:   excel.NewWriter(),
		Cache:    exportCache,
		Notifier: wsHub,
		Config:   cfg.Planner,
		CacheTTL: cfg.Export.CacheTTL,
	})

	var pinger usecase.Pinger
	if vkClient != nil {
		pinger = vkClient
	}
	healthUsecase = usecase.NewHealthService(calendarDB, exportCache, pinger)
}

// startHub runs the websocket hub until StopApp.
func startHub() {
	ctx, cancel := context.WithCancel(context.Background())
	hubCancel = cancel
	go wsHub.Run(ctx)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp releases the websocket hub and the Valkey connection.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if hubCancel != nil {
		hubCancel()
	}
	if vkClient != nil {
		vkClient.Close()
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
