// Package wire provides dependency injection for the compass application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	cliadapter "github.com/example/compass/internal/adapters/cli"
	"github.com/example/compass/internal/adapters/sqlite"
	"github.com/example/compass/internal/app"
	"github.com/example/compass/internal/config"
	"github.com/example/compass/internal/db"
	"github.com/example/compass/internal/logging"
	"github.com/example/compass/internal/ports/primary"
)

var (
	settings = config.Config{Output: config.OutputConfig{Color: true}}
	logger   = logging.Discard()

	rollupService    primary.RollupService
	planService      primary.PlanService
	focusAreaService primary.FocusAreaService
	objectiveService primary.ObjectiveService
	activityService  primary.ActivityService
	historyService   primary.HistoryService
	once             sync.Once
)

// Configure installs the resolved configuration and logger.
// It must run before the first service is requested; later calls do not rebuild services.
func Configure(cfg config.Config, l *log.Logger) {
	settings = cfg
	if l != nil {
		logger = l
	}
	if cfg.Database.Path != "" {
		db.SetPath(cfg.Database.Path)
	}
}

// Logger returns the configured logger.
func Logger() *log.Logger {
	return logger
}

// Settings returns the configuration passed to Configure.
func Settings() config.Config {
	return settings
}

// RollupService returns the singleton RollupService instance.
func RollupService() primary.RollupService {
	once.Do(initServices)
	return rollupService
}

// PlanService returns the singleton PlanService instance.
func PlanService() primary.PlanService {
	once.Do(initServices)
	return planService
}

// FocusAreaService returns the singleton FocusAreaService instance.
func FocusAreaService() primary.FocusAreaService {
	once.Do(initServices)
	return focusAreaService
}

// ObjectiveService returns the singleton ObjectiveService instance.
func ObjectiveService() primary.ObjectiveService {
	once.Do(initServices)
	return objectiveService
}

// ActivityService returns the singleton ActivityService instance.
func ActivityService() primary.ActivityService {
	once.Do(initServices)
	return activityService
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		logger.Fatal("failed to initialize database", "err", err)
	}

	// Repository adapters (secondary ports) share the one connection
	planRepo := sqlite.NewStrategicPlanRepository(database)
	focusAreaRepo := sqlite.NewFocusAreaRepository(database)
	objectiveRepo := sqlite.NewObjectiveRepository(database)
	activityRepo := sqlite.NewActivityRepository(database)
	eventRepo := sqlite.NewStatusEventRepository(database)
	store := sqlite.NewHierarchyStore(database)
	txManager := sqlite.NewTxManager(database)
	logWriter := sqlite.NewLogWriterAdapter(eventRepo)

	// Services (primary ports implementation)
	rollup := app.NewRollupService(store, logWriter, logger.WithPrefix(logging.Prefix+"/rollup"))
	rollupService = rollup
	planService = app.NewPlanService(planRepo, focusAreaRepo, objectiveRepo, activityRepo)
	focusAreaService = app.NewFocusAreaService(focusAreaRepo, planRepo, rollup, txManager)
	objectiveService = app.NewObjectiveService(objectiveRepo, focusAreaRepo, rollup, txManager)
	activityService = app.NewActivityService(activityRepo, objectiveRepo, rollup, txManager)
	historyService = app.NewHistoryService(eventRepo)
}

func statusStyle() *cliadapter.StatusStyle {
	return cliadapter.NewStatusStyle(settings.Output.Color)
}

// PlanAdapter returns a new PlanAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func PlanAdapter() *cliadapter.PlanAdapter {
	return PlanAdapterWithOutput(os.Stdout)
}

// PlanAdapterWithOutput returns a new PlanAdapter writing to the given output.
func PlanAdapterWithOutput(out io.Writer) *cliadapter.PlanAdapter {
	return cliadapter.NewPlanAdapter(PlanService(), statusStyle(), out)
}

// NodeAdapter returns a new NodeAdapter writing to stdout.
func NodeAdapter() *cliadapter.NodeAdapter {
	return NodeAdapterWithOutput(os.Stdout)
}

// NodeAdapterWithOutput returns a new NodeAdapter writing to the given output.
func NodeAdapterWithOutput(out io.Writer) *cliadapter.NodeAdapter {
	return cliadapter.NewNodeAdapter(FocusAreaService(), ObjectiveService(), ActivityService(), statusStyle(), out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return HistoryAdapterWithOutput(os.Stdout)
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
func HistoryAdapterWithOutput(out io.Writer) *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(HistoryService(), statusStyle(), out)
}
