package app

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/generation"
	"github.com/alexanderramin/sprout/internal/llm"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/alexanderramin/sprout/internal/service"
)

// Options tunes the wiring. Client overrides the chat client built from LLM.
type Options struct {
	Location        *time.Location
	LLM             llm.LLMConfig
	Client          llm.LLMClient
	Workers         int
	ReplaceExisting bool
	Now             func() time.Time
}

// Container holds every use case, built once per process.
type Container struct {
	Users      service.UserService
	Journals   service.JournalService
	Goals      service.GoalService
	Tasks      service.TaskService
	Dashboard  service.DashboardService
	Generation service.GenerationService
	Location   *time.Location
	LLM        llm.LLMClient
}

// Wire builds the repositories and services over database.
func Wire(database *sql.DB, opts Options, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	users := repository.NewSQLiteUserRepo(database)
	journals := repository.NewSQLiteJournalRepo(database)
	goals := repository.NewSQLiteGoalRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	dashboard := repository.NewSQLiteDashboardRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	client := opts.Client
	if client == nil {
		var observer llm.Observer = llm.NoopObserver{}
		if opts.LLM.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client = llm.NewChatClient(opts.LLM, observer)
	}
	generator := generation.NewGenerator(client, logger)

	return &Container{
		Users:     service.NewUserService(users),
		Journals:  service.NewJournalService(journals, opts.Location),
		Goals:     service.NewGoalService(goals),
		Tasks:     service.NewTaskService(tasks),
		Dashboard: service.NewDashboardService(journals, goals, tasks, dashboard, opts.Location),
		Generation: service.NewGenerationService(journals, goals, uow, generator,
			service.GenerationConfig{
				Location:        opts.Location,
				Workers:         opts.Workers,
				ReplaceExisting: opts.ReplaceExisting,
			},
			opts.Now,
			service.NewLogUseCaseObserver(logger),
		),
		Location: opts.Location,
		LLM:      client,
	}
}
