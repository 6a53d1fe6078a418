package cli

import (
	"github.com/mahesh00009/CurToCryptoFrontend/internal/repo"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/service"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/database"

	"github.com/pkg/errors"
)

// openStore opens the conversion journal database and migrates it.
func openStore(a *app) (*database.Database, *repo.Repository, error) {
	db, err := database.New(
		database.WithLogger(a.logger),
		database.WithPath(a.cfg.DBPath),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize database")
	}

	repository, err := repo.New(db.Get())
	if err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to create repository")
	}
	if err := repository.Migrate(); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to run migrations")
	}
	return db, repository, nil
}

func newJournal(a *app, repository *repo.Repository, source string) (*service.Journal, error) {
	return service.NewJournal(
		service.WithJournalLogger(a.logger),
		service.WithJournalRepo(repository),
		service.WithJournalSource(source),
	)
}
