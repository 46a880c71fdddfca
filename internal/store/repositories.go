package store

import "github.com/colinz11/geoguessr-stats/internal/logger"

type Repositories struct {
	Games GameRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Games: NewGameRepository(db, log),
	}
}
