package repository

import (
	"slices"

	"github.com/templui/goalpost/internal/model"
)

// DirectoryRepository exposes the read-only users and teams.
type DirectoryRepository interface {
	Users() []model.User
	User(userID string) (model.User, error)
	Teams() []model.Team
	Team(teamID string) (model.Team, error)
}

func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) User(userID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *Store) Teams() []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTeams(s.teams)
}

func (s *Store) Team(teamID string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teams {
		if t.ID == teamID {
			t.Members = slices.Clone(t.Members)
			return t, nil
		}
	}
	return model.Team{}, ErrTeamNotFound
}
