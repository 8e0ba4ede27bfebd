package service

import (
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/repository"
)

// DirectoryService serves the read-only users and teams.
type DirectoryService struct {
	repo repository.DirectoryRepository
}

func NewDirectoryService(repo repository.DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) Users() []model.User {
	return s.repo.Users()
}

func (s *DirectoryService) User(userID string) (*model.User, error) {
	user, err := s.repo.User(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DirectoryService) Teams() []model.Team {
	return s.repo.Teams()
}

// TeamsForUser returns the teams the user belongs to, in directory order.
func (s *DirectoryService) TeamsForUser(userID string) []model.Team {
	var teams []model.Team
	for _, t := range s.repo.Teams() {
		if t.HasMember(userID) {
			teams = append(teams, t)
		}
	}
	return teams
}

// TeamNames maps team IDs to display names.
func (s *DirectoryService) TeamNames() map[string]string {
	names := make(map[string]string)
	for _, t := range s.repo.Teams() {
		names[t.ID] = t.Name
	}
	return names
}

// UserNames maps user IDs to display names.
func (s *DirectoryService) UserNames() map[string]string {
	names := make(map[string]string)
	for _, u := range s.repo.Users() {
		names[u.ID] = u.Name
	}
	return names
}
