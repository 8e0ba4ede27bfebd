package repository

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/seed"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrTeamNotFound      = errors.New("team not found")
)

// Store is the in-memory source of truth for goals, milestones, comments and
// the read-only user/team directory. It implements every repository
// interface in this package.
//
// Mutations never modify a collection in place: they build a new backing
// slice and bump the version, so a previously taken Snapshot stays intact and
// observers can detect change by comparing versions.
type Store struct {
	mu sync.RWMutex

	goals      []model.Goal
	milestones []model.Milestone
	comments   []model.Comment
	users      []model.User
	teams      []model.Team

	version uint64
	newID   func() string
	now     func() time.Time
}

// Snapshot is a consistent copy of every collection at one version.
type Snapshot struct {
	Version    uint64            `json:"version"`
	Goals      []model.Goal      `json:"goals"`
	Milestones []model.Milestone `json:"milestones"`
	Comments   []model.Comment   `json:"comments"`
	Users      []model.User      `json:"users"`
	Teams      []model.Team      `json:"teams"`
}

type Option func(*Store)

// WithClock overrides the time source used for milestone completion dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides the generator used for new entity IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func NewStore(data seed.Data, opts ...Option) *Store {
	s := &Store{
		goals:      cloneGoals(data.Goals),
		milestones: cloneMilestones(data.Milestones),
		comments:   slices.Clone(data.Comments),
		users:      slices.Clone(data.Users),
		teams:      cloneTeams(data.Teams),
		newID:      func() string { return uuid.New().String() },
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.goals == nil {
		s.goals = []model.Goal{}
	}
	if s.milestones == nil {
		s.milestones = []model.Milestone{}
	}
	if s.comments == nil {
		s.comments = []model.Comment{}
	}

	return s
}

// Version increases by one on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Version:    s.version,
		Goals:      cloneGoals(s.goals),
		Milestones: cloneMilestones(s.milestones),
		Comments:   slices.Clone(s.comments),
		Users:      slices.Clone(s.users),
		Teams:      cloneTeams(s.teams),
	}
}

// appendCopy returns a new slice holding src followed by v. src is untouched.
func appendCopy[T any](src []T, v T) []T {
	next := make([]T, len(src), len(src)+1)
	copy(next, src)
	return append(next, v)
}

func cloneGoals(src []model.Goal) []model.Goal {
	if src == nil {
		return nil
	}
	out := make([]model.Goal, len(src))
	for i, g := range src {
		g.Milestones = cloneMilestones(g.Milestones)
		if g.Milestones == nil {
			g.Milestones = []model.Milestone{}
		}
		out[i] = g
	}
	return out
}

func cloneMilestones(src []model.Milestone) []model.Milestone {
	if src == nil {
		return nil
	}
	out := make([]model.Milestone, len(src))
	for i, m := range src {
		if m.CompletionDate != nil {
			t := *m.CompletionDate
			m.CompletionDate = &t
		}
		out[i] = m
	}
	return out
}

func cloneTeams(src []model.Team) []model.Team {
	if src == nil {
		return nil
	}
	out := make([]model.Team, len(src))
	for i, t := range src {
		t.Members = slices.Clone(t.Members)
		out[i] = t
	}
	return out
}

// SnapshotRepository exposes whole-state reads.
type SnapshotRepository interface {
	Snapshot() Snapshot
	Version() uint64
}
