// Package seed holds the fixture the store is populated with at startup.
// Every call returns fresh slices so callers may hand them to a store
// without sharing backing arrays.
package seed

import (
	"time"

	"github.com/templui/goalpost/internal/model"
)

// Data is the full initial state of the application.
type Data struct {
	Users      []model.User
	Teams      []model.Team
	Goals      []model.Goal
	Milestones []model.Milestone
	Comments   []model.Comment
}

func Load() Data {
	return Data{
		Users:      Users(),
		Teams:      Teams(),
		Goals:      Goals(),
		Milestones: Milestones(),
		Comments:   Comments(),
	}
}

func Users() []model.User {
	return []model.User{
		{ID: "1", Name: "Alex Johnson", Email: "alex@example.com", Avatar: "https://i.pravatar.cc/150?img=1"},
		{ID: "2", Name: "Sam Williams", Email: "sam@example.com", Avatar: "https://i.pravatar.cc/150?img=2"},
		{ID: "3", Name: "Jordan Smith", Email: "jordan@example.com", Avatar: "https://i.pravatar.cc/150?img=3"},
		{ID: "4", Name: "Taylor Brown", Email: "taylor@example.com", Avatar: "https://i.pravatar.cc/150?img=4"},
	}
}

func Teams() []model.Team {
	return []model.Team{
		{ID: "team1", Name: "Product Development", Members: []string{"1", "2", "3"}},
		{ID: "team2", Name: "Marketing", Members: []string{"2", "4"}},
		{ID: "team3", Name: "Customer Success", Members: []string{"1", "4"}},
	}
}

func Goals() []model.Goal {
	return []model.Goal{
		{
			ID:          "g1",
			Title:       "Launch new website",
			Description: "Complete the redesign and launch of our company website with improved UX and performance metrics.",
			Progress:    75,
			StartDate:   date("2023-10-01T00:00:00.000Z"),
			EndDate:     date("2023-12-15T00:00:00.000Z"),
			UserID:      "1",
			TeamID:      "team1",
			Milestones:  []model.Milestone{},
		},
		{
			ID:          "g2",
			Title:       "Improve coding skills",
			Description: "Complete advanced React course and build three portfolio projects to showcase my skills.",
			Progress:    45,
			StartDate:   date("2023-09-15T00:00:00.000Z"),
			EndDate:     date("2023-12-31T00:00:00.000Z"),
			UserID:      "1",
			Milestones:  []model.Milestone{},
		},
		{
			ID:          "g3",
			Title:       "Increase social media engagement",
			Description: "Grow our social media following by 25% and increase engagement rates across all platforms.",
			Progress:    60,
			StartDate:   date("2023-10-10T00:00:00.000Z"),
			EndDate:     date("2024-01-10T00:00:00.000Z"),
			UserID:      "2",
			TeamID:      "team2",
			Milestones:  []model.Milestone{},
		},
		{
			ID:          "g4",
			Title:       "Run a half marathon",
			Description: "Train consistently and complete a half marathon under 2 hours.",
			Progress:    30,
			StartDate:   date("2023-11-01T00:00:00.000Z"),
			EndDate:     date("2024-05-10T00:00:00.000Z"),
			UserID:      "3",
			Milestones:  []model.Milestone{},
		},
		{
			ID:          "g5",
			Title:       "Improve customer satisfaction",
			Description: "Implement new customer feedback system and raise NPS score by at least 15 points.",
			Progress:    20,
			StartDate:   date("2023-11-15T00:00:00.000Z"),
			EndDate:     date("2024-02-28T00:00:00.000Z"),
			UserID:      "4",
			TeamID:      "team3",
			Milestones:  []model.Milestone{},
		},
	}
}

func Milestones() []model.Milestone {
	return []model.Milestone{
		completed("m1", "Complete wireframes", "Finalize all website wireframes with team approval", "g1", "2023-10-15T00:00:00.000Z"),
		completed("m2", "Develop main pages", "Complete development of homepage, about, and services pages", "g1", "2023-11-10T00:00:00.000Z"),
		{ID: "m3", Title: "QA testing", Description: "Complete all QA testing and fix identified issues", GoalID: "g1"},
		completed("m4", "Complete beginner course", "Finish React fundamentals course", "g2", "2023-10-01T00:00:00.000Z"),
		completed("m5", "Build first project", "Complete first portfolio project", "g2", "2023-11-05T00:00:00.000Z"),
		completed("m6", "Content strategy", "Develop and approve content calendar for next 3 months", "g3", "2023-10-25T00:00:00.000Z"),
		completed("m7", "Run 5K without stopping", "Build endurance to complete a 5K run", "g4", "2023-11-20T00:00:00.000Z"),
		completed("m8", "Implement feedback form", "Add customer feedback form to all touchpoints", "g5", "2023-12-01T00:00:00.000Z"),
	}
}

func Comments() []model.Comment {
	return []model.Comment{
		{
			ID:        "c1",
			Content:   "The homepage design looks great! I think we should adjust the call-to-action button color for better contrast.",
			UserID:    "2",
			GoalID:    "g1",
			Timestamp: date("2023-10-20T14:23:00.000Z"),
		},
		{
			ID:        "c2",
			Content:   "Just completed the mobile responsiveness testing. Found a few issues on the contact page that need fixing.",
			UserID:    "3",
			GoalID:    "g1",
			Timestamp: date("2023-11-05T09:15:00.000Z"),
		},
		{
			ID:        "c3",
			Content:   "Your progress on React is impressive! Have you checked out the new hooks documentation?",
			UserID:    "4",
			GoalID:    "g2",
			Timestamp: date("2023-10-28T16:42:00.000Z"),
		},
		{
			ID:        "c4",
			Content:   "Our Instagram engagement has increased by 12% this month. The new content strategy is working!",
			UserID:    "1",
			GoalID:    "g3",
			Timestamp: date("2023-11-12T11:30:00.000Z"),
		},
		{
			ID:        "c5",
			Content:   "I recommend trying interval training to improve your endurance for the half marathon.",
			UserID:    "2",
			GoalID:    "g4",
			Timestamp: date("2023-11-25T08:17:00.000Z"),
		},
		{
			ID:        "c6",
			Content:   "The initial feedback from customers on the new system has been very positive.",
			UserID:    "1",
			GoalID:    "g5",
			Timestamp: date("2023-12-05T15:08:00.000Z"),
		},
	}
}

func completed(id, title, description, goalID, completedAt string) model.Milestone {
	t := date(completedAt)
	return model.Milestone{
		ID:             id,
		Title:          title,
		Description:    description,
		GoalID:         goalID,
		IsCompleted:    true,
		CompletionDate: &t,
	}
}

// date parses a fixture timestamp. The literals above are all valid, so a
// parse failure is a programming error.
func date(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("seed: invalid timestamp " + value)
	}
	return t
}
