package model

// CommentWithAuthor pairs a comment with its resolved author. Author is the
// zero User when the author ID is not in the directory.
type CommentWithAuthor struct {
	Comment
	Author User `json:"author"`
}

// GoalDetail is a goal with its milestones loaded and its comment thread,
// newest first.
type GoalDetail struct {
	Goal     Goal                `json:"goal"`
	Owner    User                `json:"owner"`
	Team     *Team               `json:"team,omitempty"`
	Comments []CommentWithAuthor `json:"comments"`
}
