package domain

// StatusOpen is the status every bug starts in.
const StatusOpen = "open"

// Bug is a tracked issue. BugID, ReportedBy and CreatedAt never change once
// the bug is stored.
type Bug struct {
	BugID       string  `json:"bug_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ReportedBy  string  `json:"reported_by"`
	Severity    string  `json:"severity"`
	Status      string  `json:"status"`
	AssignedTo  *string `json:"assigned_to"`
	ProjectID   *string `json:"project_id"`
	CreatedAt   string  `json:"created_at"`
}

// NewBug is the creation input. Status and assignment are not caller-settable.
type NewBug struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ReportedBy  string  `json:"reported_by"`
	Severity    string  `json:"severity"`
	ProjectID   *string `json:"project_id"`
}

// UpdateBug is a partial update: nil fields keep the stored value.
type UpdateBug struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assigned_to"`
	ProjectID   *string `json:"project_id"`
}

// AssignBugForm is the form-encoded body of the HTML assignment page. Both
// fields must be submitted; empty values are allowed.
type AssignBugForm struct {
	BugID       *string `form:"bug_id" binding:"required"`
	DeveloperID *string `form:"developer_id" binding:"required"`
}
