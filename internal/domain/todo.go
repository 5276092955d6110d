package domain

// Todo is a single task record owned by exactly one user. OwnerID is
// set at creation and never changes.
type Todo struct {
	ID      int64
	Text    string
	Done    bool
	OwnerID int64
}
