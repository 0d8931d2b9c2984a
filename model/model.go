package model

const DeadlineLayout = "2006-01-02"

// Task.ID is assigned in memory when the task is created or loaded.
// It is never written to the store.
type Task struct {
	ID          string
	Title       string
	Description string
	Deadline    string
}

// User.Profile holds the picture path for the lifetime of the process only.
type User struct {
	Name     string
	Password string
	Profile  string
	Tasks    []Task
}

type StoredTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// StoredUser.Profile is always null in the store file.
type StoredUser struct {
	Name     string       `json:"name"`
	Password string       `json:"password"`
	Profile  *string      `json:"profile"`
	Tasks    []StoredTask `json:"tasks"`
}

type TaskForm struct {
	Title       string
	Description string
	Deadline    string
}
