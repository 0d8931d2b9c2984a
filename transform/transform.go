package transform

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sidz1235/TaskRabbit/model"
)

// FormToTask validates the add-task form. Empty title and description are
// accepted; the deadline must parse as 2006-01-02 and must not be before
// today. The returned task carries a fresh ID.
func FormToTask(form model.TaskForm, now time.Time) (model.Task, error) {
	deadline, err := time.Parse(model.DeadlineLayout, form.Deadline)
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid deadline format")
	}

	if deadline.Before(makeDate(now)) {
		return model.Task{}, fmt.Errorf("deadline is in the past")
	}

	return model.Task{
		ID:          uuid.NewString(),
		Title:       form.Title,
		Description: form.Description,
		Deadline:    deadline.Format(model.DeadlineLayout),
	}, nil
}

// UsersToStored copies the directory into its wire shape. Profile is forced
// to null in the written copy and task IDs are dropped.
func UsersToStored(users map[string]*model.User) map[string]model.StoredUser {
	stored := make(map[string]model.StoredUser, len(users))

	for username, user := range users {
		tasks := make([]model.StoredTask, 0, len(user.Tasks))
		for _, task := range user.Tasks {
			tasks = append(tasks, model.StoredTask{
				Title:       task.Title,
				Description: task.Description,
				Deadline:    task.Deadline,
			})
		}

		stored[username] = model.StoredUser{
			Name:     user.Name,
			Password: user.Password,
			Profile:  nil,
			Tasks:    tasks,
		}
	}

	return stored
}

// StoredToUsers rebuilds the in-memory directory. Tasks get fresh IDs and
// every profile pointer starts empty regardless of what was stored.
func StoredToUsers(stored map[string]model.StoredUser) map[string]*model.User {
	users := make(map[string]*model.User, len(stored))

	for username, storedUser := range stored {
		tasks := make([]model.Task, 0, len(storedUser.Tasks))
		for _, storedTask := range storedUser.Tasks {
			tasks = append(tasks, model.Task{
				ID:          uuid.NewString(),
				Title:       storedTask.Title,
				Description: storedTask.Description,
				Deadline:    storedTask.Deadline,
			})
		}

		users[username] = &model.User{
			Name:     storedUser.Name,
			Password: storedUser.Password,
			Profile:  "",
			Tasks:    tasks,
		}
	}

	return users
}

func makeDate(datetime time.Time) time.Time {
	y, m, d := datetime.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
