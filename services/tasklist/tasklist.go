package tasklist

import (
	"errors"
	"fmt"

	"github.com/sidz1235/TaskRabbit/model"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrIndexOutOfRange = errors.New("task index out of range")
)

type Storage interface {
	GetUser(username string) (model.User, bool)
	AppendTask(username string, task model.Task) error
	ReplaceTasks(username string, tasks []model.Task) error
}

type TaskList struct {
	storage Storage
}

func New(storage Storage) *TaskList {
	return &TaskList{
		storage: storage,
	}
}

func (t *TaskList) Add(username string, task model.Task) error {
	if err := t.storage.AppendTask(username, task); err != nil {
		return fmt.Errorf("appendTask: %w", err)
	}

	return nil
}

// List returns the user's tasks in insertion order, oldest first.
func (t *TaskList) List(username string) ([]model.Task, error) {
	user, ok := t.storage.GetUser(username)
	if !ok {
		return nil, fmt.Errorf("unknown user %q", username)
	}

	return user.Tasks, nil
}

// Remove deletes the task with the given ID.
func (t *TaskList) Remove(username, taskID string) error {
	user, ok := t.storage.GetUser(username)
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	remaining := make([]model.Task, 0, len(user.Tasks))
	found := false

	for _, task := range user.Tasks {
		if task.ID == taskID {
			found = true

			continue
		}

		remaining = append(remaining, task)
	}

	if !found {
		return ErrTaskNotFound
	}

	return t.storage.ReplaceTasks(username, remaining)
}

// RemoveAt deletes the task at the given 1-based position. Positions past
// the current list length fail; the list may have changed size since the
// position was rendered.
func (t *TaskList) RemoveAt(username string, index int) error {
	user, ok := t.storage.GetUser(username)
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	if index < 1 || index > len(user.Tasks) {
		return ErrIndexOutOfRange
	}

	remaining := append([]model.Task(nil), user.Tasks[:index-1]...)
	remaining = append(remaining, user.Tasks[index:]...)

	return t.storage.ReplaceTasks(username, remaining)
}
