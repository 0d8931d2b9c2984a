package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sidz1235/TaskRabbit/model"
)

func TestFormToTask(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

	task, err := FormToTask(model.TaskForm{
		Title:       "Buy groceries",
		Description: "Milk and bread",
		Deadline:    "2026-09-01",
	}, now)
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, "Buy groceries", task.Title)
	require.Equal(t, "Milk and bread", task.Description)
	require.Equal(t, "2026-09-01", task.Deadline)
}

func TestFormToTaskAcceptsToday(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)

	task, err := FormToTask(model.TaskForm{Deadline: "2026-08-30"}, now)
	require.NoError(t, err)
	require.Equal(t, "2026-08-30", task.Deadline)
}

func TestFormToTaskAcceptsEmptyTitleAndDescription(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	task, err := FormToTask(model.TaskForm{Deadline: "2026-12-31"}, now)
	require.NoError(t, err)
	require.Empty(t, task.Title)
	require.Empty(t, task.Description)
}

func TestFormToTaskRejectsPastDeadline(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	_, err := FormToTask(model.TaskForm{Deadline: "2026-08-29"}, now)
	require.Error(t, err)
}

func TestFormToTaskRejectsBadDateFormat(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	_, err := FormToTask(model.TaskForm{Deadline: "30.08.2026"}, now)
	require.Error(t, err)
}

func TestUsersToStoredForcesNullProfile(t *testing.T) {
	users := map[string]*model.User{
		"ann": {
			Name:     "Ann",
			Password: "pw1",
			Profile:  "profile_pics/ann_profile.jpg",
			Tasks: []model.Task{
				{ID: "id-1", Title: "first", Description: "d1", Deadline: "2026-09-01"},
				{ID: "id-2", Title: "second", Description: "d2", Deadline: "2026-09-02"},
			},
		},
	}

	stored := UsersToStored(users)
	require.Len(t, stored, 1)
	require.Nil(t, stored["ann"].Profile)
	require.Equal(t, "Ann", stored["ann"].Name)
	require.Equal(t, "pw1", stored["ann"].Password)
	require.Equal(t, []model.StoredTask{
		{Title: "first", Description: "d1", Deadline: "2026-09-01"},
		{Title: "second", Description: "d2", Deadline: "2026-09-02"},
	}, stored["ann"].Tasks)
}

func TestStoredToUsersAssignsIDsAndClearsProfile(t *testing.T) {
	path := "profile_pics/ann_profile.jpg"
	stored := map[string]model.StoredUser{
		"ann": {
			Name:     "Ann",
			Password: "pw1",
			Profile:  &path,
			Tasks: []model.StoredTask{
				{Title: "first", Description: "d1", Deadline: "2026-09-01"},
			},
		},
	}

	users := StoredToUsers(stored)
	require.Len(t, users, 1)
	require.Empty(t, users["ann"].Profile)
	require.Len(t, users["ann"].Tasks, 1)
	require.NotEmpty(t, users["ann"].Tasks[0].ID)
	require.Equal(t, "first", users["ann"].Tasks[0].Title)
}
