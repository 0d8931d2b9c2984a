package tasklist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sidz1235/TaskRabbit/config"
	"github.com/sidz1235/TaskRabbit/jsonstore"
	"github.com/sidz1235/TaskRabbit/model"
)

func newTestService(t *testing.T) *TaskList {
	t.Helper()

	dir := t.TempDir()

	storage, err := jsonstore.New(&config.Config{
		StoreFile:  filepath.Join(dir, "user_data.json"),
		ProfileDir: filepath.Join(dir, "profile_pics"),
	})
	require.NoError(t, err)

	_, err = storage.InsertUser("ann", model.User{Name: "Ann", Password: "pw1"})
	require.NoError(t, err)

	return New(storage)
}

func TestAddAppendsAtEnd(t *testing.T) {
	service := newTestService(t)

	first := model.Task{ID: "id-1", Title: "first", Description: "d1", Deadline: "2026-09-01"}
	second := model.Task{ID: "id-2", Title: "second", Description: "d2", Deadline: "2026-09-02"}

	require.NoError(t, service.Add("ann", first))
	require.NoError(t, service.Add("ann", second))

	tasks, err := service.List("ann")
	require.NoError(t, err)
	require.Equal(t, []model.Task{first, second}, tasks)
}

func TestRemoveByID(t *testing.T) {
	service := newTestService(t)

	require.NoError(t, service.Add("ann", model.Task{ID: "id-1", Title: "first"}))
	require.NoError(t, service.Add("ann", model.Task{ID: "id-2", Title: "second"}))
	require.NoError(t, service.Add("ann", model.Task{ID: "id-3", Title: "third"}))

	require.NoError(t, service.Remove("ann", "id-2"))

	tasks, err := service.List("ann")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "first", tasks[0].Title)
	require.Equal(t, "third", tasks[1].Title)

	require.ErrorIs(t, service.Remove("ann", "id-2"), ErrTaskNotFound)
}

func TestRemoveAtShiftsSubsequentTasks(t *testing.T) {
	service := newTestService(t)

	require.NoError(t, service.Add("ann", model.Task{ID: "id-1", Title: "first"}))
	require.NoError(t, service.Add("ann", model.Task{ID: "id-2", Title: "second"}))
	require.NoError(t, service.Add("ann", model.Task{ID: "id-3", Title: "third"}))

	require.NoError(t, service.RemoveAt("ann", 2))

	tasks, err := service.List("ann")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "first", tasks[0].Title)
	require.Equal(t, "third", tasks[1].Title)
}

func TestRemoveAtOutOfRange(t *testing.T) {
	service := newTestService(t)

	require.NoError(t, service.Add("ann", model.Task{ID: "id-1", Title: "first"}))

	require.ErrorIs(t, service.RemoveAt("ann", 0), ErrIndexOutOfRange)
	require.ErrorIs(t, service.RemoveAt("ann", 2), ErrIndexOutOfRange)

	tasks, err := service.List("ann")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestListUnknownUser(t *testing.T) {
	service := newTestService(t)

	_, err := service.List("ghost")
	require.Error(t, err)
}
