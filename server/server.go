package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/sidz1235/TaskRabbit/config"
	"github.com/sidz1235/TaskRabbit/model"
	"github.com/sidz1235/TaskRabbit/services/accounts"
	"github.com/sidz1235/TaskRabbit/services/tasklist"
	"github.com/sidz1235/TaskRabbit/transform"
)

type Accounts interface {
	Register(name, username, password string) error
	Authenticate(username, password string) (model.User, error)
}

type TaskList interface {
	Add(username string, task model.Task) error
	List(username string) ([]model.Task, error)
	Remove(username, taskID string) error
}

type Profiles interface {
	PicturePath(username string) string
	Upload(username string, image []byte) (string, error)
	Lookup(username string) (string, bool)
}

type Server struct {
	echo       *echo.Echo
	addr       string
	sessionKey []byte
	accounts   Accounts
	taskList   TaskList
	profiles   Profiles
	logger     *zap.Logger
}

func New(cfg *config.Config, accounts Accounts, taskList TaskList, profiles Profiles, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newRenderer()

	s := &Server{
		echo:       e,
		addr:       cfg.Port,
		sessionKey: []byte(cfg.SessionKey),
		accounts:   accounts,
		taskList:   taskList,
		profiles:   profiles,
		logger:     logger,
	}

	s.setupHandlers()

	return s
}

func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setupHandlers() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.logRequests)

	s.echo.GET("/", s.rootHandler)
	s.echo.GET("/login", s.loginFormHandler)
	s.echo.POST("/login", s.loginHandler)
	s.echo.GET("/register", s.registerFormHandler)
	s.echo.POST("/register", s.registerHandler)

	authenticated := s.echo.Group("", s.requireSession)
	authenticated.GET("/profile", s.profileHandler)
	authenticated.POST("/profile", s.uploadProfileHandler)
	authenticated.GET("/profile/picture", s.profilePictureHandler)
	authenticated.GET("/tasks", s.tasksHandler)
	authenticated.POST("/tasks", s.addTaskHandler)
	authenticated.POST("/tasks/:id/delete", s.deleteTaskHandler)
	authenticated.POST("/logout", s.logoutHandler)
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil {
			s.logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)

			return err
		}

		s.logger.Debug("request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
		)

		return nil
	}
}

type loginPage struct {
	Flash string
	Error string
}

type registerPage struct {
	Flash string
	Error string
}

type profilePage struct {
	Session    Session
	Flash      string
	Error      string
	HasPicture bool
}

type taskRow struct {
	Number int
	Task   model.Task
}

type tasksPage struct {
	Session Session
	Flash   string
	Error   string
	Rows    []taskRow
	Today   string
	Form    model.TaskForm
}

func (s *Server) rootHandler(c echo.Context) error {
	if _, ok := s.currentSession(c); ok {
		return c.Redirect(http.StatusSeeOther, "/tasks")
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) loginFormHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "login.tmpl", loginPage{
		Flash: c.QueryParam("flash"),
	})
}

func (s *Server) loginHandler(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.accounts.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.tmpl", loginPage{
				Error: "Invalid username or password!",
			})
		}

		return err
	}

	if err := s.issueSession(c, username, user.Name); err != nil {
		return err
	}

	return redirectWithFlash(c, "/tasks", "Welcome, "+user.Name+"!")
}

func (s *Server) registerFormHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "register.tmpl", registerPage{
		Flash: c.QueryParam("flash"),
	})
}

func (s *Server) registerHandler(c echo.Context) error {
	name := c.FormValue("name")
	username := c.FormValue("username")
	password := c.FormValue("password")

	err := s.accounts.Register(name, username, password)
	if err != nil {
		if errors.Is(err, accounts.ErrDuplicateUser) {
			return c.Render(http.StatusConflict, "register.tmpl", registerPage{
				Error: "Username already exists!",
			})
		}

		return err
	}

	return redirectWithFlash(c, "/login", "User registered successfully! Please log in.")
}

func (s *Server) logoutHandler(c echo.Context) error {
	s.clearSession(c)

	return redirectWithFlash(c, "/login", "Logged out successfully!")
}

func (s *Server) profileHandler(c echo.Context) error {
	session := sessionFromContext(c)

	_, hasPicture := s.profiles.Lookup(session.Username)

	return c.Render(http.StatusOK, "profile.tmpl", profilePage{
		Session:    session,
		Flash:      c.QueryParam("flash"),
		HasPicture: hasPicture,
	})
}

func (s *Server) profilePictureHandler(c echo.Context) error {
	session := sessionFromContext(c)

	path, ok := s.profiles.Lookup(session.Username)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	return c.File(path)
}

func (s *Server) uploadProfileHandler(c echo.Context) error {
	session := sessionFromContext(c)

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return s.renderProfile(c, session, "Please choose a picture to upload.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return s.renderProfile(c, session, "Could not read the uploaded picture.")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return s.renderProfile(c, session, "Could not read the uploaded picture.")
	}

	if _, err := s.profiles.Upload(session.Username, image); err != nil {
		s.logger.Error("upload profile picture", zap.Error(err))

		return s.renderProfile(c, session, "Could not save the uploaded picture.")
	}

	return redirectWithFlash(c, "/profile", "Profile picture updated!")
}

func (s *Server) renderProfile(c echo.Context, session Session, errorMessage string) error {
	_, hasPicture := s.profiles.Lookup(session.Username)

	return c.Render(http.StatusBadRequest, "profile.tmpl", profilePage{
		Session:    session,
		Error:      errorMessage,
		HasPicture: hasPicture,
	})
}

func (s *Server) tasksHandler(c echo.Context) error {
	session := sessionFromContext(c)

	return s.renderTasks(c, session, http.StatusOK, c.QueryParam("flash"), "", model.TaskForm{})
}

func (s *Server) addTaskHandler(c echo.Context) error {
	session := sessionFromContext(c)

	form := model.TaskForm{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Deadline:    c.FormValue("deadline"),
	}

	task, err := transform.FormToTask(form, time.Now())
	if err != nil {
		return s.renderTasks(c, session, http.StatusBadRequest, "", err.Error(), form)
	}

	if err := s.taskList.Add(session.Username, task); err != nil {
		s.logger.Error("add task", zap.Error(err))

		return s.renderTasks(c, session, http.StatusInternalServerError, "", "Could not save the task.", form)
	}

	return redirectWithFlash(c, "/tasks", "Task added successfully!")
}

func (s *Server) deleteTaskHandler(c echo.Context) error {
	session := sessionFromContext(c)

	err := s.taskList.Remove(session.Username, c.Param("id"))
	if err != nil {
		if errors.Is(err, tasklist.ErrTaskNotFound) {
			return s.renderTasks(c, session, http.StatusNotFound, "", "Task no longer exists.", model.TaskForm{})
		}

		s.logger.Error("delete task", zap.Error(err))

		return s.renderTasks(c, session, http.StatusInternalServerError, "", "Could not delete the task.", model.TaskForm{})
	}

	return redirectWithFlash(c, "/tasks", "Task deleted successfully!")
}

func redirectWithFlash(c echo.Context, path, message string) error {
	return c.Redirect(http.StatusSeeOther, path+"?flash="+url.QueryEscape(message))
}

func (s *Server) renderTasks(c echo.Context, session Session, status int, flash, errorMessage string, form model.TaskForm) error {
	tasks, err := s.taskList.List(session.Username)
	if err != nil {
		return err
	}

	rows := make([]taskRow, 0, len(tasks))
	for i, task := range tasks {
		rows = append(rows, taskRow{Number: i + 1, Task: task})
	}

	return c.Render(status, "tasks.tmpl", tasksPage{
		Session: session,
		Flash:   flash,
		Error:   errorMessage,
		Rows:    rows,
		Today:   time.Now().Format(model.DeadlineLayout),
		Form:    form,
	})
}
