// focus is a terminal Pomodoro timer for study-tracker. It runs the timer
// locally and can log in to link the session to one of your tasks.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"study-tracker/domain/dto"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/pomodoro"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var server, email, password, task, mode, logFile string

	flagSet := pflag.NewFlagSet("focus", pflag.ContinueOnError)
	flagSet.StringVar(&server, "server", "http://localhost:5000", "study-tracker API base URL")
	flagSet.StringVarP(&email, "email", "e", "", "log in with this email to pick or link a task")
	flagSet.StringVarP(&password, "password", "p", os.Getenv("STUDY_TRACKER_PASSWORD"), "password (default $STUDY_TRACKER_PASSWORD)")
	flagSet.StringVarP(&task, "task", "t", "", "task name or id to focus on (requires --email; without it a task picker opens)")
	flagSet.StringVarP(&mode, "mode", "m", string(pomodoro.ModeWork), "starting mode: work, shortBreak, longBreak")
	flagSet.StringVar(&logFile, "log-file", "", "write JSON logs to this file (the screen belongs to the timer)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if err := initLogging(logFile); err != nil {
		return err
	}

	startMode, err := pomodoro.ParseMode(mode)
	if err != nil {
		return err
	}

	if task != "" && email == "" {
		return fmt.Errorf("--task requires --email")
	}

	var taskID, taskName string
	var listed []dto.TaskResponse
	if email != "" {
		client := newAPIClient(server)
		if _, err := client.login(email, password); err != nil {
			return err
		}
		listed, err = client.tasks()
		if err != nil {
			return err
		}
	}
	if task != "" {
		found, ok := findTask(listed, task)
		if !ok {
			return fmt.Errorf("no task matches %q", task)
		}
		taskID, taskName = found.ID.String(), found.TaskName
		logger.Info("Focusing on task", "task_id", taskID)
	}

	m, err := newModel(startMode, taskID, taskName)
	if err != nil {
		return err
	}
	if task == "" {
		// login แล้วแต่ไม่ระบุ task: เปิดหน้าเลือก task
		m = m.withTasks(dto.TaskResponsesToTasks(listed))
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func initLogging(path string) error {
	cfg := logger.DefaultConfig()
	cfg.Service = "focus"
	if path == "" {
		logger.InitWithWriter(io.Discard, cfg)
		return nil
	}
	cfg.Output = "file"
	cfg.FilePath = path
	return logger.Init(cfg)
}
