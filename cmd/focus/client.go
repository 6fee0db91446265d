package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"study-tracker/domain/dto"
	"study-tracker/pkg/logger"
)

const requestTimeout = 10 * time.Second

// apiClient talks to the study-tracker API with fiber's HTTP agent
type apiClient struct {
	baseURL string
	token   string
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *apiClient) login(email, password string) (*dto.LoginResponse, error) {
	agent := fiber.Post(c.baseURL + "/api/auth/login").
		Timeout(requestTimeout).
		JSON(dto.LoginRequest{Email: email, Password: password})

	var resp dto.LoginResponse
	if err := c.do(agent, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.token = resp.Token
	logger.Info("Logged in", "user_id", resp.User.ID)
	return &resp, nil
}

func (c *apiClient) tasks() ([]dto.TaskResponse, error) {
	if c.token == "" {
		return nil, errors.New("not logged in")
	}
	agent := fiber.Get(c.baseURL+"/api/tasks").
		Timeout(requestTimeout).
		Set(fiber.HeaderAuthorization, c.token)

	var list []dto.TaskResponse
	if err := c.do(agent, &list); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

func (c *apiClient) do(agent *fiber.Agent, target any) error {
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if status >= fiber.StatusBadRequest {
		var msg dto.MessageResponse
		if err := json.Unmarshal(body, &msg); err == nil && msg.Msg != "" {
			return fmt.Errorf("%d: %s", status, msg.Msg)
		}
		return fmt.Errorf("unexpected status %d", status)
	}
	return json.Unmarshal(body, target)
}

// findTask matches by id or by case-insensitive name
func findTask(tasks []dto.TaskResponse, query string) (dto.TaskResponse, bool) {
	q := strings.TrimSpace(query)
	for _, t := range tasks {
		if t.ID.String() == q || strings.EqualFold(t.TaskName, q) {
			return t, true
		}
	}
	return dto.TaskResponse{}, false
}
