package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"study-tracker/domain/dto"
	"study-tracker/domain/services"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/taskview"
	"study-tracker/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "No token")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID)

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) GetUserTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "No token")
	}

	tasks, err := h.taskService.GetUserTasks(ctx, user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to retrieve user tasks", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

// GetTaskView คืน list ที่ผ่าน search/filter/sort แล้ว
func (h *TaskHandler) GetTaskView(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "No token")
	}

	var q dto.TaskViewQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.BadRequestResponse(c, "Invalid query")
	}

	tasks, err := h.taskService.GetTaskView(ctx, user.ID, taskview.Query{
		Search:   q.Search,
		Status:   q.Status,
		Priority: q.Priority,
		SortBy:   q.SortBy,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build task view", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

func (h *TaskHandler) GetDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "No token")
	}

	summary, err := h.taskService.GetDashboard(ctx, user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build dashboard", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, summary)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "No token")
	}

	taskIDStr := c.Params("id")
	taskID, err := uuid.Parse(taskIDStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", taskIDStr)
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.UpdateTask(ctx, user.ID, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID)

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "No token")
	}

	taskIDStr := c.Params("id")
	taskID, err := uuid.Parse(taskIDStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", taskIDStr)
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.DeleteTask(ctx, user.ID, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)

	return utils.SuccessResponse(c, dto.DeleteTaskResponse{
		Msg:  "Deleted",
		Task: *dto.TaskToTaskResponse(task),
	})
}
