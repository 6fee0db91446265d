package dto

import (
	"study-tracker/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:            task.ID,
		OwnerID:       task.UserID,
		TaskName:      task.TaskName,
		Subject:       task.Subject,
		EstimatedTime: task.EstimatedTime,
		Priority:      task.Priority,
		Status:        task.Status,
		Order:         task.Order,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *TaskToTaskResponse(task)
	}
	return responses
}

// TaskResponsesToTasks rebuilds models from an API listing (client side)
func TaskResponsesToTasks(responses []TaskResponse) []*models.Task {
	tasks := make([]*models.Task, len(responses))
	for i, r := range responses {
		tasks[i] = &models.Task{
			ID:            r.ID,
			UserID:        r.OwnerID,
			TaskName:      r.TaskName,
			Subject:       r.Subject,
			EstimatedTime: r.EstimatedTime,
			Priority:      r.Priority,
			Status:        r.Status,
			Order:         r.Order,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		}
	}
	return tasks
}

func CreateTaskRequestToTask(req *CreateTaskRequest) *models.Task {
	task := &models.Task{
		TaskName:      req.TaskName,
		Subject:       req.Subject,
		EstimatedTime: req.EstimatedTime,
		Priority:      req.Priority,
		Status:        req.Status,
	}
	task.ApplyDefaults()
	return task
}

// ApplyTaskPatch copies only the fields present in the patch
func ApplyTaskPatch(task *models.Task, req *UpdateTaskRequest) {
	if req.TaskName != nil {
		task.TaskName = *req.TaskName
	}
	if req.Subject != nil {
		task.Subject = *req.Subject
	}
	if req.EstimatedTime != nil {
		task.EstimatedTime = *req.EstimatedTime
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Order != nil {
		task.Order = *req.Order
	}
}
