package serviceimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"study-tracker/domain/repositories"
	"study-tracker/pkg/config"
)

// OrderPolicy assigns the order of a task about to be created
type OrderPolicy interface {
	NextOrder(ctx context.Context, userID uuid.UUID) (int, error)
}

func NewOrderPolicy(name string, taskRepo repositories.TaskRepository) (OrderPolicy, error) {
	switch name {
	case config.OrderPolicyCount, "":
		return countOrderPolicy{taskRepo: taskRepo}, nil
	case config.OrderPolicyMonotonic:
		return monotonicOrderPolicy{taskRepo: taskRepo}, nil
	default:
		return nil, fmt.Errorf("unknown order policy %q", name)
	}
}

// countOrderPolicy: order = number of tasks the owner has now. After a
// delete this can repeat an order already in use.
type countOrderPolicy struct {
	taskRepo repositories.TaskRepository
}

func (p countOrderPolicy) NextOrder(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := p.taskRepo.CountByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// monotonicOrderPolicy: order = max(order)+1, or 0 for the first task
type monotonicOrderPolicy struct {
	taskRepo repositories.TaskRepository
}

func (p monotonicOrderPolicy) NextOrder(ctx context.Context, userID uuid.UUID) (int, error) {
	maxOrder, found, err := p.taskRepo.MaxOrderByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return maxOrder + 1, nil
}
