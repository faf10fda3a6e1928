package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

// ClientService handles client management and debt payments
type ClientService struct {
	clientRepo   repository.ClientRepository
	employeeRepo repository.EmployeeRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, employeeRepo repository.EmployeeRepository) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name                  string
	Email                 *string
	Phone                 *string
	Address               *string
	ResponsibleEmployeeID *uuid.UUID
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	Name                  *string
	Email                 *string
	Phone                 *string
	Address               *string
	ResponsibleEmployeeID *uuid.UUID
}

func (s *ClientService) checkResponsible(ctx context.Context, employeeID *uuid.UUID) error {
	if employeeID == nil {
		return nil
	}
	employee, err := s.employeeRepo.GetByID(ctx, *employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NewNotFoundError("Responsible employee")
	}
	return nil
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.clientRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A client with this phone already exists")
		}
	}

	if err := s.checkResponsible(ctx, input.ResponsibleEmployeeID); err != nil {
		return nil, err
	}

	client := &entity.Client{
		Name:                  input.Name,
		Email:                 input.Email,
		Phone:                 input.Phone,
		Address:               input.Address,
		ResponsibleEmployeeID: input.ResponsibleEmployeeID,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.Address != nil {
		client.Address = input.Address
	}
	if input.ResponsibleEmployeeID != nil {
		if err := s.checkResponsible(ctx, input.ResponsibleEmployeeID); err != nil {
			return nil, err
		}
		client.ResponsibleEmployeeID = input.ResponsibleEmployeeID
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient soft deletes a client. Clients still carrying debt
// cannot be removed.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	if client.Debt != 0 {
		return apperror.NewBadRequestError("Client has an outstanding balance")
	}
	return s.clientRepo.Delete(ctx, id)
}

// ListClients lists clients with filtering
func (s *ClientService) ListClients(ctx context.Context, params *repository.ClientFilterParams) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// ListClientsWithCursor lists clients using cursor-based pagination
func (s *ClientService) ListClientsWithCursor(ctx context.Context, params *repository.ClientCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Client], error) {
	params.Cursor.Validate()

	clients, err := s.clientRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(clients, params.Cursor.Limit,
		func(cl entity.Client) string { return cl.ID.String() },
		func(cl entity.Client) time.Time { return cl.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// ListDebtors lists clients who currently owe money
func (s *ClientService) ListDebtors(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.GetDebtors(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// RecordPayment reduces a client's debt by a received payment
func (s *ClientService) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	amountCents := int64(amount * 100)
	if amountCents <= 0 {
		return nil, apperror.NewBadRequestError("Payment must be positive")
	}

	if err := s.clientRepo.AdjustDebt(ctx, id, -amountCents); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"client_id": id,
		"amount":    amountCents,
	}).Info("client payment recorded")

	return s.clientRepo.GetByID(ctx, id)
}
