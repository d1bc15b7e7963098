package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
)

type CustomerService struct {
	hasher       PasswordHasher
	customerRepo repository.CustomerRepo
}

func NewService(hasher PasswordHasher, customerRepo repository.CustomerRepo) *CustomerService {
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &CustomerService{
		hasher:       hasher,
		customerRepo: customerRepo,
	}
}

// Create registers a customer with a generated customer number and the
// password stored hashed.
func (s *CustomerService) Create(ctx context.Context, person models.PersonInfo, password string) (models.Customer, error) {
	var customer models.Customer

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return customer, fmt.Errorf("can't use this as password, Err: %w", err)
	}

	customer, err = s.customerRepo.CreateCustomer(ctx, repository.CreateCustomerParams{
		Person:         person,
		HashedPassword: hash,
		Number:         newCustomerNumber(),
	})
	if err != nil {
		return customer, fmt.Errorf("can't create customer. Err: %w", err)
	}

	return customer, nil
}

// Update replaces personal data; the password changes only when a
// non-empty one is provided.
func (s *CustomerService) Update(ctx context.Context, id int64, person models.PersonInfo, password string) (models.Customer, error) {
	var customer models.Customer

	existing, err := s.customerRepo.GetCustomerByID(ctx, id)
	if err != nil {
		return customer, err
	}

	// Advisory pre-check only; the unique index on identificacion is the
	// real guard and the repo maps its violation to the same error.
	if existing.Identification != person.Identification {
		_, err := s.customerRepo.GetCustomerByIdentification(ctx, person.Identification)
		switch {
		case err == nil:
			return customer, apperrors.ErrCustomerAlreadyExists
		case !errors.Is(err, apperrors.ErrCustomerNotFound):
			return customer, err
		}
	}

	arg := repository.UpdateCustomerParams{Person: person}
	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return customer, fmt.Errorf("can't use this as password, Err: %w", err)
		}
		arg.HashedPassword = &hash
	}

	return s.customerRepo.UpdateCustomer(ctx, id, arg)
}

func (s *CustomerService) SetActive(ctx context.Context, id int64, active bool) (models.Customer, error) {
	return s.customerRepo.SetCustomerActive(ctx, id, active)
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.customerRepo.DeleteCustomer(ctx, id)
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	return s.customerRepo.GetCustomerByID(ctx, id)
}

func (s *CustomerService) GetByIdentification(ctx context.Context, identification string) (models.Customer, error) {
	return s.customerRepo.GetCustomerByIdentification(ctx, identification)
}

func (s *CustomerService) GetByNumber(ctx context.Context, number string) (models.Customer, error) {
	return s.customerRepo.GetCustomerByNumber(ctx, number)
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.ListCustomers(ctx)
}

func (s *CustomerService) ListActive(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.ListActiveCustomers(ctx)
}

func (s *CustomerService) SearchByName(ctx context.Context, name string) ([]models.Customer, error) {
	return s.customerRepo.SearchCustomersByName(ctx, name)
}

// Customer numbers look like CLI-1A2B3C4D
func newCustomerNumber() string {
	return "CLI-" + strings.ToUpper(uuid.NewString()[:8])
}
