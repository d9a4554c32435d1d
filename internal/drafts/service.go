package drafts

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	product "github.com/grocerly/grocerly-backend/internal/products"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/money"
)

// Field names accepted by SetField.
const (
	FieldProductName = "productName"
	FieldBrand       = "brand"
	FieldImage       = "image"
	FieldPrice       = "price"
)

// Draft is the single product form in flight. Price carries no currency
// prefix; the prefix is applied on submit.
type Draft struct {
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	ProductName string     `json:"productName"`
	Brand       string     `json:"brand"`
	Image       string     `json:"image"`
	Price       string     `json:"price"`
	IsEditing   bool       `json:"isEditing"`
}

// SubmitOutcome reports what a submit produced.
type SubmitOutcome struct {
	Product *models.Product
	Created bool
}

type productWriter interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input product.CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input product.UpdateProductInput) (*models.Product, error)
}

// Service owns the product form draft. The draft is deliberately
// ephemeral server state: one form, one owner, reset on submit or cancel.
type Service interface {
	Get(ctx context.Context) Draft
	SetField(ctx context.Context, field, value string) (Draft, error)
	BeginEdit(ctx context.Context, productID uuid.UUID) (Draft, error)
	Submit(ctx context.Context) (*SubmitOutcome, error)
	Cancel(ctx context.Context) Draft
}

type service struct {
	mu       sync.Mutex
	draft    Draft
	products productWriter
	symbol   string
}

// NewService constructs a draft service instance.
func NewService(products productWriter, symbol string) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product writer required")
	}
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	return &service{products: products, symbol: symbol}, nil
}

// Get returns the current draft.
func (s *service) Get(_ context.Context) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetField updates exactly one named field.
func (s *service) SetField(_ context.Context, field, value string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case FieldProductName:
		s.draft.ProductName = value
	case FieldBrand:
		s.draft.Brand = value
	case FieldImage:
		s.draft.Image = value
	case FieldPrice:
		s.draft.Price = value
	default:
		return s.draft, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown draft field %q", field))
	}
	return s.draft, nil
}

// BeginEdit loads a product into the draft, stripping the currency prefix
// from its price, and switches the form into editing mode.
func (s *service) BeginEdit(ctx context.Context, productID uuid.UUID) (Draft, error) {
	prod, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return s.Get(ctx), err
	}

	amount, err := money.Parse(prod.Price, s.symbol)
	if err != nil {
		return s.Get(ctx), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := prod.ID
	s.draft = Draft{
		ProductID:   &id,
		ProductName: prod.ProductName,
		Brand:       prod.Brand,
		Image:       prod.Image,
		Price:       amount.Numeric(),
		IsEditing:   true,
	}
	return s.draft, nil
}

// Submit pushes the draft through the product service: a create when idle,
// an update when editing. The draft resets only on success, so a failed
// submit keeps the form for correction.
func (s *service) Submit(ctx context.Context) (*SubmitOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := money.ParseNumeric(s.draft.Price)
	if err != nil {
		return nil, err
	}
	price := amount.Format(s.symbol)

	var outcome SubmitOutcome
	if s.draft.IsEditing && s.draft.ProductID != nil {
		updated, err := s.products.UpdateProduct(ctx, *s.draft.ProductID, product.UpdateProductInput{
			ProductName: s.draft.ProductName,
			Brand:       s.draft.Brand,
			Image:       s.draft.Image,
			Price:       price,
		})
		if err != nil {
			return nil, err
		}
		outcome = SubmitOutcome{Product: updated}
	} else {
		created, err := s.products.CreateProduct(ctx, product.CreateProductInput{
			ProductName: s.draft.ProductName,
			Brand:       s.draft.Brand,
			Image:       s.draft.Image,
			Price:       price,
		})
		if err != nil {
			return nil, err
		}
		outcome = SubmitOutcome{Product: created, Created: true}
	}

	s.draft = Draft{}
	return &outcome, nil
}

// Cancel resets the draft unconditionally.
func (s *service) Cancel(_ context.Context) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = Draft{}
	return s.draft
}
