package transaction

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	ListTransactions(ctx context.Context) ([]*Transaction, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateParams carries a new transaction before the store assigns its id.
// A zero Date means "now".
type CreateParams struct {
	Description string
	Amount      int64 // Amount in cents
	Type        Type
	Category    string
	Date        time.Time
}

// Validate checks params against the rules every stored transaction obeys.
// Description and category are free text and stored as given.
func (p CreateParams) Validate() error {
	if p.Amount <= 0 {
		return invalid("amount", ErrInvalidAmount)
	}

	if !p.Type.Valid() {
		return invalid("type", ErrInvalidType)
	}

	return nil
}

func (s *Service) newTransaction(p CreateParams) *Transaction {
	date := p.Date
	if date.IsZero() {
		date = s.now()
	}

	return &Transaction{
		Description: p.Description,
		Amount:      p.Amount,
		Type:        p.Type,
		Category:    p.Category,
		Date:        date,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx := s.newTransaction(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch validates every entry up front and persists them together.
// Nothing is stored if any entry is invalid.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		txs[i] = s.newTransaction(p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	return txs, nil
}

// List returns all transactions, newest first.
func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(txs, func(a, b *Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})

	return txs, nil
}

// Delete removes the transaction with the given id. Unknown ids are not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(txs), nil
}

func (s *Service) Breakdown(ctx context.Context, t Type) ([]CategoryTotal, error) {
	if !t.Valid() {
		return nil, invalid("type", ErrInvalidType)
	}

	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	return Breakdown(txs, t), nil
}
