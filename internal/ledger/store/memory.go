package store

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgerror"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkguid"
)

const (
	MsgAmountNotPositive   = "Transaction amount must be greater than zero"
	MsgDescriptionRequired = "Transaction description is required"
	MsgTransferParties     = "Transfer transactions require both sender and recipient"
	MsgTypeUnknown         = "Transaction type must be deposit, withdrawal or transfer"
	MsgStatusUnknown       = "Transaction status must be completed, pending or failed"
)

// maxIDAttempts bounds regeneration when the generator returns an id that was
// already issued by this store.
const maxIDAttempts = 8

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	ID    pkguid.StringID
	Clock Clock
}

// InMemoryStore owns the authoritative, insertion-ordered transaction
// collection together with the last error and loading flag.
//
// Every mutating operation either succeeds and clears the last error, or
// fails, leaves the collection untouched and records the error. Failures are
// never returned across the boundary: callers check the return value and
// then Err.
//
// InMemoryStore is not safe for concurrent use; callers serialize access.
type InMemoryStore struct {
	id    pkguid.StringID
	clock Clock

	txs     []entity.Transaction
	issued  map[string]struct{}
	lastErr error
	loading bool
}

func NewInMemoryStore(dep Dependency) *InMemoryStore {
	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}
	if dep.Clock == nil {
		dep.Clock = realClock{}
	}

	return &InMemoryStore{
		id:     dep.ID,
		clock:  dep.Clock,
		issued: make(map[string]struct{}),
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Create validates input and appends a new transaction. It returns the new
// identifier, or "" when the input was rejected.
func (s *InMemoryStore) Create(input entity.TransactionInput) string {
	if err := validateInput(input); err != nil {
		s.lastErr = err
		return ""
	}

	id, err := s.nextID()
	if err != nil {
		s.lastErr = err
		return ""
	}

	s.txs = append(s.txs, entity.Transaction{
		ID:          id,
		Amount:      input.Amount,
		Description: input.Description,
		Type:        input.Type,
		Status:      input.Status,
		Date:        s.clock.Now(),
		Sender:      input.Sender,
		Recipient:   input.Recipient,
	})
	s.lastErr = nil

	return id
}

// Update merges patch into the transaction with the given id, in place.
//
// The amount must stay positive and enum fields must be known values.
// Switching the type to transfer does not re-check sender and recipient.
func (s *InMemoryStore) Update(id string, patch entity.TransactionPatch) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		s.lastErr = notFound(id)
		return false
	}

	if err := validatePatch(patch); err != nil {
		s.lastErr = err
		return false
	}

	patch.Apply(&s.txs[idx])
	s.lastErr = nil

	return true
}

// Delete removes the transaction with the given id.
func (s *InMemoryStore) Delete(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		s.lastErr = notFound(id)
		return false
	}

	s.txs = slices.Delete(s.txs, idx, idx+1)
	s.lastErr = nil

	return true
}

// Get looks up a transaction. It has no side effects, the last error included.
func (s *InMemoryStore) Get(id string) (entity.Transaction, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return entity.Transaction{}, false
	}

	return s.txs[idx], true
}

// ClearAll empties the collection and clears the last error. Identifiers
// already issued stay reserved.
func (s *InMemoryStore) ClearAll() {
	s.txs = nil
	s.lastErr = nil
}

// Restore replaces the collection with snapshot and leaves the last error as
// it is. Callers use it to roll back a batch of creates that failed halfway.
func (s *InMemoryStore) Restore(snapshot []entity.Transaction) {
	s.txs = slices.Clone(snapshot)
}

func (s *InMemoryStore) SetLoading(loading bool) {
	s.loading = loading
}

// SetError overwrites the last error; nil clears it.
func (s *InMemoryStore) SetError(err error) {
	s.lastErr = err
}

// Transactions returns a snapshot of the collection in insertion order.
func (s *InMemoryStore) Transactions() []entity.Transaction {
	return slices.Clone(s.txs)
}

func (s *InMemoryStore) Len() int {
	return len(s.txs)
}

func (s *InMemoryStore) IsLoading() bool {
	return s.loading
}

// Err returns the outcome of the most recent operation, nil on success.
func (s *InMemoryStore) Err() error {
	return s.lastErr
}

func (s *InMemoryStore) indexOf(id string) int {
	return slices.IndexFunc(s.txs, func(tx entity.Transaction) bool {
		return tx.ID == id
	})
}

func (s *InMemoryStore) nextID() (string, error) {
	for range maxIDAttempts {
		id := s.id.Generate()
		if id == "" {
			continue
		}
		if _, used := s.issued[id]; used {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}

	return "", pkgerror.NewServer(errors.New("id generator kept returning issued ids"))
}

// validateInput applies the creation rules in order; the first failure wins.
// Enum checks come last so the amount, description and counterparty rules
// keep their precedence.
func validateInput(input entity.TransactionInput) error {
	if !input.Amount.IsPositive() {
		return pkgerror.NewValidation(MsgAmountNotPositive)
	}

	if input.Description == "" {
		return pkgerror.NewValidation(MsgDescriptionRequired)
	}

	if input.Type == entity.TxTypeTransfer && (input.Sender == "" || input.Recipient == "") {
		return pkgerror.NewValidation(MsgTransferParties)
	}

	if !input.Type.Valid() {
		return pkgerror.NewValidation(MsgTypeUnknown)
	}

	if !input.Status.Valid() {
		return pkgerror.NewValidation(MsgStatusUnknown)
	}

	return nil
}

func validatePatch(patch entity.TransactionPatch) error {
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return pkgerror.NewValidation(MsgAmountNotPositive)
	}

	if patch.Type != nil && !patch.Type.Valid() {
		return pkgerror.NewValidation(MsgTypeUnknown)
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return pkgerror.NewValidation(MsgStatusUnknown)
	}

	return nil
}

func notFound(id string) error {
	return pkgerror.NewNotFound(fmt.Sprintf("Transaction with ID %s not found", id))
}
