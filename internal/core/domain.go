package core

import (
	"errors"
	"time"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type (
	// Kind distinguishes the two ledger tables a transaction can live in.
	Kind string

	// User is an account record. Users are append-only: created once by
	// registration and never updated or deleted.
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Password string `json:"-"`
	}

	// Transaction is the shared shape of income and expense records.
	// Timestamp is Unix nanoseconds at insertion time.
	Transaction struct {
		ID          string  `json:"id"`
		UserID      string  `json:"userId"`
		Name        string  `json:"name"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Location    string  `json:"location"`
		Timestamp   int64   `json:"timestamp"`
	}

	// TransactionPayload carries the caller-supplied fields of a new
	// income or expense entry.
	TransactionPayload struct {
		Name        string  `json:"name"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Location    string  `json:"location"`
	}

	// TaggedTransaction wraps a transaction together with its kind for
	// merged income+expense listings. Exactly one of the two fields is set.
	TaggedTransaction struct {
		Income  *Transaction `json:"income,omitempty"`
		Expense *Transaction `json:"expense,omitempty"`
	}
)

var (
	ErrInvalidInput       = errors.New("invalid username or password")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrNoSession          = errors.New("no logged in user")
	ErrInvalidPayload     = errors.New("invalid transaction payload")
)

// ValidateCredentials checks the username/password pair supplied to
// registration or authentication. Only the truly empty string is rejected;
// whitespace-only values count as present.
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidInput
	}
	return nil
}

func (p TransactionPayload) Validate() error {
	if p.Name == "" {
		return ErrInvalidPayload
	}
	// Zero amounts are allowed; only negative ones are rejected.
	if p.Amount < 0 {
		return ErrInvalidPayload
	}
	if p.Description == "" {
		return ErrInvalidPayload
	}
	if p.Location == "" {
		return ErrInvalidPayload
	}
	return nil
}

// Time returns the creation timestamp as a time.Time.
func (t Transaction) Time() time.Time {
	return time.Unix(0, t.Timestamp)
}

// Tagged wraps the transaction for merged listings.
func (t Transaction) Tagged(kind Kind) TaggedTransaction {
	if kind == KindIncome {
		tx := t
		return TaggedTransaction{Income: &tx}
	}
	tx := t
	return TaggedTransaction{Expense: &tx}
}

// Kind reports which ledger table a tagged entry came from.
func (tt TaggedTransaction) Kind() Kind {
	if tt.Income != nil {
		return KindIncome
	}
	return KindExpense
}
