// Package txn implements Transaction (spec.md §4.6): a queued set of
// table operations that acquires hierarchical locks via a dependency-
// injected LockManager (per the §9 design note — never a package-level
// singleton), runs under strict 2PL with no-wait abort, and logs inserts
// for best-effort rollback.
//
// Grounded on the teacher's transaction-free request-handling style (no
// direct teacher equivalent existed — the teacher has no 2PL layer,
// which is exactly the gap this spec's lock/txn packages fill); the
// monotonic-ID allocator is a package-level counter guarded by its own
// mutex.
package txn

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tuannm99/lstore/internal/lock"
	"github.com/tuannm99/lstore/internal/lstore"
	"github.com/tuannm99/lstore/internal/record"
)

// Kind enumerates the operations a Transaction can queue.
type Kind int

const (
	Insert Kind = iota
	Update
	Delete
	Select
	SelectVersion
	Sum
	SumVersion
	Increment
)

// ErrAborted is returned by Run when the transaction aborts, whether due
// to a lock conflict, a missing key, or a query failure sentinel.
var ErrAborted = errors.New("txn: transaction aborted")

// Query is one queued operation: which table, which kind, and its
// arguments. Result is populated by Run on success for read operations.
type Query struct {
	Kind   Kind
	Table  *lstore.Table
	PK     int64
	Column int
	Cols   []record.Value
	Mask   []bool
	Version int
	Lo, Hi int64

	Result any
}

func (q Kind) isWrite() bool {
	return q == Insert || q == Update || q == Delete || q == Increment
}

// change is one entry in the rollback log: per spec.md §9's resolution
// of Open Question #3, only inserts are undone on abort.
type change struct {
	table *lstore.Table
	pk    int64
}

var (
	idMu      sync.Mutex
	idCounter uint64
)

// nextID allocates the next monotonic transaction ID. Per spec.md §4.6
// ("unique monotonic ID") this is deliberately not a UUID — see
// DESIGN.md's Open Question decisions.
func nextID() uint64 {
	idMu.Lock()
	defer idMu.Unlock()
	idCounter++
	return idCounter
}

// Transaction queues operations, tracks locks held (in acquisition
// order, for strict-2PL reverse release), and logs inserts for rollback.
type Transaction struct {
	ID uint64

	lm      *locking.LockManager
	queries []*Query

	heldLocks []string

	changeLog []change

	// DuplicateKey is set when abort was triggered by an insert colliding
	// with an existing primary key, so callers can distinguish user error
	// from lock contention (spec.md §4.6).
	DuplicateKey bool
}

// New creates a transaction bound to lm, the lock manager it will
// acquire/release against.
func New(lm *locking.LockManager) *Transaction {
	return &Transaction{ID: nextID(), lm: lm}
}

// AddQuery enqueues an operation to run when Run is called.
func (tx *Transaction) AddQuery(q *Query) {
	tx.queries = append(tx.queries, q)
}

// Run executes every queued operation in order (spec.md §4.6 run()).
// It first scans the queue once to decide overall_exclusive: true iff
// any operation is an insert, update, delete, or increment, in which
// case every operation — even reads — escalates to EXCLUSIVE to prevent
// lost-update interleavings within this transaction's own scope.
func (tx *Transaction) Run() error {
	overallExclusive := false
	for _, q := range tx.queries {
		if q.Kind.isWrite() {
			overallExclusive = true
			break
		}
	}

	mode := locking.Shared
	if overallExclusive {
		mode = locking.Exclusive
	}

	for _, q := range tx.queries {
		if q.Kind == Insert {
			if !tx.acquire(q.Table.Name, mode) {
				return tx.abort()
			}
		} else {
			ids, err := q.Table.LockIDs(q.Column, q.PK)
			if err != nil {
				return tx.abort()
			}
			for _, id := range ids {
				if !tx.acquire(id, mode) {
					return tx.abort()
				}
			}
		}

		if err := tx.execute(q); err != nil {
			if errors.Is(err, lstore.ErrDuplicateKey) {
				tx.DuplicateKey = true
			}
			return tx.abort()
		}
	}

	return tx.commit()
}

func (tx *Transaction) acquire(id string, mode locking.Mode) bool {
	if !tx.lm.Acquire(tx.ID, id, mode) {
		return false
	}
	tx.heldLocks = append(tx.heldLocks, id)
	return true
}

// execute dispatches q against its table and records rollback state.
func (tx *Transaction) execute(q *Query) error {
	switch q.Kind {
	case Insert:
		rid, err := q.Table.Insert(q.Cols)
		if err != nil {
			return err
		}
		tx.changeLog = append(tx.changeLog, change{table: q.Table, pk: q.Cols[0].I})
		q.Result = rid
		return nil

	case Update:
		return q.Table.Update(q.PK, q.Cols)

	case Delete:
		return q.Table.Delete(q.PK)

	case Select:
		recs, err := q.Table.Select(q.PK, q.Column, q.Mask)
		if err != nil {
			return err
		}
		q.Result = recs
		return nil

	case SelectVersion:
		recs, err := q.Table.SelectVersion(q.PK, q.Column, q.Mask, q.Version)
		if err != nil {
			return err
		}
		q.Result = recs
		return nil

	case Sum:
		sum, err := q.Table.Sum(q.Lo, q.Hi, q.Column)
		if err != nil {
			return err
		}
		q.Result = sum
		return nil

	case SumVersion:
		sum, err := q.Table.SumVersion(q.Lo, q.Hi, q.Column, q.Version)
		if err != nil {
			return err
		}
		q.Result = sum
		return nil

	case Increment:
		return q.Table.Increment(q.PK, q.Column)

	default:
		return fmt.Errorf("txn: unknown query kind %d", q.Kind)
	}
}

// commit releases all locks in reverse acquisition order (strict 2PL,
// finest-granularity-first release happens naturally because locks were
// acquired TABLE -> PAGE_RANGE -> PAGE -> RECORD).
func (tx *Transaction) commit() error {
	tx.releaseAll()
	return nil
}

// abort replays the rollback log in reverse — undoing only inserts, by
// deleting their PK (spec.md §9 Open Question #3: updates are never
// rewound) — then releases every lock it acquired, even if a rollback
// step itself fails.
func (tx *Transaction) abort() error {
	for i := len(tx.changeLog) - 1; i >= 0; i-- {
		c := tx.changeLog[i]
		if err := c.table.Delete(c.pk); err != nil {
			slog.Warn("txn: rollback delete failed", "txn", tx.ID, "table", c.table.Name, "pk", c.pk, "err", err)
		}
	}
	tx.releaseAll()
	return ErrAborted
}

func (tx *Transaction) releaseAll() {
	for i := len(tx.heldLocks) - 1; i >= 0; i-- {
		tx.lm.Release(tx.ID, tx.heldLocks[i])
	}
	tx.heldLocks = nil
}
