// cmd/example is a smoke-test program exercising the public API, grounded
// on the teacher's cmd/manual_test/database/main.go (engine.NewDatabase,
// CreateTable, Insert) and extended to also drive an update and a
// transaction, since this engine has both where the teacher's heap table
// had neither.
package main

import (
	"fmt"
	"log"

	"github.com/tuannm99/lstore/internal/config"
	"github.com/tuannm99/lstore/internal/engine"
	"github.com/tuannm99/lstore/internal/record"
	"github.com/tuannm99/lstore/internal/txn"
)

func main() {
	cfg := config.Defaults()
	db := engine.NewDatabase("", cfg.TableOptions())

	schema := record.Schema{
		Cols: []record.Column{
			{Name: "id", Type: record.ColInt64},
			{Name: "a", Type: record.ColInt64},
			{Name: "b", Type: record.ColInt64},
		},
	}

	users, err := db.CreateTable("users", schema)
	if err != nil {
		log.Fatalf("create table: %v", err)
	}

	tx := db.NewTransaction()
	tx.AddQuery(&txn.Query{
		Kind:  txn.Insert,
		Table: users,
		Cols:  []record.Value{record.IntValue(1), record.IntValue(10), record.IntValue(20)},
	})
	if err := tx.Run(); err != nil {
		log.Fatalf("insert txn: %v", err)
	}

	mask := []bool{true, true, true}
	recs, err := users.Select(1, 0, mask)
	if err != nil {
		log.Fatalf("select: %v", err)
	}
	fmt.Println("after insert:", recs[0].Columns)

	updTx := db.NewTransaction()
	updTx.AddQuery(&txn.Query{
		Kind:  txn.Update,
		Table: users,
		PK:    1,
		Cols:  []record.Value{record.NullValue, record.IntValue(99), record.NullValue},
	})
	if err := updTx.Run(); err != nil {
		log.Fatalf("update txn: %v", err)
	}

	recs, err = users.Select(1, 0, mask)
	if err != nil {
		log.Fatalf("select: %v", err)
	}
	fmt.Println("after update:", recs[0].Columns)

	if err := db.Close(); err != nil {
		log.Fatalf("close: %v", err)
	}
}
