package store

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func seedUsers(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	users := NewUserStore(db)
	a, err := users.Create("Alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("seed user a: %v", err)
	}
	b, err := users.Create("Bob", "bob@example.com", "hash")
	if err != nil {
		t.Fatalf("seed user b: %v", err)
	}
	return a.ID, b.ID
}

func TestTransactionStore_AddAndList(t *testing.T) {
	db := newTestDB(t)
	userA, userB := seedUsers(t, db)
	s := NewTransactionStore(db)

	if _, err := s.Add(userA, TransactionFields{
		Kind: "income", Description: "Salary", AmountCents: 100000,
		Category: "Salary", Date: day("2024-01-01"),
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := s.Add(userA, TransactionFields{
		Kind: "expense", Description: "Groceries", AmountCents: 20000,
		Category: "Food", Date: day("2024-01-02"),
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := s.Add(userB, TransactionFields{
		Kind: "expense", Description: "Bob's rent", AmountCents: 80000,
		Category: "Rent", Date: day("2024-01-03"),
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	listA, err := s.List(userA)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listA) != 2 {
		t.Fatalf("List(userA) returned %d rows, want 2", len(listA))
	}
	// newest date first
	if listA[0].Description != "Groceries" || listA[1].Description != "Salary" {
		t.Errorf("List(userA) order = [%s, %s]", listA[0].Description, listA[1].Description)
	}
	for _, tx := range listA {
		if tx.UserID != userA {
			t.Errorf("List(userA) leaked a row owned by user %d", tx.UserID)
		}
	}

	listB, err := s.List(userB)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listB) != 1 || listB[0].Description != "Bob's rent" {
		t.Errorf("List(userB) = %+v, want only Bob's row", listB)
	}
}

func TestTransactionStore_ListPage(t *testing.T) {
	db := newTestDB(t)
	userA, userB := seedUsers(t, db)
	s := NewTransactionStore(db)

	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	for _, d := range dates {
		if _, err := s.Add(userA, TransactionFields{
			Kind: "expense", Description: d, AmountCents: 1000,
			Category: "Food", Date: day(d),
		}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if _, err := s.Add(userB, TransactionFields{
		Kind: "expense", Description: "Bob's rent", AmountCents: 80000,
		Category: "Rent", Date: day("2024-01-03"),
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	page1, total, err := s.ListPage(userA, 1, 2)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5 (userA rows only)", total)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 has %d rows, want 2", len(page1))
	}
	// newest date first across pages
	if page1[0].Description != "2024-01-05" || page1[1].Description != "2024-01-04" {
		t.Errorf("page 1 = [%s, %s]", page1[0].Description, page1[1].Description)
	}

	page3, total, err := s.ListPage(userA, 3, 2)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if total != 5 || len(page3) != 1 || page3[0].Description != "2024-01-01" {
		t.Errorf("page 3 = %+v (total %d), want the single oldest row", page3, total)
	}

	// past the end is an empty page, not an error
	page4, _, err := s.ListPage(userA, 4, 2)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if len(page4) != 0 {
		t.Errorf("page 4 has %d rows, want 0", len(page4))
	}

	// a page number below one clamps to the first page
	clamped, _, err := s.ListPage(userA, 0, 2)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if len(clamped) != 2 || clamped[0].Description != "2024-01-05" {
		t.Errorf("page 0 = %+v, want the first page", clamped)
	}
}

func TestTransactionStore_GetChecksOwnership(t *testing.T) {
	db := newTestDB(t)
	userA, userB := seedUsers(t, db)
	s := NewTransactionStore(db)

	tx, err := s.Add(userA, TransactionFields{
		Kind: "income", Description: "Salary", AmountCents: 100000,
		Category: "Salary", Date: day("2024-01-01"),
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := s.Get(userA, tx.ID)
	if err != nil {
		t.Fatalf("Get(owner) error = %v", err)
	}
	if got.ID != tx.ID {
		t.Errorf("Get(owner) id = %d, want %d", got.ID, tx.ID)
	}

	// a foreign id must look exactly like a missing one
	if _, err := s.Get(userB, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(foreign) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(userA, tx.ID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestTransactionStore_UpdateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	userA, userB := seedUsers(t, db)
	s := NewTransactionStore(db)

	tx, err := s.Add(userA, TransactionFields{
		Kind: "income", Description: "Salary", AmountCents: 100000,
		Category: "Salary", Date: day("2024-01-01"),
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	fields := TransactionFields{
		Kind: "expense", Description: "Corrected", AmountCents: 4250,
		Category: "Food", Date: day("2024-02-10"),
	}
	if _, err := s.Update(userA, tx.ID, fields); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Get(userA, tx.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Kind != fields.Kind || got.Description != fields.Description ||
		got.AmountCents != fields.AmountCents || got.Category != fields.Category ||
		!got.Date.Equal(fields.Date) {
		t.Errorf("Get() after Update() = %+v, want %+v", got, fields)
	}

	// foreign update is a NotFound, and leaves the row alone
	if _, err := s.Update(userB, tx.ID, TransactionFields{
		Kind: "income", Description: "Hijacked", AmountCents: 1,
		Category: "X", Date: day("2024-01-01"),
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(foreign) error = %v, want ErrNotFound", err)
	}
	got, _ = s.Get(userA, tx.ID)
	if got.Description != "Corrected" {
		t.Errorf("foreign Update() modified the row: %q", got.Description)
	}
}

func TestTransactionStore_DeleteIsScopedAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	userA, userB := seedUsers(t, db)
	s := NewTransactionStore(db)

	tx, err := s.Add(userA, TransactionFields{
		Kind: "expense", Description: "Rent", AmountCents: 80000,
		Category: "Rent", Date: day("2024-01-03"),
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// foreign delete is a silent no-op
	if err := s.Delete(userB, tx.ID); err != nil {
		t.Fatalf("Delete(foreign) error = %v, want nil", err)
	}
	if _, err := s.Get(userA, tx.ID); err != nil {
		t.Fatal("foreign Delete() removed the row")
	}

	// missing id is a silent no-op too
	if err := s.Delete(userA, tx.ID+100); err != nil {
		t.Fatalf("Delete(missing) error = %v, want nil", err)
	}

	if err := s.Delete(userA, tx.ID); err != nil {
		t.Fatalf("Delete(owner) error = %v", err)
	}
	if _, err := s.Get(userA, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
}
