package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/models"
	"spendwise/internal/testutil"
)

func newTxService(db *gorm.DB) TransactionServicer {
	return NewTransactionService(db, NewTagService(db, NewUserService(db)))
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func validInput() TransactionInput {
	return TransactionInput{
		Description: "Lunch",
		PaymentType: models.PaymentTypeCash,
		Category:    models.CategoryExpense,
		Amount:      amount("12.50"),
		Date:        "2024-05-01",
	}
}

func TestListTransactions(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := newTxService(db).ListTransactions(nil, ListQuery{Limit: 10})
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("invalid_paging", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ListTransactions(user, ListQuery{Limit: 0})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		_, err = svc.ListTransactions(user, ListQuery{Offset: -1, Limit: 5})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("never_returns_other_users_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		for i := 0; i < 3; i++ {
			testutil.CreateTestTransaction(t, db, alice.ID)
			testutil.CreateTestTransaction(t, db, bob.ID)
		}

		for _, user := range []*models.User{alice, bob} {
			page, err := svc.ListTransactions(user, ListQuery{Limit: 100})
			testutil.AssertNoError(t, err)
			if page.Total != 3 || len(page.Transactions) != 3 {
				t.Fatalf("expected 3 rows, got %d (total %d)", len(page.Transactions), page.Total)
			}
			for _, tx := range page.Transactions {
				if tx.UserID != user.ID {
					t.Errorf("transaction %s belongs to %s, listed for %s", tx.ID, tx.UserID, user.ID)
				}
			}
		}
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)
		for i := 1; i <= 14; i++ {
			testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDate(fmt.Sprintf("2024-02-%02d", i)))
		}

		tests := []struct {
			offset    int
			wantCount int
		}{
			{0, 6},
			{6, 6},
			{12, 2},
			{14, 0},
			{100, 0},
		}
		for _, tt := range tests {
			page, err := svc.ListTransactions(user, ListQuery{Offset: tt.offset, Limit: 6})
			testutil.AssertNoError(t, err)
			if len(page.Transactions) != tt.wantCount {
				t.Errorf("offset %d: expected %d items, got %d", tt.offset, tt.wantCount, len(page.Transactions))
			}
			if page.Total != 14 {
				t.Errorf("offset %d: expected total 14, got %d", tt.offset, page.Total)
			}
			if page.Transactions == nil {
				t.Errorf("offset %d: expected empty slice, got nil", tt.offset)
			}
		}
	})

	t.Run("ordered_by_date_desc", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDate("2024-01-10"))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDate("2024-03-01"))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDate("2023-12-31"))

		page, err := svc.ListTransactions(user, ListQuery{Limit: 10})
		testutil.AssertNoError(t, err)

		want := []string{"2024-03-01", "2024-01-10", "2023-12-31"}
		for i, tx := range page.Transactions {
			if tx.Date != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], tx.Date)
			}
		}
	})

	t.Run("local_date_filter_includes_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)
		dates := []string{"2024-01-15", "2024-02-29", "2023-12-31", "2024-10-05"}
		for _, d := range dates {
			testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDate(d))
		}

		for _, d := range dates {
			local := d[8:10] + "." + d[5:7] + "." + d[0:4]
			page, err := svc.ListTransactions(user, ListQuery{Limit: 50, Filter: local})
			testutil.AssertNoError(t, err)

			found := false
			for _, tx := range page.Transactions {
				if tx.Date == d {
					found = true
				}
			}
			if !found {
				t.Errorf("filter %q did not include transaction dated %s", local, d)
			}
		}
	})

	t.Run("filter_by_category_substring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)
		inv := testutil.CreateTestTransaction(t, db, user.ID, testutil.WithCategory(models.CategoryInvestment))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithCategory(models.CategorySaving))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithCategory(models.CategoryExpense))

		page, err := svc.ListTransactions(user, ListQuery{Limit: 10, Filter: "inv"})
		testutil.AssertNoError(t, err)
		if page.Total != 1 || page.Transactions[0].ID != inv.ID {
			t.Errorf("expected only the investment, got %+v", page.Transactions)
		}
	})

	t.Run("custom_tag_search_term", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)
		coffee := testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDescription("Coffee beans"))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDescription("Train ticket"))
		customTag := testutil.CreateTestCustomTag(t, db, "coffee")

		page, err := svc.ListTransactions(user, ListQuery{Limit: 10, Filter: "train", CustomTagID: customTag.ID})
		testutil.AssertNoError(t, err)
		if page.Total != 1 || page.Transactions[0].ID != coffee.ID {
			t.Errorf("expected the saved search to select the coffee row, got %+v", page.Transactions)
		}

		_, err = svc.ListTransactions(user, ListQuery{Limit: 10, CustomTagID: "missing"})
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})
}

func TestGetTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTxService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, owner.ID)

	t.Run("owner", func(t *testing.T) {
		got, err := svc.GetTransaction(owner, tx.ID)
		testutil.AssertNoError(t, err)
		if got.ID != tx.ID {
			t.Errorf("expected %s, got %s", tx.ID, got.ID)
		}
	})

	t.Run("other_user_sees_not_found", func(t *testing.T) {
		_, err := svc.GetTransaction(other, tx.ID)
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.GetTransaction(nil, tx.ID)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}

func TestCategoryStatistics(t *testing.T) {
	t.Run("sums_per_category_without_zero_fill", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithCategory(models.CategorySaving), testutil.WithAmount("100"))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithCategory(models.CategorySaving), testutil.WithAmount("50"))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithCategory(models.CategoryExpense), testutil.WithAmount("30"))
		testutil.CreateTestTransaction(t, db, other.ID, testutil.WithCategory(models.CategoryInvestment), testutil.WithAmount("999"))

		stats, err := svc.CategoryStatistics(user)
		testutil.AssertNoError(t, err)

		got := map[models.Category]decimal.Decimal{}
		for _, s := range stats {
			got[s.Category] = s.TotalAmount
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 categories, got %v", stats)
		}
		if !got[models.CategorySaving].Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected saving 150, got %s", got[models.CategorySaving])
		}
		if !got[models.CategoryExpense].Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected expense 30, got %s", got[models.CategoryExpense])
		}
		if _, ok := got[models.CategoryInvestment]; ok {
			t.Error("investment should be omitted")
		}
	})

	t.Run("cents_are_kept", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTxService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithAmount("0.10"))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.WithAmount("0.20"))

		stats, err := svc.CategoryStatistics(user)
		testutil.AssertNoError(t, err)
		if len(stats) != 1 || !stats[0].TotalAmount.Equal(decimal.RequireFromString("0.3")) {
			t.Errorf("expected expense 0.3, got %v", stats)
		}
	})

	t.Run("no_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		stats, err := newTxService(db).CategoryStatistics(user)
		testutil.AssertNoError(t, err)
		if stats == nil || len(stats) != 0 {
			t.Errorf("expected empty non-nil list, got %v", stats)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := newTxService(db).CategoryStatistics(nil)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		tx, err := newTxService(db).CreateTransaction(user, validInput())
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected generated ID")
		}
		if tx.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, tx.UserID)
		}
		if !tx.Amount.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("expected amount 12.5, got %s", tx.Amount)
		}
	})

	t.Run("location_defaults_to_empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		tx, err := newTxService(db).CreateTransaction(user, validInput())
		testutil.AssertNoError(t, err)

		var stored models.Transaction
		if err := db.First(&stored, "id = ?", tx.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if stored.Location != "" {
			t.Errorf("expected empty location, got %q", stored.Location)
		}
	})

	t.Run("local_date_is_stored_as_iso", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		input := validInput()
		input.Date = "07.06.2024"

		tx, err := newTxService(db).CreateTransaction(user, input)
		testutil.AssertNoError(t, err)
		if tx.Date != "2024-06-07" {
			t.Errorf("expected 2024-06-07, got %s", tx.Date)
		}
	})

	t.Run("smallest_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		input := validInput()
		input.Amount = amount("0.01")

		_, err := newTxService(db).CreateTransaction(user, input)
		testutil.AssertNoError(t, err)
	})

	t.Run("largest_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		input := validInput()
		input.Amount = amount("999999999999.99")

		tx, err := newTxService(db).CreateTransaction(user, input)
		testutil.AssertNoError(t, err)
		if !tx.Amount.Equal(decimal.RequireFromString("999999999999.99")) {
			t.Errorf("expected amount 999999999999.99, got %s", tx.Amount)
		}
	})

	t.Run("trailing_zeros_are_not_decimal_places", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		input := validInput()
		input.Amount = amount("12.5000")

		_, err := newTxService(db).CreateTransaction(user, input)
		testutil.AssertNoError(t, err)
	})

	tests := []struct {
		name    string
		mutate  func(*TransactionInput)
		code    string
		message string
	}{
		{"zero_amount", func(in *TransactionInput) { in.Amount = amount("0") }, "VALIDATION_ERROR", "Amount must be a positive number"},
		{"negative_amount", func(in *TransactionInput) { in.Amount = amount("-5") }, "VALIDATION_ERROR", "Amount must be a positive number"},
		{"missing_amount", func(in *TransactionInput) { in.Amount = nil }, "VALIDATION_ERROR", "All fields must be filled out"},
		{"blank_description", func(in *TransactionInput) { in.Description = "  " }, "VALIDATION_ERROR", "All fields must be filled out"},
		{"missing_payment_type", func(in *TransactionInput) { in.PaymentType = "" }, "VALIDATION_ERROR", "All fields must be filled out"},
		{"missing_category", func(in *TransactionInput) { in.Category = "" }, "VALIDATION_ERROR", "All fields must be filled out"},
		{"missing_date", func(in *TransactionInput) { in.Date = "" }, "VALIDATION_ERROR", "All fields must be filled out"},
		{"fractional_cents", func(in *TransactionInput) { in.Amount = amount("1.005") }, "VALIDATION_ERROR", "Amount must have at most two decimal places"},
		{"tiny_exponent", func(in *TransactionInput) { in.Amount = amount("1e-100000000") }, "VALIDATION_ERROR", "Amount must have at most two decimal places"},
		{"huge_exponent", func(in *TransactionInput) { in.Amount = amount("1e100000000") }, "VALIDATION_ERROR", "Amount must have at most 12 digits before the decimal point"},
		{"thirteen_integer_digits", func(in *TransactionInput) { in.Amount = amount("1000000000000") }, "VALIDATION_ERROR", "Amount must have at most 12 digits before the decimal point"},
		{"unknown_payment_type", func(in *TransactionInput) { in.PaymentType = "cheque" }, "VALIDATION_ERROR", `Invalid payment type "cheque"`},
		{"unknown_category", func(in *TransactionInput) { in.Category = "fun" }, "VALIDATION_ERROR", `Invalid category "fun"`},
		{"bad_date", func(in *TransactionInput) { in.Date = "31.04.2024" }, "VALIDATION_ERROR", "Date must be YYYY-MM-DD or DD.MM.YYYY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			user := testutil.CreateTestUser(t, db)
			input := validInput()
			tt.mutate(&input)

			_, err := newTxService(db).CreateTransaction(user, input)
			testutil.AssertAppErrorMessage(t, err, tt.code, tt.message)

			var count int64
			db.Model(&models.Transaction{}).Count(&count)
			if count != 0 {
				t.Errorf("expected nothing persisted, found %d rows", count)
			}
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := newTxService(db).CreateTransaction(nil, validInput())
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID,
			testutil.WithDescription("Old"), testutil.WithLocation("Bern"), testutil.WithAmount("10"))

		updated, err := newTxService(db).UpdateTransaction(user, TransactionUpdate{
			TransactionID: tx.ID,
			Amount:        amount("20.25"),
		})
		testutil.AssertNoError(t, err)

		if !updated.Amount.Equal(decimal.RequireFromString("20.25")) {
			t.Errorf("expected amount 20.25, got %s", updated.Amount)
		}
		if updated.Description != "Old" || updated.Location != "Bern" {
			t.Errorf("unsupplied fields changed: %+v", updated)
		}
		if updated.UserID != user.ID {
			t.Errorf("owner changed to %s", updated.UserID)
		}
	})

	t.Run("location_can_be_cleared", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, testutil.WithLocation("Bern"))

		updated, err := newTxService(db).UpdateTransaction(user, TransactionUpdate{
			TransactionID: tx.ID,
			Location:      strPtr(""),
		})
		testutil.AssertNoError(t, err)
		if updated.Location != "" {
			t.Errorf("expected empty location, got %q", updated.Location)
		}
	})

	t.Run("no_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID)

		_, err := newTxService(db).UpdateTransaction(user, TransactionUpdate{TransactionID: tx.ID})
		testutil.AssertAppErrorMessage(t, err, "VALIDATION_ERROR", "No fields to update")
	})

	t.Run("missing_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		_, err := newTxService(db).UpdateTransaction(user, TransactionUpdate{Amount: amount("1")})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("invalid_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, testutil.WithAmount("10"))
		svc := newTxService(db)

		badCategory := models.Category("fun")
		cases := []TransactionUpdate{
			{TransactionID: tx.ID, Amount: amount("0")},
			{TransactionID: tx.ID, Amount: amount("-1")},
			{TransactionID: tx.ID, Amount: amount("1e100000000")},
			{TransactionID: tx.ID, Amount: amount("1e13")},
			{TransactionID: tx.ID, Description: strPtr(" ")},
			{TransactionID: tx.ID, Date: strPtr("2024-13-01")},
			{TransactionID: tx.ID, Category: &badCategory},
		}
		for _, c := range cases {
			_, err := svc.UpdateTransaction(user, c)
			testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		}

		reloaded, err := svc.GetTransaction(user, tx.ID)
		testutil.AssertNoError(t, err)
		if !reloaded.Amount.Equal(decimal.NewFromInt(10)) {
			t.Errorf("rejected update changed amount to %s", reloaded.Amount)
		}
	})

	t.Run("other_users_row_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, testutil.WithDescription("Mine"))
		svc := newTxService(db)

		_, err := svc.UpdateTransaction(intruder, TransactionUpdate{TransactionID: tx.ID, Description: strPtr("Hacked")})
		testutil.AssertAppError(t, err, "NOT_FOUND")

		reloaded, err := svc.GetTransaction(owner, tx.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Description != "Mine" {
			t.Errorf("expected description unchanged, got %q", reloaded.Description)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("owner_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, testutil.WithDescription("Gone"))
		svc := newTxService(db)

		deleted, err := svc.DeleteTransaction(user, tx.ID)
		testutil.AssertNoError(t, err)
		if deleted.ID != tx.ID || deleted.Description != "Gone" {
			t.Errorf("expected the deleted row to be returned, got %+v", deleted)
		}

		_, err = svc.GetTransaction(user, tx.ID)
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})

	t.Run("other_user_cannot_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID)
		svc := newTxService(db)

		_, err := svc.DeleteTransaction(intruder, tx.ID)
		testutil.AssertAppError(t, err, "NOT_FOUND")

		_, err = svc.GetTransaction(owner, tx.ID)
		testutil.AssertNoError(t, err)
	})
}

func TestDeleteAllTransactions(t *testing.T) {
	t.Run("own_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		for i := 0; i < 4; i++ {
			testutil.CreateTestTransaction(t, db, user.ID)
		}
		testutil.CreateTestTransaction(t, db, other.ID)
		svc := newTxService(db)

		result, err := svc.DeleteAllTransactions(user, user.ID)
		testutil.AssertNoError(t, err)
		if !result.Success || result.Message != "Deleted 4 transactions" {
			t.Errorf("unexpected result %+v", result)
		}

		var remaining int64
		db.Model(&models.Transaction{}).Count(&remaining)
		if remaining != 1 {
			t.Errorf("expected only the other user's row to remain, got %d", remaining)
		}
	})

	t.Run("different_user_is_unauthorized_and_deletes_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		victim := testutil.CreateTestUser(t, db)
		attacker := testutil.CreateTestUser(t, db)
		for i := 0; i < 3; i++ {
			testutil.CreateTestTransaction(t, db, victim.ID)
		}

		_, err := newTxService(db).DeleteAllTransactions(attacker, victim.ID)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")

		var remaining int64
		db.Model(&models.Transaction{}).Where("user_id = ?", victim.ID).Count(&remaining)
		if remaining != 3 {
			t.Errorf("expected 3 rows to remain, got %d", remaining)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		_, err := newTxService(db).DeleteAllTransactions(nil, user.ID)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}
