package services

import (
	"testing"

	"gorm.io/gorm"

	"spendwise/internal/models"
	"spendwise/internal/testutil"
)

func newTagService(db *gorm.DB) TagServicer {
	return NewTagService(db, NewUserService(db))
}

func TestCreateTag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTagService(db)
	user := testutil.CreateTestUser(t, db)

	tag, err := svc.CreateTag(user, "  travel ")
	testutil.AssertNoError(t, err)
	if tag.Name != "travel" {
		t.Errorf("expected trimmed name, got %q", tag.Name)
	}

	_, err = svc.CreateTag(user, "travel")
	testutil.AssertAppError(t, err, "ALREADY_EXISTS")

	_, err = svc.CreateTag(user, " ")
	testutil.AssertAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.CreateTag(nil, "food")
	testutil.AssertAppError(t, err, "UNAUTHORIZED")

	tags, err := svc.ListTags()
	testutil.AssertNoError(t, err)
	if len(tags) != 1 {
		t.Errorf("expected 1 tag, got %d", len(tags))
	}
}

func TestAddUserTag(t *testing.T) {
	t.Run("attach_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTagService(db)
		user := testutil.CreateTestUser(t, db)
		tag := testutil.CreateTestTag(t, db)

		for i := 0; i < 2; i++ {
			updated, err := svc.AddUserTag(user, user.ID, tag.ID)
			testutil.AssertNoError(t, err)
			if len(updated.Tags) != 1 || updated.Tags[0].ID != tag.ID {
				t.Fatalf("expected exactly the attached tag, got %v", updated.Tags)
			}
		}

		tags, err := svc.UserTags(user.ID)
		testutil.AssertNoError(t, err)
		if len(tags) != 1 {
			t.Errorf("expected 1 tag, got %d", len(tags))
		}
	})

	t.Run("other_user_is_unauthorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTagService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tag := testutil.CreateTestTag(t, db)

		_, err := svc.AddUserTag(intruder, owner.ID, tag.ID)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")

		var links int64
		db.Model(&models.UserTag{}).Count(&links)
		if links != 0 {
			t.Errorf("expected no association, got %d", links)
		}
	})

	t.Run("unknown_tag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		_, err := newTagService(db).AddUserTag(user, user.ID, "missing")
		testutil.AssertAppErrorMessage(t, err, "NOT_FOUND", "Tag not found")
	})
}

func TestUserTags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTagService(db)
	user := testutil.CreateTestUser(t, db)

	tags, err := svc.UserTags(user.ID)
	testutil.AssertNoError(t, err)
	if tags == nil || len(tags) != 0 {
		t.Errorf("expected empty list, got %v", tags)
	}

	_, err = svc.UserTags("missing")
	testutil.AssertAppErrorMessage(t, err, "NOT_FOUND", "User not found")
}

func TestCustomTags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTagService(db)
	user := testutil.CreateTestUser(t, db)

	created, err := svc.CreateCustomTag(user, "Coffee", "coffee")
	testutil.AssertNoError(t, err)

	got, err := svc.GetCustomTag(created.ID)
	testutil.AssertNoError(t, err)
	if got.SearchTerm != "coffee" {
		t.Errorf("expected search term coffee, got %q", got.SearchTerm)
	}

	_, err = svc.CreateCustomTag(user, "Empty", " ")
	testutil.AssertAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.CreateCustomTag(nil, "Anon", "x")
	testutil.AssertAppError(t, err, "UNAUTHORIZED")

	list, err := svc.ListCustomTags()
	testutil.AssertNoError(t, err)
	if len(list) != 1 {
		t.Errorf("expected 1 custom tag, got %d", len(list))
	}
}
