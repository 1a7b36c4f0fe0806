package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pawhaven/internal/repos"
	"pawhaven/internal/services"
)

func TestReview_RatingRange(t *testing.T) {
	db := memdb(t)
	svc := &services.ReviewService{Reviews: repos.NewReviewRepo(db)}

	if err := svc.RateSitter("u-sam", "u-olivia", "Olivia", 6, "great"); !errors.Is(err, services.ErrRatingRange) {
		t.Fatalf("rating 6 should be rejected, got %v", err)
	}
	if err := svc.RateProduct("prod-leash", "u-olivia", 0, "meh"); !errors.Is(err, services.ErrRatingRange) {
		t.Fatalf("rating 0 should be rejected, got %v", err)
	}
}

func TestReview_ResubmitRevises(t *testing.T) {
	db := memdb(t)
	reviewRepo := repos.NewReviewRepo(db)
	svc := &services.ReviewService{Reviews: reviewRepo}

	if err := svc.RateSitter("u-sam", "u-olivia", "Olivia", 3, "fine"); err != nil {
		t.Fatal(err)
	}
	if err := svc.RateSitter("u-sam", "u-olivia", "Olivia", 5, "actually great"); err != nil {
		t.Fatal(err)
	}

	all, err := svc.SitterReviews("u-sam")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("one review per owner, got %d", len(all))
	}
	if all[0].Rating != 5 || all[0].Text != "actually great" {
		t.Fatalf("resubmit should revise in place, got %+v", all[0])
	}

	mine, err := reviewRepo.SitterReviewBy("u-sam", "u-olivia")
	if err != nil {
		t.Fatal(err)
	}
	if mine == nil || mine.Rating != 5 {
		t.Fatalf("want revised review back, got %+v", mine)
	}
}

func TestReview_ProductUpsert(t *testing.T) {
	db := memdb(t)
	svc := &services.ReviewService{Reviews: repos.NewReviewRepo(db)}

	if err := svc.RateProduct("prod-leash", "u-olivia", 4, "sturdy"); err != nil {
		t.Fatal(err)
	}
	if err := svc.RateProduct("prod-leash", "u-olivia", 2, "frayed after a month"); err != nil {
		t.Fatal(err)
	}

	all, err := svc.ProductReviews("prod-leash")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Rating != 2 {
		t.Fatalf("want single revised review, got %+v", all)
	}

	// seller-side view joins the product name
	rows, err := svc.SellerFeedback("u-serena")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ProductName == "" {
		t.Fatalf("want one row with product name, got %+v", rows)
	}
}
