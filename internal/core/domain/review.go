package domain

import (
	"fmt"
	"time"
)

type Review struct {
	ReviewID     string
	ProductID    string
	UserID       string
	UserName     string
	Rating       int
	Comment      string
	Verified     bool
	HelpfulCount int
	Voters       []string
	CreatedAt    time.Time
}

func (r Review) Validate() error {
	const op = "Review.Validate"

	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%s: rating out of range: %w", op, ErrInvalid)
	}
	if r.Comment == "" {
		return fmt.Errorf("%s: comment is empty: %w", op, ErrInvalid)
	}
	return nil
}

type ReviewSummary struct {
	AverageRating float64
	TotalCount    int
}

func Summarize(rs []Review) ReviewSummary {
	if len(rs) == 0 {
		return ReviewSummary{}
	}

	var sum int
	for _, r := range rs {
		sum += r.Rating
	}
	return ReviewSummary{
		AverageRating: float64(sum) / float64(len(rs)),
		TotalCount:    len(rs),
	}
}
