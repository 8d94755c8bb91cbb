package validations

import (
	"context"
	"testing"

	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	pkgError "github.com/AzielCF/az-planner/pkg/error"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestValidateUpdateSettings(t *testing.T) {
	ctx := context.Background()
	cats := []string{"Meme", "Edit"}
	bad := []string{"Meme", "Sports"}

	assert.NoError(t, ValidateUpdateSettings(ctx, domainPlanner.UpdateSettingsRequest{}))
	assert.NoError(t, ValidateUpdateSettings(ctx, domainPlanner.UpdateSettingsRequest{
		Categories:    &cats,
		MinFollowersK: int64Ptr(0),
		PostsPerDate:  intPtr(5),
		Month:         intPtr(12),
	}))

	cases := []domainPlanner.UpdateSettingsRequest{
		{Categories: &bad},
		{MinFollowersK: int64Ptr(-1)},
		{PostsPerDate: intPtr(0)},
		{PostsPerDate: intPtr(MaxPostsPerDate + 1)},
		{DateCount: intPtr(32)},
		{Month: intPtr(13)},
		{Year: intPtr(1900)},
	}
	for _, c := range cases {
		err := ValidateUpdateSettings(ctx, c)
		assert.Error(t, err)
		assert.IsType(t, pkgError.ValidationError(""), err)
	}
}

func TestValidateDates(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, ValidateToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "2024-03-05"}))
	assert.Error(t, ValidateToggleDate(ctx, domainPlanner.ToggleDateRequest{}))
	assert.Error(t, ValidateToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "2024-13-01"}))

	assert.NoError(t, ValidateSelectDates(ctx, domainPlanner.SelectDatesRequest{Dates: []string{"2024-03-05", "2024-03-12"}}))
	assert.NoError(t, ValidateSelectDates(ctx, domainPlanner.SelectDatesRequest{}))
	assert.Error(t, ValidateSelectDates(ctx, domainPlanner.SelectDatesRequest{Dates: []string{"2024-03-05", "tomorrow"}}))

	assert.NoError(t, ValidateDate(ctx, "2024-02-29"))
	assert.Error(t, ValidateDate(ctx, "2023-02-29"))
}

func TestValidateRandomDatesAndMonth(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, ValidateRandomDates(ctx, domainPlanner.RandomDatesRequest{}))
	assert.NoError(t, ValidateRandomDates(ctx, domainPlanner.RandomDatesRequest{Count: 40, Year: 2024, Month: 3}))
	assert.Error(t, ValidateRandomDates(ctx, domainPlanner.RandomDatesRequest{Count: -1}))
	assert.Error(t, ValidateRandomDates(ctx, domainPlanner.RandomDatesRequest{Month: 0, Year: 20}))

	assert.NoError(t, ValidateMonth(ctx, domainPlanner.MonthRequest{Year: 2024, Month: 3}))
	assert.Error(t, ValidateMonth(ctx, domainPlanner.MonthRequest{Year: 2024, Month: 14}))
}

func TestValidateUpdateSettings_CategoryMessage(t *testing.T) {
	bad := []string{"Edit", "meme"}
	err := ValidateUpdateSettings(context.Background(), domainPlanner.UpdateSettingsRequest{Categories: &bad})
	assert.ErrorContains(t, err, "must be one of Meme, Edit, Bollywood")
}
