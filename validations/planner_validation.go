package validations

import (
	"context"
	"errors"

	"github.com/AzielCF/az-planner/calendar/domain/page"
	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	pkgError "github.com/AzielCF/az-planner/pkg/error"
	"github.com/AzielCF/az-planner/pkg/timeutils"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxPostsPerDate = 50
	MaxDateCount    = 31
)

var knownCategory = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if !page.Category(s).IsValid() {
		return errors.New("must be one of Meme, Edit, Bollywood")
	}
	return nil
})

var dateRules = []validation.Rule{
	validation.Required,
	validation.Date(timeutils.DateLayout).Error("must be a valid date (YYYY-MM-DD)"),
}

func ValidateUpdateSettings(ctx context.Context, request domainPlanner.UpdateSettingsRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.MinFollowersK, validation.Min(int64(0))),
		validation.Field(&request.PostsPerDate, validation.NilOrNotEmpty, validation.Min(1), validation.Max(MaxPostsPerDate)),
		validation.Field(&request.DateCount, validation.NilOrNotEmpty, validation.Min(1), validation.Max(MaxDateCount)),
		validation.Field(&request.Year, validation.NilOrNotEmpty, validation.Min(1970), validation.Max(9999)),
		validation.Field(&request.Month, validation.NilOrNotEmpty, validation.Min(1), validation.Max(12)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.Categories != nil {
		err := validation.ValidateWithContext(ctx, *request.Categories,
			validation.Each(knownCategory),
		)
		if err != nil {
			return pkgError.ValidationError("categories: " + err.Error())
		}
	}

	return nil
}

func ValidateToggleDate(ctx context.Context, request domainPlanner.ToggleDateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Date, dateRules...),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateSelectDates(ctx context.Context, request domainPlanner.SelectDatesRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Dates, validation.Each(dateRules...)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateRandomDates(ctx context.Context, request domainPlanner.RandomDatesRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Count, validation.Min(0)),
		validation.Field(&request.Year, validation.Min(1970), validation.Max(9999)),
		validation.Field(&request.Month, validation.Min(1), validation.Max(12)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateMonth(ctx context.Context, request domainPlanner.MonthRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Year, validation.Min(1970), validation.Max(9999)),
		validation.Field(&request.Month, validation.Min(1), validation.Max(12)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateDate(ctx context.Context, date string) error {
	if err := validation.ValidateWithContext(ctx, date, dateRules...); err != nil {
		return pkgError.ValidationError("date: " + err.Error())
	}
	return nil
}
