package pricing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var validate = validator.New()

// Validate reports every invariant violation in c at once. A nil error means
// the configuration can price any valid request.
func (c Config) Validate() error {
	var errs error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate pricing config: %w", err)
		}
		for _, fe := range fieldErrs {
			errs = multierr.Append(errs, fieldError(fe))
		}
	}

	if len(c.Materials) == 0 {
		errs = multierr.Append(errs, errors.New("materials: at least one material is required"))
	}
	if len(c.Complexity) == 0 {
		errs = multierr.Append(errs, errors.New("complexity: at least one tier is required"))
	}

	return multierr.Append(errs, validateSchedule(c.VolumeDiscounts))
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "gte":
		return fmt.Errorf("%s: must be >= %s, got %v", fe.Namespace(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Errorf("%s: must be <= %s, got %v", fe.Namespace(), fe.Param(), fe.Value())
	case "ltefield":
		return fmt.Errorf("%s: must not exceed %s, got %v", fe.Namespace(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s: failed %q check", fe.Namespace(), fe.Tag())
	}
}

// validateSchedule checks that the tiers are contiguous, start at 1 and end
// with an unbounded tier.
func validateSchedule(tiers []VolumeTier) error {
	if len(tiers) == 0 {
		return errors.New("volumeDiscounts: schedule is empty")
	}

	var errs error
	if tiers[0].MinQty != 1 {
		errs = multierr.Append(errs, fmt.Errorf("volumeDiscounts[0]: must start at 1, got %d", tiers[0].MinQty))
	}
	for i, tier := range tiers {
		last := i == len(tiers)-1
		if tier.Unbounded() {
			if !last {
				errs = multierr.Append(errs, fmt.Errorf("volumeDiscounts[%d]: only the last tier may be unbounded", i))
			}
			continue
		}
		if last {
			errs = multierr.Append(errs, fmt.Errorf("volumeDiscounts[%d]: last tier must be unbounded, got maxQty %d", i, tier.MaxQty))
		}
		if tier.MaxQty < tier.MinQty {
			errs = multierr.Append(errs, fmt.Errorf("volumeDiscounts[%d]: maxQty %d is below minQty %d", i, tier.MaxQty, tier.MinQty))
		}
		if !last && tiers[i+1].MinQty != tier.MaxQty+1 {
			errs = multierr.Append(errs, fmt.Errorf("volumeDiscounts[%d]: next tier must start at %d, got %d", i, tier.MaxQty+1, tiers[i+1].MinQty))
		}
	}
	return errs
}
