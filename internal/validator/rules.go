package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation tag %q: %v", tag, err))
		}
	}

	mustRegister("role_type", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || domain.RoleType(value).Valid()
	})
	mustRegister("pricing_tier", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || domain.PricingTier(value).Rank() > 0
	})
	mustRegister("availability", func(fl validator.FieldLevel) bool {
		switch domain.Availability(fl.Field().String()) {
		case "", domain.AvailabilityOpen, domain.AvailabilityLimited, domain.AvailabilityBooked:
			return true
		}
		return false
	})
	mustRegister("match_status", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || domain.MatchStatus(value).Valid()
	})
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
