package validation

import (
	"fmt"
	"strings"

	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/utils"
)

// BankLookup is the part of the bank registry the validator needs.
// Declared here to keep validation free of the bank package.
type BankLookup interface {
	Names() []string
}

// Validator checks user supplied names and amounts before they reach the service
type Validator struct {
	banks BankLookup
}

func NewValidator(banks BankLookup) *Validator {
	return &Validator{banks: banks}
}

// ValidateName validates a person or bank name
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%s can't be empty", field)
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("%s too long (max %d characters)", field, constants.MaxNameLen)
	}
	return nil
}

// ValidateNewBankName checks the format and that no bank already uses the name
func (v *Validator) ValidateNewBankName(name string) error {
	if err := ValidateName("bank name", name); err != nil {
		return err
	}
	for _, existing := range v.banks.Names() {
		if strings.EqualFold(existing, strings.TrimSpace(name)) {
			return fmt.Errorf("bank '%s' already exists", existing)
		}
	}
	return nil
}

// ValidatePositiveAmount is suitable as a prompt validator
func ValidatePositiveAmount(s string) error {
	d, err := utils.ParseAmount(s)
	if err != nil {
		return err
	}
	if !d.IsPositive() {
		return fmt.Errorf("amount must be greater than 0")
	}
	return nil
}

// ValidateRate accepts zero or positive decimals
func ValidateRate(s string) error {
	d, err := utils.ParseAmount(s)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return fmt.Errorf("rate can't be negative")
	}
	return nil
}
