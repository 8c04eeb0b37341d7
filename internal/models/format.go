package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/bump/internal/constants"
)

func validateDate(field, value string) error {
	if _, err := time.Parse(constants.DateFormat, value); err != nil {
		return fmt.Errorf("invalid %s format (expected YYYY-MM-DD): %w", field, err)
	}
	return nil
}

func validateTime(field, value string) error {
	if _, err := time.Parse(constants.TimeFormat, value); err != nil {
		return fmt.Errorf("invalid %s format (expected HH:MM): %w", field, err)
	}
	return nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	return nil
}
