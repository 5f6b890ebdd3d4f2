package coursework

import (
	"errors"

	"github.com/google/uuid"
)

// isUUID is an ozzo rule for string IDs minted by uuid.NewString.
func isUUID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("must be a valid UUID")
	}
	return nil
}
