package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func humanizeValidationErrors(errs validator.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		if fe.Param() != "" {
			fmt.Fprintf(&b, "%s: %s=%s; ", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			fmt.Fprintf(&b, "%s: %s; ", fe.Namespace(), fe.Tag())
		}
	}
	s := b.String()
	if len(s) > 2 {
		s = s[:len(s)-2]
	}
	return s
}

func (s *Service) validate(rec interface{}) error {
	if err := s.v.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrValidation, humanizeValidationErrors(verrs))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
