// Package config defines the Configuration surface (spec.md §3, §6.5): the
// recognised options a caller may set before opening a session. Loading
// this struct from environment variables, flags, or a file is a CLI-wrapper
// concern and explicitly out of scope here (spec.md §1, §6.5) — this
// package only defines the struct and validates it.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Config holds the options a caller may set before opening a JV-Link
// session.
type Config struct {
	// Sid identifies the calling application to the native component.
	// Up to 64 bytes of restricted ASCII plus space.
	Sid string `validate:"required,max=64"`

	// ServiceKey is the 17-character alphanumeric key issued for a paid
	// JRA-VAN service plan. Optional: some data kinds are free.
	ServiceKey string `validate:"omitempty,len=17,alphanum"`

	// SavePath is the local directory downloaded files are persisted to
	// when SaveFlag is set. Created lazily — it need not exist yet.
	SavePath string

	// SaveFlag, when true, asks the native component to persist
	// downloaded artefacts under SavePath instead of discarding them
	// after the session closes.
	SaveFlag bool

	// UseGetsFastPath selects the native gets() read primitive, which
	// extracts bytes directly from the native component's internal array
	// and avoids one internal re-encoding pass that read() performs.
	UseGetsFastPath bool
}

var sidPattern = regexp.MustCompile(`^[\x20-\x7E]*$`)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
	})
	return validatorInst
}

// Validate checks c against the recognised-option constraints in spec.md
// §3. It returns the first violated constraint, translated into a
// human-readable message.
func Validate(c Config) error {
	if err := getValidator().Struct(c); err != nil {
		return translateValidationError(err)
	}
	if !sidPattern.MatchString(c.Sid) {
		return fmt.Errorf("sid %q contains characters outside restricted ASCII + space", c.Sid)
	}
	return nil
}

func translateValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
	case "max":
		return fmt.Errorf("%s exceeds maximum length of %s bytes", strings.ToLower(fe.Field()), fe.Param())
	case "len":
		return fmt.Errorf("%s must be exactly %s characters", strings.ToLower(fe.Field()), fe.Param())
	case "alphanum":
		return fmt.Errorf("%s must be alphanumeric", strings.ToLower(fe.Field()))
	default:
		return fmt.Errorf("%s failed %q validation", strings.ToLower(fe.Field()), fe.Tag())
	}
}
