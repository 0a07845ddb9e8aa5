package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	err := Validate(Config{Sid: "UNIT-TEST"})
	assert.NoError(t, err)
}

func TestValidateRejectsBlankSid(t *testing.T) {
	err := Validate(Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sid")
}

func TestValidateRejectsOverlongSid(t *testing.T) {
	err := Validate(Config{Sid: strings.Repeat("A", 65)})
	assert.Error(t, err)
}

func TestValidateRejectsNonRestrictedSid(t *testing.T) {
	err := Validate(Config{Sid: "SOME\tTAB"})
	assert.Error(t, err)
}

func TestValidateRejectsMalformedServiceKey(t *testing.T) {
	err := Validate(Config{Sid: "app", ServiceKey: "tooshort"})
	assert.Error(t, err)
}

func TestValidateAcceptsWellFormedServiceKey(t *testing.T) {
	err := Validate(Config{Sid: "app", ServiceKey: "ABCDE12345FGHJK67"})
	assert.NoError(t, err)
}

func TestValidateAcceptsOptionalFields(t *testing.T) {
	err := Validate(Config{
		Sid:             "app",
		SavePath:        "/tmp/jvlink",
		SaveFlag:        true,
		UseGetsFastPath: true,
	})
	assert.NoError(t, err)
}
